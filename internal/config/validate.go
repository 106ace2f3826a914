package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateMatching(); err != nil {
		return err
	}
	if err := c.validateBoosting(); err != nil {
		return err
	}
	if err := c.validateRelations(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateMatching() error {
	if err := ensurePositiveMap(map[string]int{
		"matching.score_floor":      c.Matching.ScoreFloor,
		"matching.tier1_min":        c.Matching.Tier1Min,
		"matching.tier2_min":        c.Matching.Tier2Min,
		"matching.regression_years": c.Matching.RegressionYears,
		"matching.dedup_year_gap":   c.Matching.DedupYearGap,
		"matching.batch_size":       c.Matching.BatchSize,
	}); err != nil {
		return err
	}
	if c.Matching.Tier1Min <= c.Matching.Tier2Min {
		return errors.New("matching.tier1_min must be greater than matching.tier2_min")
	}
	if c.Matching.Tier2Min < c.Matching.ScoreFloor {
		return errors.New("matching.tier2_min must be at least matching.score_floor")
	}
	switch c.Matching.BlockingPolicy {
	case "strict", "permissive":
	default:
		return fmt.Errorf("matching.blocking_policy must be \"strict\" or \"permissive\", got %q", c.Matching.BlockingPolicy)
	}
	return nil
}

func (c *Config) validateBoosting() error {
	if !c.Boosting.Enabled {
		return nil
	}
	if err := ensurePositiveMap(map[string]int{
		"boosting.floor":             c.Boosting.Floor,
		"boosting.head_bonus":        c.Boosting.HeadBonus,
		"boosting.spouse_bonus":      c.Boosting.SpouseBonus,
		"boosting.child_bonus":       c.Boosting.ChildBonus,
		"boosting.parent_bonus":      c.Boosting.ParentBonus,
		"boosting.coresidence_bonus": c.Boosting.CoResidenceBonus,
	}); err != nil {
		return err
	}
	if c.Boosting.Floor >= c.Matching.ScoreFloor {
		return errors.New("boosting.floor must be below matching.score_floor")
	}
	if c.Boosting.HeadNameCutoff <= 0 || c.Boosting.HeadNameCutoff > 1 {
		return errors.New("boosting.head_name_cutoff must be between 0 and 1")
	}
	return nil
}

func (c *Config) validateRelations() error {
	if c.Relations.MinMemberScore <= 0 {
		return errors.New("relations.min_member_score must be positive")
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
