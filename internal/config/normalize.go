package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeDatasets(); err != nil {
		return err
	}
	c.normalizeMatching()
	c.normalizeBoosting()
	c.normalizeRelations()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.VerifiedDB) == "" {
		c.Paths.VerifiedDB = defaultVerifiedDB
	}
	if c.Paths.VerifiedDB, err = expandPath(c.Paths.VerifiedDB); err != nil {
		return fmt.Errorf("paths.verified_db: %w", err)
	}
	return nil
}

func (c *Config) normalizeDatasets() error {
	var err error
	c.Datasets.EarlierCSV = strings.TrimSpace(c.Datasets.EarlierCSV)
	if c.Datasets.EarlierCSV != "" {
		if c.Datasets.EarlierCSV, err = expandPath(c.Datasets.EarlierCSV); err != nil {
			return fmt.Errorf("datasets.earlier_csv: %w", err)
		}
	}
	c.Datasets.LaterCSV = strings.TrimSpace(c.Datasets.LaterCSV)
	if c.Datasets.LaterCSV != "" {
		if c.Datasets.LaterCSV, err = expandPath(c.Datasets.LaterCSV); err != nil {
			return fmt.Errorf("datasets.later_csv: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizeMatching() {
	if c.Matching.ScoreFloor <= 0 {
		c.Matching.ScoreFloor = defaultScoreFloor
	}
	if c.Matching.Tier1Min <= 0 {
		c.Matching.Tier1Min = defaultTier1Min
	}
	if c.Matching.Tier2Min <= 0 {
		c.Matching.Tier2Min = defaultTier2Min
	}
	if c.Matching.RegressionYears <= 0 {
		c.Matching.RegressionYears = defaultRegressionYears
	}
	if c.Matching.DedupYearGap <= 0 {
		c.Matching.DedupYearGap = defaultDedupYearGap
	}
	c.Matching.DefaultBirthPlace = strings.ToUpper(strings.TrimSpace(c.Matching.DefaultBirthPlace))
	if c.Matching.DefaultBirthPlace == "" {
		c.Matching.DefaultBirthPlace = defaultBirthPlace
	}
	c.Matching.BlockingPolicy = strings.ToLower(strings.TrimSpace(c.Matching.BlockingPolicy))
	if c.Matching.BlockingPolicy == "" {
		c.Matching.BlockingPolicy = defaultBlockingPolicy
	}
	if c.Matching.BatchSize <= 0 {
		c.Matching.BatchSize = defaultBatchSize
	}
}

func (c *Config) normalizeBoosting() {
	if c.Boosting.Floor <= 0 {
		c.Boosting.Floor = defaultBoostFloor
	}
	if c.Boosting.HeadBonus <= 0 {
		c.Boosting.HeadBonus = defaultHeadBonus
	}
	if c.Boosting.HeadNameCutoff <= 0 {
		c.Boosting.HeadNameCutoff = defaultHeadNameCutoff
	}
	if c.Boosting.SpouseBonus <= 0 {
		c.Boosting.SpouseBonus = defaultSpouseBonus
	}
	if c.Boosting.ChildBonus <= 0 {
		c.Boosting.ChildBonus = defaultChildBonus
	}
	if c.Boosting.ParentBonus <= 0 {
		c.Boosting.ParentBonus = defaultParentBonus
	}
	if c.Boosting.CoResidenceBonus <= 0 {
		c.Boosting.CoResidenceBonus = defaultCoResidenceBonus
	}
}

func (c *Config) normalizeRelations() {
	if c.Relations.MinMemberScore <= 0 {
		c.Relations.MinMemberScore = defaultMinMemberScore
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
