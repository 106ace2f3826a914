package pipeline

import (
	"context"
	"fmt"
	"time"

	"censuslink/internal/blocking"
	"censuslink/internal/census"
	"censuslink/internal/ingest"
	"censuslink/internal/linker"
	"censuslink/internal/scoring"
)

// MatchResult summarizes one cross-census run.
type MatchResult struct {
	RunID string

	EarlierPath    string
	LaterPath      string
	EarlierRecords int
	LaterRecords   int
	DroppedRows    int

	Blocks     int
	Candidates int
	Boosted    int
	Tiers      linker.Tiers

	Duration time.Duration
}

// RunMatch links an earlier enumeration against a later one: blocking,
// pair scoring, one-to-one tier resolution, then household boosting
// anchored on tier-1 matches and a final resolution pass.
func (r *Runner) RunMatch(ctx context.Context, earlierPath, laterPath string) (*MatchResult, error) {
	started := time.Now()
	logger := r.logger.With("run_id", r.runID, "op", "match")

	r.report("load", 0)
	earlier, err := ingest.ReadCensusFile(earlierPath)
	if err != nil {
		return nil, err
	}
	later, err := ingest.ReadCensusFile(laterPath)
	if err != nil {
		return nil, err
	}
	logger.Info("enumerations loaded",
		"earlier", earlier.Len(), "later", later.Len(),
		"dropped", earlier.Dropped+later.Dropped)
	r.report("load", 10)

	params := r.params()
	freq := scoring.BuildFrequencies(earlier.Records, later.Records)
	idx := blocking.Build(earlier.Records, later.Records, r.blockingPolicy())
	r.report("block", 20)

	candidates, err := linker.Generate(ctx, idx, linker.GenerateOptions{
		Mode:      scoring.ModeMatch,
		Params:    params,
		Freq:      freq,
		Cutoffs:   r.cutoffs(),
		BatchSize: r.cfg.Matching.BatchSize,
		Progress: func(done, total int) {
			if total > 0 {
				r.report("score", 20+done*40/total)
			}
		},
	})
	if err != nil {
		return nil, fmt.Errorf("generate candidates: %w", err)
	}
	logger.Info("candidates generated", "count", len(candidates), "blocks", len(idx))

	tiers := linker.Resolve(candidates, false)
	r.report("resolve", 70)

	boosted := 0
	if r.cfg.Boosting.Enabled {
		housesA := census.GroupHouseholds(earlier)
		housesB := census.GroupHouseholds(later)
		candidates, boosted, err = linker.Boost(ctx, candidates, tiers.Tier1, housesA, housesB,
			r.boostOptions(scoring.ModeMatch, params, freq))
		if err != nil {
			return nil, fmt.Errorf("household boost: %w", err)
		}
		tiers = linker.Resolve(candidates, false)
		logger.Info("household boost applied", "changed", boosted)
	}
	r.report("boost", 90)

	result := &MatchResult{
		RunID:          r.runID,
		EarlierPath:    earlierPath,
		LaterPath:      laterPath,
		EarlierRecords: earlier.Len(),
		LaterRecords:   later.Len(),
		DroppedRows:    earlier.Dropped + later.Dropped,
		Blocks:         len(idx),
		Candidates:     len(candidates),
		Boosted:        boosted,
		Tiers:          tiers,
		Duration:       time.Since(started),
	}
	logger.Info("match complete",
		"tier1", len(tiers.Tier1), "tier2", len(tiers.Tier2), "tier3", len(tiers.Tier3),
		"duration", result.Duration)
	r.report("done", 100)
	return result, nil
}
