package pipeline

import (
	"context"
	"fmt"
	"time"

	"censuslink/internal/blocking"
	"censuslink/internal/ingest"
	"censuslink/internal/linker"
	"censuslink/internal/scoring"
)

// DedupResult summarizes one same-census duplicate run.
type DedupResult struct {
	RunID string

	Path        string
	Records     int
	DroppedRows int

	Blocks     int
	Candidates int
	Tiers      linker.Tiers

	Duration time.Duration
}

// RunDedup self-joins one enumeration to find likely duplicate rows.
// The dedup rule set replaces the one-directional age rules with a
// symmetric year-gap penalty, and each unordered pair is scored once.
func (r *Runner) RunDedup(ctx context.Context, path string) (*DedupResult, error) {
	started := time.Now()
	logger := r.logger.With("run_id", r.runID, "op", "dedup")

	r.report("load", 0)
	records, err := ingest.ReadCensusFile(path)
	if err != nil {
		return nil, err
	}
	logger.Info("enumeration loaded", "records", records.Len(), "dropped", records.Dropped)
	r.report("load", 10)

	params := r.params()
	freq := scoring.BuildFrequencies(records.Records)
	idx := blocking.Build(records.Records, records.Records, r.blockingPolicy())
	r.report("block", 20)

	candidates, err := linker.Generate(ctx, idx, linker.GenerateOptions{
		Mode:      scoring.ModeDedup,
		Params:    params,
		Freq:      freq,
		Cutoffs:   r.cutoffs(),
		SelfJoin:  true,
		BatchSize: r.cfg.Matching.BatchSize,
		Progress: func(done, total int) {
			if total > 0 {
				r.report("score", 20+done*60/total)
			}
		},
	})
	if err != nil {
		return nil, fmt.Errorf("generate candidates: %w", err)
	}

	tiers := linker.Resolve(candidates, true)
	r.report("resolve", 90)

	result := &DedupResult{
		RunID:       r.runID,
		Path:        path,
		Records:     records.Len(),
		DroppedRows: records.Dropped,
		Blocks:      len(idx),
		Candidates:  len(candidates),
		Tiers:       tiers,
		Duration:    time.Since(started),
	}
	logger.Info("dedup complete",
		"tier1", len(tiers.Tier1), "tier2", len(tiers.Tier2), "tier3", len(tiers.Tier3),
		"duration", result.Duration)
	r.report("done", 100)
	return result, nil
}
