package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/flock"

	"censuslink/internal/ingest"
	"censuslink/internal/relations"
	"censuslink/internal/verified"
)

// RelationsResult summarizes one kinship inference run.
type RelationsResult struct {
	RunID string

	EarlierPath string
	LaterPath   string

	Edges   []relations.Edge
	Stats   verified.Stats
	Persons int

	Duration time.Duration
}

// RunRelations infers kinship edges from later-census household roles and
// applies them to the verified person table. The table mutation runs
// under a file lock so only one writer touches the database at a time.
func (r *Runner) RunRelations(ctx context.Context, earlierPath, laterPath string) (*RelationsResult, error) {
	started := time.Now()
	logger := r.logger.With("run_id", r.runID, "op", "relations")

	r.report("load", 0)
	earlier, err := ingest.ReadCensusFile(earlierPath)
	if err != nil {
		return nil, err
	}
	later, err := ingest.ReadCensusFile(laterPath)
	if err != nil {
		return nil, err
	}
	r.report("load", 10)

	opts := r.relationOptions()
	opts.Progress = func(done, total int) {
		if total > 0 {
			r.report("infer", 10+done*50/total)
		}
	}
	edges, err := relations.Find(ctx, earlier, later, opts)
	if err != nil {
		return nil, fmt.Errorf("infer relations: %w", err)
	}
	logger.Info("kinship edges inferred", "edges", len(edges))
	r.report("infer", 60)

	lock := flock.New(r.cfg.Paths.VerifiedDB + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire verified lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("verified database %s is locked by another run", r.cfg.Paths.VerifiedDB)
	}
	defer func() { _ = lock.Unlock() }()

	store, err := verified.Open(r.cfg.Paths.VerifiedDB)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	people, err := store.All(ctx)
	if err != nil {
		return nil, err
	}
	table := verified.NewTable(people)
	stats := table.Apply(edges, r.propagationPolicy())
	r.report("propagate", 80)

	updated := table.People()
	if err := store.UpsertAll(ctx, updated); err != nil {
		return nil, fmt.Errorf("persist verified table: %w", err)
	}

	result := &RelationsResult{
		RunID:       r.runID,
		EarlierPath: earlierPath,
		LaterPath:   laterPath,
		Edges:       edges,
		Stats:       stats,
		Persons:     len(updated),
		Duration:    time.Since(started),
	}
	logger.Info("relations complete",
		"applied", stats.Applied, "skipped", stats.Skipped,
		"persons", result.Persons, "duration", result.Duration)
	r.report("done", 100)
	return result, nil
}
