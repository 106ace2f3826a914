package linker

import (
	"context"

	"censuslink/internal/blocking"
	"censuslink/internal/scoring"
)

// ProgressFunc receives completion updates at batch boundaries.
type ProgressFunc func(done, total int)

// GenerateOptions configures candidate generation.
type GenerateOptions struct {
	Mode     scoring.Mode
	Params   scoring.Params
	Freq     *scoring.Frequencies
	Cutoffs  Cutoffs
	SelfJoin bool

	// BatchSize bounds how many blocks are processed between yield
	// points; cancellation and progress reporting happen only there.
	BatchSize int
	Progress  ProgressFunc
}

// Generate scores every unique same-block pair and keeps those at or above
// the floor, tier-assigned. Blocks with an empty side are inert. In
// self-join mode a record never pairs with itself and each unordered pair
// is emitted once.
func Generate(ctx context.Context, idx blocking.Index, opts GenerateOptions) ([]*Candidate, error) {
	batch := opts.BatchSize
	if batch <= 0 {
		batch = 1000
	}

	keys := idx.SortedKeys()
	seen := make(map[string]struct{})
	var candidates []*Candidate

	for start := 0; start < len(keys); start += batch {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		end := min(start+batch, len(keys))
		for _, key := range keys[start:end] {
			sides := idx[key]
			if len(sides.A) == 0 || len(sides.B) == 0 {
				continue
			}
			for _, a := range sides.A {
				for _, b := range sides.B {
					ra, rb := a, b
					if opts.SelfJoin {
						if ra.Line == rb.Line {
							continue
						}
						// One canonical orientation per unordered pair.
						if ra.Line > rb.Line {
							ra, rb = rb, ra
						}
					}
					pairID := ra.Line + "-" + rb.Line
					if _, ok := seen[pairID]; ok {
						continue
					}
					seen[pairID] = struct{}{}

					res := scoring.Score(ra, rb, opts.Mode, opts.Params, opts.Freq)
					tier := opts.Cutoffs.TierFor(res.Score)
					if tier == 0 {
						continue
					}
					candidates = append(candidates, &Candidate{
						A:        ra,
						B:        rb,
						Score:    res.Score,
						Evidence: res.Evidence,
						Tier:     tier,
					})
				}
			}
		}
		if opts.Progress != nil {
			opts.Progress(end, len(keys))
		}
	}

	return candidates, nil
}
