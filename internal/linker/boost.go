package linker

import (
	"context"
	"strings"

	"censuslink/internal/census"
	"censuslink/internal/scoring"
	"censuslink/internal/similarity"
)

// BoostOptions configures household-context boosting.
type BoostOptions struct {
	Mode   scoring.Mode
	Params scoring.Params
	Freq   *scoring.Frequencies

	Cutoffs Cutoffs
	// Floor is the lower acceptance bound for pairs created during
	// boosting; co-residents get a chance even when their standalone
	// score fell below the normal floor.
	Floor int

	HeadBonus        int
	HeadNameCutoff   float64
	SpouseBonus      int
	ChildBonus       int
	ParentBonus      int
	CoResidenceBonus int

	BatchSize int
	Progress  ProgressFunc
}

// DefaultBoostOptions returns the calibrated boosting bonuses.
func DefaultBoostOptions() BoostOptions {
	return BoostOptions{
		Cutoffs:          DefaultCutoffs(),
		Floor:            20,
		HeadBonus:        20,
		HeadNameCutoff:   0.9,
		SpouseBonus:      20,
		ChildBonus:       8,
		ParentBonus:      15,
		CoResidenceBonus: 15,
	}
}

// Boost re-scores household co-members of tier-1 anchors. For each anchor,
// every cross product of non-anchor co-members is looked up (or created
// against the lower floor) and granted role-heuristic bonuses plus a flat
// co-residence bonus. A pair is boosted at most once and its tier can only
// improve. Returns the updated candidate set and the count of pairs whose
// tier changed.
func Boost(ctx context.Context, candidates []*Candidate, anchors []*Candidate, householdsA, householdsB census.Households, opts BoostOptions) ([]*Candidate, int, error) {
	byPair := make(map[string]*Candidate, len(candidates))
	for _, c := range candidates {
		byPair[c.PairID()] = c
	}
	out := candidates

	batch := opts.BatchSize
	if batch <= 0 {
		batch = 50
	}

	changed := 0
	for start := 0; start < len(anchors); start += batch {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}
		end := min(start+batch, len(anchors))
		for _, anchor := range anchors[start:end] {
			membersA := householdsA.Members(anchor.A.HouseholdKey())
			membersB := householdsB.Members(anchor.B.HouseholdKey())

			for _, a := range membersA {
				if a.Line == anchor.A.Line {
					continue
				}
				for _, b := range membersB {
					if b.Line == anchor.B.Line {
						continue
					}

					pairID := a.Line + "-" + b.Line
					cand, ok := byPair[pairID]
					if !ok {
						res := scoring.Score(a, b, opts.Mode, opts.Params, opts.Freq)
						if res.Score <= opts.Floor {
							continue
						}
						cand = &Candidate{A: a, B: b, Score: res.Score, Evidence: res.Evidence}
						byPair[pairID] = cand
						out = append(out, cand)
					}
					if cand.boosted {
						continue
					}
					cand.boosted = true

					bonus := 0
					reasons := make([]string, 0, 4)
					relation := strings.ToUpper(b.Relation)

					if relation == "SELF" || relation == "HEAD" {
						if similarity.JaroWinkler(a.FullName, b.FullName) > opts.HeadNameCutoff {
							bonus += opts.HeadBonus
							reasons = append(reasons, "Head Match")
						}
					}
					if a.Gender != "" && b.Gender != "" && a.Gender != b.Gender {
						bonus += opts.SpouseBonus
						reasons = append(reasons, "Spouse/Context")
					}
					if strings.Contains(relation, "SON") || strings.Contains(relation, "DAU") || strings.Contains(relation, "CHILD") {
						bonus += opts.ChildBonus
						reasons = append(reasons, "Child Context")
					}
					if strings.Contains(relation, "FATHER") || strings.Contains(relation, "MOTHER") {
						bonus += opts.ParentBonus
						reasons = append(reasons, "Parent Context")
					}
					bonus += opts.CoResidenceBonus
					reasons = append(reasons, "Co-residence")

					cand.Score += bonus
					cand.Evidence = append(cand.Evidence, reasons...)

					newTier := opts.Cutoffs.TierFor(cand.Score)
					if newTier > 0 && (cand.Tier == 0 || newTier < cand.Tier) {
						cand.Tier = newTier
						changed++
					}
				}
			}
		}
		if opts.Progress != nil {
			opts.Progress(end, len(anchors))
		}
	}

	return out, changed, nil
}
