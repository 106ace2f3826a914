package linker

import "censuslink/internal/census"

// Candidate pairs one record from side A with one from side B. Created
// once per unique pair; score and tier may be revised upward exactly once
// during household boosting.
type Candidate struct {
	A *census.Record
	B *census.Record

	Score    int
	Evidence []string
	Tier     int

	boosted bool
}

// PairID identifies the candidate by its endpoints.
func (c *Candidate) PairID() string {
	return c.A.Line + "-" + c.B.Line
}

// Tiers buckets accepted candidates by confidence (1 highest).
type Tiers struct {
	Tier1 []*Candidate
	Tier2 []*Candidate
	Tier3 []*Candidate
}

// Total returns the number of accepted pairs across all tiers.
func (t Tiers) Total() int {
	return len(t.Tier1) + len(t.Tier2) + len(t.Tier3)
}

// All returns the accepted pairs in tier order.
func (t Tiers) All() []*Candidate {
	out := make([]*Candidate, 0, t.Total())
	out = append(out, t.Tier1...)
	out = append(out, t.Tier2...)
	out = append(out, t.Tier3...)
	return out
}

// Cutoffs holds the score floor and tier cut points for one mode.
type Cutoffs struct {
	Floor    int // minimum score to keep a candidate at all
	Tier1Min int // exclusive lower bound for tier 1
	Tier2Min int // inclusive lower bound for tier 2
}

// DefaultCutoffs returns the calibrated floor and cut points.
func DefaultCutoffs() Cutoffs {
	return Cutoffs{Floor: 60, Tier1Min: 90, Tier2Min: 80}
}

// TierFor maps a score to its confidence tier, 0 when below the floor.
func (c Cutoffs) TierFor(score int) int {
	switch {
	case score > c.Tier1Min:
		return 1
	case score >= c.Tier2Min:
		return 2
	case score >= c.Floor:
		return 3
	}
	return 0
}
