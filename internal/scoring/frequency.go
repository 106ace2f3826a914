package scoring

import "censuslink/internal/census"

// Frequencies counts first and last name occurrences across the relevant
// dataset(s). Optional input to Score; when present, rare names strengthen
// an already-positive name signal and very common names weaken it.
type Frequencies struct {
	First map[string]int
	Last  map[string]int
}

// BuildFrequencies tallies name counts over one or more record sets.
func BuildFrequencies(sides ...[]*census.Record) *Frequencies {
	f := &Frequencies{
		First: make(map[string]int),
		Last:  make(map[string]int),
	}
	for _, records := range sides {
		for _, r := range records {
			if r.FirstName != "" {
				f.First[r.FirstName]++
			}
			if r.LastName != "" {
				f.Last[r.LastName]++
			}
		}
	}
	return f
}

// adjustment maps one name's occurrence count to a bounded score delta and
// an evidence label suffix. A zero count means the name is not in the
// tables and gets no adjustment.
func adjustment(count int, p Params) (int, string) {
	switch {
	case count == 0:
		return 0, ""
	case count <= p.RareMax:
		return p.RareBonus, "rare"
	case count <= p.UncommonMax:
		return p.UncommonBonus, "uncommon"
	case count >= p.CommonMin:
		return p.CommonPenalty, "common"
	}
	return 0, ""
}
