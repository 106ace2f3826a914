package linker

import "sort"

// Resolve greedily assigns candidates to tiers so each line identifier
// appears in at most one accepted pair on either side. Candidates are
// walked in descending score order; ties keep input order (stable sort),
// which makes resolution deterministic for a given candidate slice. In
// self-join mode both sides share one identifier namespace.
func Resolve(candidates []*Candidate, selfJoin bool) Tiers {
	ordered := make([]*Candidate, len(candidates))
	copy(ordered, candidates)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Score > ordered[j].Score
	})

	usedA := make(map[string]struct{})
	usedB := usedA
	if !selfJoin {
		usedB = make(map[string]struct{})
	}

	var tiers Tiers
	for _, cand := range ordered {
		if cand.Tier == 0 {
			continue
		}
		if _, taken := usedA[cand.A.Line]; taken {
			continue
		}
		if _, taken := usedB[cand.B.Line]; taken {
			continue
		}
		usedA[cand.A.Line] = struct{}{}
		usedB[cand.B.Line] = struct{}{}

		switch cand.Tier {
		case 1:
			tiers.Tier1 = append(tiers.Tier1, cand)
		case 2:
			tiers.Tier2 = append(tiers.Tier2, cand)
		case 3:
			tiers.Tier3 = append(tiers.Tier3, cand)
		}
	}
	return tiers
}
