package scoring

import (
	"censuslink/internal/census"
	"censuslink/internal/similarity"
)

// Result is the outcome of scoring one candidate pair: the summed score
// and every rule that fired, in firing order.
type Result struct {
	Score    int
	Evidence []string
}

// Score evaluates one candidate pair. Side A denotes the earlier (or
// primary) enumeration. freq may be nil to skip rarity compensation.
func Score(a, b *census.Record, mode Mode, p Params, freq *Frequencies) Result {
	score := 0
	evidence := make([]string, 0, 8)
	add := func(delta int, label string) {
		score += delta
		evidence = append(evidence, label)
	}

	yearDiff := b.BirthYear - a.BirthYear
	absDiff := yearDiff
	if absDiff < 0 {
		absDiff = -absDiff
	}

	// Penalties first: a gender flip dominates any positive signal.
	if a.Gender != "" && b.Gender != "" && a.Gender != b.Gender {
		add(p.GenderMismatch, "Gender mismatch")
	}
	switch mode {
	case ModeMatch:
		// People do not get younger between enumerations; tolerate the
		// usual transcription slack, penalize beyond it.
		if a.BirthYear != 0 && b.BirthYear != 0 && yearDiff < -p.RegressionYears {
			add(p.RegressionPenalty, "Birth year regression")
		}
	case ModeDedup:
		if a.BirthYear != 0 && b.BirthYear != 0 && absDiff >= p.DedupYearGap {
			add(p.DedupYearGapPenalty, "Birth year disagreement")
		}
	}
	if a.BirthPlace != "" && b.BirthPlace != "" &&
		a.BirthPlace != p.DefaultBirthPlace && b.BirthPlace != p.DefaultBirthPlace &&
		a.BirthPlace != b.BirthPlace {
		add(p.BirthPlacePenalty, "Contradictory birth place")
	}
	if a.NYSIISLast != "" && b.NYSIISLast != "" && a.NYSIISLast != b.NYSIISLast {
		add(p.PhoneticLastMismatch, "NYSIIS last mismatch")
	}
	if a.NYSIISFirst != "" && b.NYSIISFirst != "" && a.NYSIISFirst != b.NYSIISFirst {
		add(p.PhoneticFirstMismatch, "NYSIIS first mismatch")
	}

	// Birth year rewards.
	switch {
	case a.BirthYear != 0 && a.BirthYear == b.BirthYear:
		add(p.ExactBirthYear, "Exact birth year")
	case a.BirthYear != 0 && b.BirthYear != 0 && absDiff <= 2:
		add(p.BirthYearWithin2, "Birth year +/- 2")
	case a.BirthYear != 0 && b.BirthYear != 0 && absDiff <= 5:
		add(p.BirthYearWithin5, "Birth year +/- 5")
	}

	// Name ladder, highest rung only.
	nameScore := 0
	switch {
	case a.FullName != "" && a.FullName == b.FullName:
		nameScore = p.ExactFullName
		add(nameScore, "Exact Full")
	case a.LastName != "" && a.LastName == b.LastName && a.FirstName != "" && a.FirstName == b.FirstName:
		nameScore = p.ExactFirstLast
		add(nameScore, "Exact First/Last")
	case a.LastName != "" && a.LastName == b.LastName && a.NormFirstName != "" && a.NormFirstName == b.NormFirstName:
		nameScore = p.ExactLastNormFirst
		add(nameScore, "Exact Last + Norm First")
	case a.LastName != "" && a.LastName == b.LastName &&
		similarity.JaroWinkler(a.FirstName, b.FirstName) > p.FuzzyFirstCutoff:
		nameScore = p.ExactLastFuzzyFirst
		add(nameScore, "Exact Last + Fuzzy First")
	case a.NYSIISLast != "" && a.NYSIISLast == b.NYSIISLast && a.NormFirstName != "" && a.NormFirstName == b.NormFirstName:
		nameScore = p.PhoneticLastNormFirst
		add(nameScore, "NYSIIS Last + Norm First")
	}

	// Race: exact, or the two codes historical transcribers used
	// interchangeably.
	switch {
	case a.Race != "" && a.Race == b.Race:
		add(p.RaceMatch, "Race Match")
	case a.Race == p.CompatibleRaceA && b.Race == p.CompatibleRaceB,
		a.Race == p.CompatibleRaceB && b.Race == p.CompatibleRaceA:
		add(p.RaceMatch, "Race Match")
	}

	if a.NormOccupation != "" && a.NormOccupation == b.NormOccupation {
		add(p.OccupationMatch, "Norm occupation")
	}

	// Rarity compensation strengthens or weakens an already-positive name
	// signal; it never creates one.
	if freq != nil && nameScore > 0 {
		if delta, kind := adjustment(freq.First[a.FirstName], p); delta != 0 {
			add(delta, "First name "+kind)
		}
		if delta, kind := adjustment(freq.Last[a.LastName], p); delta != 0 {
			add(delta, "Last name "+kind)
		}
	}

	return Result{Score: score, Evidence: evidence}
}
