package scoring

// Mode selects the rule set for a scoring pass.
type Mode int

const (
	// ModeMatch links two different census years; side A is the earlier
	// enumeration.
	ModeMatch Mode = iota
	// ModeDedup self-joins one enumeration, so both sides share a census
	// year and the one-directional age rules do not apply.
	ModeDedup
)

// Params holds the scoring weights and thresholds. The values are
// domain-specific constants for the two censuses; Default returns the
// calibrated set and config overrides individual knobs.
type Params struct {
	// Name ladder, highest rung wins.
	ExactFullName         int
	ExactFirstLast        int
	ExactLastNormFirst    int
	ExactLastFuzzyFirst   int
	PhoneticLastNormFirst int

	// FuzzyFirstCutoff gates the exact-last + fuzzy-first rung.
	FuzzyFirstCutoff float64

	// Birth year rewards, tiered by absolute difference.
	ExactBirthYear   int
	BirthYearWithin2 int
	BirthYearWithin5 int

	RaceMatch       int
	OccupationMatch int

	// Penalties.
	GenderMismatch        int
	RegressionYears       int // tolerated backwards birth-year movement (match mode)
	RegressionPenalty     int
	DedupYearGap          int // absolute gap treated as severe disagreement (dedup mode)
	DedupYearGapPenalty   int
	BirthPlacePenalty     int
	PhoneticLastMismatch  int
	PhoneticFirstMismatch int
	DefaultBirthPlace     string // placeholder value exempt from contradiction checks
	CompatibleRaceA       string
	CompatibleRaceB       string

	// Rarity compensation, applied per name when frequency tables are
	// supplied and the name rungs already scored positive.
	RareMax       int
	RareBonus     int
	UncommonMax   int
	UncommonBonus int
	CommonMin     int
	CommonPenalty int
}

// Default returns the calibrated scoring parameters.
func Default() Params {
	return Params{
		ExactFullName:         100,
		ExactFirstLast:        80,
		ExactLastNormFirst:    70,
		ExactLastFuzzyFirst:   60,
		PhoneticLastNormFirst: 50,
		FuzzyFirstCutoff:      0.85,

		ExactBirthYear:   50,
		BirthYearWithin2: 30,
		BirthYearWithin5: 20,

		RaceMatch:       10,
		OccupationMatch: 10,

		GenderMismatch:        -500,
		RegressionYears:       10,
		RegressionPenalty:     -100,
		DedupYearGap:          10,
		DedupYearGapPenalty:   -200,
		BirthPlacePenalty:     -50,
		PhoneticLastMismatch:  -25,
		PhoneticFirstMismatch: -15,
		DefaultBirthPlace:     "VA",
		CompatibleRaceA:       "B",
		CompatibleRaceB:       "M",

		RareMax:       5,
		RareBonus:     15,
		UncommonMax:   20,
		UncommonBonus: 8,
		CommonMin:     200,
		CommonPenalty: -10,
	}
}
