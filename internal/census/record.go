package census

import (
	"strconv"
	"strings"

	"censuslink/internal/similarity"
)

// Record is one census person-row. All string fields are normalized
// (uppercased, whitespace-collapsed, diacritics folded) and derived fields
// (full name, normalized first name, phonetic codes, birth decade) are
// filled in when missing from the source.
type Record struct {
	Line string

	FirstName  string
	MiddleName string
	LastName   string
	FullName   string

	NormFirstName string
	NYSIISFirst   string
	NYSIISLast    string

	Gender      string
	Race        string
	Age         int
	BirthYear   int
	BirthDecade int
	BirthPlace  string

	Occupation     string
	NormOccupation string

	Family   string
	Dwelling string
	Head     bool
	Relation string
	Marital  string

	// EgoID is the externally-assigned persistent person identity, empty
	// until a run (or a prior run's export) assigns one.
	EgoID string
}

// FromFields builds a Record from one raw field map. Missing optional
// fields default to empty; only normalization happens here, no validation.
func FromFields(fields map[string]string) *Record {
	get := func(names ...string) string {
		for _, name := range names {
			if v := strings.TrimSpace(fields[name]); v != "" {
				return v
			}
		}
		return ""
	}

	r := &Record{
		Line:           strings.TrimSpace(get("line")),
		FirstName:      similarity.Clean(get("first_name")),
		MiddleName:     similarity.Clean(get("middle_name")),
		LastName:       similarity.Clean(get("last_name", "last-_name", "last_name_")),
		FullName:       similarity.Clean(get("full_name")),
		NormFirstName:  similarity.Clean(get("norm_first_name")),
		NYSIISFirst:    similarity.Clean(get("nysiis_first_name")),
		NYSIISLast:     similarity.Clean(get("nysiis_last_name")),
		Gender:         similarity.Clean(get("gender")),
		Race:           similarity.Clean(get("race")),
		Age:            parseInt(get("age")),
		BirthYear:      parseInt(get("birth_year")),
		BirthDecade:    parseInt(get("birth_year_10")),
		BirthPlace:     similarity.Clean(get("birth_place")),
		Occupation:     similarity.Clean(get("occupation")),
		NormOccupation: similarity.Clean(get("norm_occupation")),
		Family:         get("family", "family_number"),
		Dwelling:       get("dwelling"),
		Head:           strings.EqualFold(get("head"), "Y"),
		Relation:       similarity.Clean(get("relation")),
		Marital:        similarity.Clean(get("marital", "marital_status")),
		EgoID:          get("egoid"),
	}

	if r.FullName == "" {
		r.FullName = joinName(r.FirstName, r.MiddleName, r.LastName)
	}
	if r.NormFirstName == "" {
		r.NormFirstName = r.FirstName
	}
	if r.NYSIISFirst == "" {
		r.NYSIISFirst = similarity.NYSIIS(r.FirstName)
	}
	if r.NYSIISLast == "" {
		r.NYSIISLast = similarity.NYSIIS(r.LastName)
	}
	if r.BirthDecade == 0 && r.BirthYear != 0 {
		r.BirthDecade = r.BirthYear / 10 * 10
	}

	return r
}

// HouseholdKey returns the grouping key for household features: family
// number when present, dwelling otherwise.
func (r *Record) HouseholdKey() string {
	if r.Family != "" {
		return r.Family
	}
	return r.Dwelling
}

func joinName(first, middle, last string) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{first, middle, last} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

func parseInt(value string) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0
	}
	return n
}
