// Package blocking partitions two record collections into candidate groups
// that share a cheap signature key, bounding pairwise comparison to
// same-block pairs.
package blocking

import (
	"sort"
	"strconv"

	"censuslink/internal/census"
)

// Policy controls how records with missing core demographics are blocked.
type Policy int

const (
	// PolicyStrict contributes no keys for records missing race or gender.
	PolicyStrict Policy = iota
	// PolicyPermissive substitutes an "unknown" sentinel for missing race
	// or gender instead of dropping the record.
	PolicyPermissive
)

const unknownCategory = "U"

// Sides holds the per-side record lists for one block.
type Sides struct {
	A []*census.Record
	B []*census.Record
}

// Index maps block keys to the records falling in each block.
type Index map[string]*Sides

// Keys computes the 0-3 blocking keys for a record. Keys with empty
// required fields are dropped.
func Keys(r *census.Record, policy Policy) []string {
	race := r.Race
	if race != "" {
		race = race[:1]
	}
	gender := r.Gender

	if policy == PolicyStrict && (race == "" || gender == "") {
		return nil
	}
	if race == "" {
		race = unknownCategory
	}
	if gender == "" {
		gender = unknownCategory
	}

	decade := r.BirthDecade
	if decade == 0 {
		decade = r.BirthYear
	}

	keys := make([]string, 0, 3)

	// B1 catches surname spelling drift through the phonetic code.
	if r.NYSIISLast != "" && r.NormFirstName != "" {
		keys = append(keys, "B1:"+r.NYSIISLast+"|"+r.NormFirstName+"|"+gender+"|"+race)
	}
	// B2 catches surname changes (marriage, transcription) on first name
	// plus birth decade.
	if r.NormFirstName != "" && decade != 0 {
		keys = append(keys, "B2:"+r.NormFirstName+"|"+strconv.Itoa(decade)+"|"+gender+"|"+race)
	}
	// B3 catches first-name variation (nicknames) on surname plus birth
	// place prefix.
	if place := prefix(r.BirthPlace, 2); r.LastName != "" && place != "" {
		keys = append(keys, "B3:"+r.LastName+"|"+gender+"|"+race+"|"+place)
	}

	return keys
}

// Build indexes both sides into blocks. For a self-join pass the same
// record slice on both sides.
func Build(a, b []*census.Record, policy Policy) Index {
	idx := make(Index)
	for _, r := range a {
		for _, key := range Keys(r, policy) {
			idx.sides(key).A = append(idx.sides(key).A, r)
		}
	}
	for _, r := range b {
		for _, key := range Keys(r, policy) {
			idx.sides(key).B = append(idx.sides(key).B, r)
		}
	}
	return idx
}

// SortedKeys returns the block keys in deterministic order. Candidate
// generation iterates in this order so tie-breaking by insertion order is
// stable across runs.
func (idx Index) SortedKeys() []string {
	keys := make([]string, 0, len(idx))
	for key := range idx {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func (idx Index) sides(key string) *Sides {
	s, ok := idx[key]
	if !ok {
		s = &Sides{}
		idx[key] = s
	}
	return s
}

func prefix(s string, n int) string {
	if len(s) < n {
		return s
	}
	return s[:n]
}

