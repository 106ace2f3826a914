package blocking

import (
	"strings"
	"testing"

	"censuslink/internal/census"
)

func record(fields map[string]string) *census.Record {
	return census.FromFields(fields)
}

func TestKeys_AllThree(t *testing.T) {
	r := record(map[string]string{
		"line":        "1",
		"first_name":  "John",
		"last_name":   "Smith",
		"gender":      "M",
		"race":        "W",
		"birth_year":  "1843",
		"birth_place": "VA",
	})
	keys := Keys(r, PolicyStrict)
	if len(keys) != 3 {
		t.Fatalf("expected 3 keys, got %d: %v", len(keys), keys)
	}
	for i, prefix := range []string{"B1:", "B2:", "B3:"} {
		if !strings.HasPrefix(keys[i], prefix) {
			t.Errorf("key %d = %q, want prefix %q", i, keys[i], prefix)
		}
	}
}

func TestKeys_StrictDropsMissingDemographics(t *testing.T) {
	r := record(map[string]string{
		"line":       "1",
		"first_name": "John",
		"last_name":  "Smith",
		"birth_year": "1843",
	})
	if keys := Keys(r, PolicyStrict); keys != nil {
		t.Fatalf("strict policy should drop record, got %v", keys)
	}
}

func TestKeys_PermissiveDefaultsUnknown(t *testing.T) {
	r := record(map[string]string{
		"line":       "1",
		"first_name": "John",
		"last_name":  "Smith",
		"birth_year": "1843",
	})
	keys := Keys(r, PolicyPermissive)
	if len(keys) == 0 {
		t.Fatal("permissive policy should keep record")
	}
	for _, key := range keys {
		if !strings.Contains(key, "|U|") && !strings.HasSuffix(key, "|U") {
			t.Errorf("key %q missing unknown sentinel", key)
		}
	}
}

func TestKeys_EmptyFieldsDropKey(t *testing.T) {
	r := record(map[string]string{
		"line":   "1",
		"gender": "F",
		"race":   "B",
	})
	if keys := Keys(r, PolicyStrict); len(keys) != 0 {
		t.Fatalf("expected no keys without name fields, got %v", keys)
	}
}

func TestBuild_GroupsBySide(t *testing.T) {
	a := record(map[string]string{"line": "1", "first_name": "John", "last_name": "Smith", "gender": "M", "race": "W", "birth_year": "1843"})
	b := record(map[string]string{"line": "2", "first_name": "John", "last_name": "Smyth", "gender": "M", "race": "W", "birth_year": "1844"})

	idx := Build([]*census.Record{a}, []*census.Record{b}, PolicyStrict)
	shared := 0
	for _, sides := range idx {
		if len(sides.A) > 0 && len(sides.B) > 0 {
			shared++
		}
	}
	if shared == 0 {
		t.Fatal("expected a shared block for same first name and birth decade")
	}
}

func TestSortedKeys_Deterministic(t *testing.T) {
	a := record(map[string]string{"line": "1", "first_name": "John", "last_name": "Smith", "gender": "M", "race": "W", "birth_year": "1843", "birth_place": "VA"})
	idx := Build([]*census.Record{a}, nil, PolicyStrict)
	first := idx.SortedKeys()
	second := idx.SortedKeys()
	if len(first) != len(second) {
		t.Fatalf("key counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("key order differs at %d: %q vs %q", i, first[i], second[i])
		}
	}
}
