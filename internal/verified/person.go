package verified

import (
	"sort"
	"strconv"
	"strings"
)

// Person is one row of the verified-person table.
type Person struct {
	EgoID string

	Spouse string
	Mother string
	Father string

	Children      []string
	Siblings      []string
	Cousins       []string
	Niblings      []string
	Grandchildren []string
}

// Columns is the fixed export column order for the verified table.
var Columns = []string{
	"egoid", "spouse", "mother", "father",
	"children", "siblings", "cousins", "niblings", "grandchildren",
}

// Row renders the person in Columns order with comma-joined lists.
func (p *Person) Row() []string {
	return []string{
		p.EgoID, p.Spouse, p.Mother, p.Father,
		JoinIDs(p.Children), JoinIDs(p.Siblings),
		JoinIDs(p.Cousins), JoinIDs(p.Niblings), JoinIDs(p.Grandchildren),
	}
}

// normalize de-duplicates every relation list and removes self-references.
func (p *Person) normalize() {
	p.Children = dedupe(p.Children, p.EgoID)
	p.Siblings = dedupe(p.Siblings, p.EgoID)
	p.Cousins = dedupe(p.Cousins, p.EgoID)
	p.Niblings = dedupe(p.Niblings, p.EgoID)
	p.Grandchildren = dedupe(p.Grandchildren, p.EgoID)
	if p.Spouse == p.EgoID {
		p.Spouse = ""
	}
	if p.Mother == p.EgoID {
		p.Mother = ""
	}
	if p.Father == p.EgoID {
		p.Father = ""
	}
}

// JoinIDs renders an id list as the persisted comma-joined form.
func JoinIDs(ids []string) string {
	return strings.Join(ids, ",")
}

// SplitIDs parses the persisted comma-joined form, dropping empties.
func SplitIDs(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	ids := make([]string, 0, len(parts))
	for _, part := range parts {
		if id := strings.TrimSpace(part); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// appendID adds an id to a list unless it is empty, the owner itself, or
// already present.
func appendID(list []string, id, owner string) []string {
	if id == "" || id == owner {
		return list
	}
	for _, existing := range list {
		if existing == id {
			return list
		}
	}
	return append(list, id)
}

func dedupe(list []string, owner string) []string {
	out := list[:0]
	seen := make(map[string]struct{}, len(list))
	for _, id := range list {
		if id == "" || id == owner {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// sortEgoIDs orders ids numerically when possible, lexically otherwise;
// export output stays stable across runs.
func sortEgoIDs(ids []string) {
	sort.Slice(ids, func(i, j int) bool {
		a, errA := strconv.Atoi(ids[i])
		b, errB := strconv.Atoi(ids[j])
		if errA == nil && errB == nil {
			return a < b
		}
		if errA == nil {
			return true
		}
		if errB == nil {
			return false
		}
		return ids[i] < ids[j]
	})
}
