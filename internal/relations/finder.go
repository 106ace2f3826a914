// Package relations infers kinship edges between household members across
// two enumerations.
//
// The finder works from household structure alone: each later-census head
// with a persisted identity is followed back to the earlier census, and
// every classifiable member of the later household is matched against the
// earlier household by a local name/age scorer. Members with no role
// mapping, heads with no earlier identity, and matches below the score
// threshold are skipped silently; sparsity is expected, not an error.
package relations

import (
	"context"
	"strings"

	"censuslink/internal/census"
	"censuslink/internal/similarity"
)

// Kind classifies a kinship edge by the relative's relation to the head.
type Kind string

const (
	KindSpouse       Kind = "Spouse"
	KindChild        Kind = "Child"
	KindGrandchild   Kind = "Grand-child"
	KindSibling      Kind = "Sibling"
	KindNibling      Kind = "Nibling"
	KindMother       Kind = "Mother"
	KindFather       Kind = "Father"
	KindCousin       Kind = "Cousin"
	KindBrotherInLaw Kind = "Brother-in-law"
	KindSisterInLaw  Kind = "Sister-in-law"
	KindInLaw        Kind = "In-Law"
)

// Edge is one inferred kinship fact: the later-census head, the later
// household member whose role label produced the classification, and the
// best-matching earlier-census record for that member.
type Edge struct {
	HeadEgoID string
	Head      *census.Record
	Member    *census.Record
	Match     *census.Record
	Kind      Kind
}

// RelativeEgoID returns the matched earlier record's persisted identity,
// empty when the match has none yet.
func (e Edge) RelativeEgoID() string {
	return e.Match.EgoID
}

// Options configures the relation finder.
type Options struct {
	// MinMemberScore is the aggregate name/age score a household member
	// match must clear; below it no edge is emitted.
	MinMemberScore int

	BatchSize int
	Progress  func(done, total int)
}

// DefaultOptions returns the calibrated finder thresholds.
func DefaultOptions() Options {
	return Options{MinMemberScore: 60, BatchSize: 50}
}

// Find walks every later-census household head carrying an ego id,
// resolves the equivalent earlier household through that identity, and
// emits kinship edges for classifiable members.
func Find(ctx context.Context, earlier, later *census.Collection, opts Options) ([]Edge, error) {
	housesEarlier := census.GroupHouseholds(earlier)
	housesLater := census.GroupHouseholds(later)

	var heads []*census.Record
	for _, r := range later.Records {
		if r.Head {
			heads = append(heads, r)
		}
	}

	batch := opts.BatchSize
	if batch <= 0 {
		batch = 50
	}

	var edges []Edge
	for start := 0; start < len(heads); start += batch {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		end := min(start+batch, len(heads))
		for _, head := range heads[start:end] {
			if head.EgoID == "" {
				continue
			}
			earlierHead := earlier.ByEgoID(head.EgoID)
			if earlierHead == nil {
				continue
			}
			laterMembers := housesLater.Members(head.HouseholdKey())
			earlierMembers := housesEarlier.Members(earlierHead.HouseholdKey())

			for _, member := range laterMembers {
				kind, ok := classify(member, head)
				if !ok {
					continue
				}
				match := bestMatch(member, earlierMembers, opts.MinMemberScore)
				if match == nil {
					continue
				}
				if match.EgoID != "" && match.EgoID == head.EgoID {
					continue
				}
				if kind == KindInLaw || kind == KindSisterInLaw {
					// An in-law sharing the head's surname is more likely
					// a mistranscribed blood relative; skip the clue.
					if match.LastName != "" && match.LastName == head.LastName {
						continue
					}
				}
				edges = append(edges, Edge{
					HeadEgoID: head.EgoID,
					Head:      head,
					Member:    member,
					Match:     match,
					Kind:      kind,
				})
			}
		}
		if opts.Progress != nil {
			opts.Progress(end, len(heads))
		}
	}
	return edges, nil
}

// classify maps a member's relation-to-head label to a kinship kind.
func classify(member, head *census.Record) (Kind, bool) {
	rel := strings.ToLower(member.Relation)
	switch {
	case rel == "wife":
		return KindSpouse, true
	case rel == "daughter" || rel == "son" || rel == "step-son" || rel == "step-daughter":
		return KindChild, true
	case rel == "grand-daughter" || rel == "grand-son":
		return KindGrandchild, true
	case rel == "brother" || rel == "sister":
		return KindSibling, true
	case rel == "niece" || rel == "nephew":
		return KindNibling, true
	case rel == "mother":
		return KindMother, true
	case rel == "father":
		return KindFather, true
	case strings.Contains(rel, "cousin"):
		return KindCousin, true
	case strings.Contains(rel, "brother-in-law") || strings.Contains(rel, "brother_in_law"):
		return KindBrotherInLaw, true
	case strings.Contains(rel, "sister") && strings.Contains(rel, "law"):
		// A sister-in-law recorded as married is the wife of a resident
		// brother, not a maiden-name clue.
		if member.Marital != "S" {
			return "", false
		}
		return KindSisterInLaw, true
	case strings.Contains(rel, "father-in-law") || strings.Contains(rel, "mother-in-law"):
		if member.LastName != "" && member.LastName == head.LastName {
			return "", false
		}
		return KindInLaw, true
	}
	return "", false
}

// bestMatch picks the earlier household member that best matches on first
// name and birth-year closeness. First-name similarity dominates. Returns
// nil when no member clears the threshold.
func bestMatch(member *census.Record, candidates []*census.Record, minScore int) *census.Record {
	var best *census.Record
	bestScore := -1

	for _, cand := range candidates {
		score := 0

		jw := similarity.JaroWinkler(cand.FirstName, member.FirstName)
		switch {
		case cand.FirstName != "" && cand.FirstName == member.FirstName:
			score += 100
		case jw > 0.85:
			score += 80
		case cand.NormFirstName != "" && cand.NormFirstName == member.NormFirstName:
			score += 60
		case jw > 0.7:
			score += 40
		}

		if cand.BirthYear != 0 && member.BirthYear != 0 {
			diff := cand.BirthYear - member.BirthYear
			if diff < 0 {
				diff = -diff
			}
			switch {
			case diff == 0:
				score += 100
			case diff <= 2:
				score += 80
			case diff <= 5:
				score += 40
			}
		}

		if score > bestScore {
			bestScore = score
			best = cand
		}
	}

	if bestScore > minScore {
		return best
	}
	return nil
}
