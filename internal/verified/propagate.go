package verified

import (
	"censuslink/internal/relations"
)

// Policy controls which inferred relations are written back to both
// parties of an edge rather than only to the household head's row.
type Policy struct {
	SymmetricSiblings bool
	SymmetricCousins  bool
}

// DefaultPolicy mirrors siblings on both rows and keeps cousins
// single-sided.
func DefaultPolicy() Policy {
	return Policy{SymmetricSiblings: true, SymmetricCousins: false}
}

// Stats summarizes one propagation run.
type Stats struct {
	// Applied counts edges written into the table.
	Applied int
	// Skipped counts edges whose relative carries no persisted identity.
	Skipped int
	// Unstored counts in-law edges, which have no column in the table.
	Unstored int
	// ClosurePasses is the number of inheritance passes until fixpoint.
	ClosurePasses int
}

// inheritKind names which relation list a pending entry pulls from the
// via person into the owner.
type inheritKind int

const (
	// inheritFromParent unions the via person's children (minus the
	// owner) into the owner's siblings.
	inheritFromParent inheritKind = iota
	// inheritSiblings unions the via person's siblings into the owner's.
	inheritSiblings
	// inheritCousins unions the via person's cousins into the owner's.
	inheritCousins
)

// pending is one deferred inheritance step. Entries are queued while
// edges are applied and resolved afterwards, once every direct relation
// is in place.
type pending struct {
	owner string
	via   string
	kind  inheritKind
}

// Table is the in-memory working set for propagation. Load it from the
// store, apply edges, then persist the touched rows.
type Table struct {
	people map[string]*Person
}

// NewTable wraps existing rows; nil entries are ignored.
func NewTable(people []*Person) *Table {
	t := &Table{people: make(map[string]*Person, len(people))}
	for _, p := range people {
		if p != nil && p.EgoID != "" {
			t.people[p.EgoID] = p
		}
	}
	return t
}

// Person returns the row for egoid, creating it on first reference.
func (t *Table) Person(egoid string) *Person {
	if p, ok := t.people[egoid]; ok {
		return p
	}
	p := &Person{EgoID: egoid}
	t.people[egoid] = p
	return p
}

// People returns every row ordered by ego id.
func (t *Table) People() []*Person {
	ids := make([]string, 0, len(t.people))
	for id := range t.people {
		ids = append(ids, id)
	}
	sortEgoIDs(ids)
	people := make([]*Person, 0, len(ids))
	for _, id := range ids {
		people = append(people, t.people[id])
	}
	return people
}

// Len returns the number of rows in the working set.
func (t *Table) Len() int {
	return len(t.people)
}

// Apply writes inferred kinship edges into the table. Spouse edges are
// applied first so parent slots can be assigned to both partners when
// children arrive in the second pass. The inheritance closure then runs
// pending entries to a fixpoint; re-applying the same edges is a no-op.
func (t *Table) Apply(edges []relations.Edge, policy Policy) Stats {
	var stats Stats
	var queue []pending

	for _, edge := range edges {
		if edge.Kind == relations.KindSpouse {
			t.applySpouse(edge, &stats)
		}
	}

	for _, edge := range edges {
		if edge.Kind == relations.KindSpouse {
			continue
		}
		rel := edge.RelativeEgoID()
		if rel == "" {
			stats.Skipped++
			continue
		}
		if rel == edge.HeadEgoID {
			continue
		}
		switch edge.Kind {
		case relations.KindBrotherInLaw, relations.KindSisterInLaw, relations.KindInLaw:
			// In-law edges have no column; they stay inference-only.
			stats.Unstored++
			continue
		}

		head := t.Person(edge.HeadEgoID)
		relative := t.Person(rel)

		switch edge.Kind {
		case relations.KindChild:
			head.Children = appendID(head.Children, rel, head.EgoID)
			if head.Spouse != "" {
				spouse := t.Person(head.Spouse)
				spouse.Children = appendID(spouse.Children, rel, spouse.EgoID)
			}
			t.assignParents(relative, edge, head)
			queue = append(queue, pending{owner: rel, via: head.EgoID, kind: inheritFromParent})
		case relations.KindGrandchild:
			head.Grandchildren = appendID(head.Grandchildren, rel, head.EgoID)
		case relations.KindSibling:
			head.Siblings = appendID(head.Siblings, rel, head.EgoID)
			queue = append(queue, pending{owner: head.EgoID, via: rel, kind: inheritSiblings})
			if policy.SymmetricSiblings {
				relative.Siblings = appendID(relative.Siblings, head.EgoID, rel)
				queue = append(queue, pending{owner: rel, via: head.EgoID, kind: inheritSiblings})
			}
		case relations.KindNibling:
			head.Niblings = appendID(head.Niblings, rel, head.EgoID)
		case relations.KindMother:
			if head.Mother == "" {
				head.Mother = rel
			}
			relative.Children = appendID(relative.Children, head.EgoID, rel)
			queue = append(queue, pending{owner: head.EgoID, via: rel, kind: inheritFromParent})
		case relations.KindFather:
			if head.Father == "" {
				head.Father = rel
			}
			relative.Children = appendID(relative.Children, head.EgoID, rel)
			queue = append(queue, pending{owner: head.EgoID, via: rel, kind: inheritFromParent})
		case relations.KindCousin:
			head.Cousins = appendID(head.Cousins, rel, head.EgoID)
			queue = append(queue, pending{owner: head.EgoID, via: rel, kind: inheritCousins})
			if policy.SymmetricCousins {
				relative.Cousins = appendID(relative.Cousins, head.EgoID, rel)
				queue = append(queue, pending{owner: rel, via: head.EgoID, kind: inheritCousins})
			}
		}
		stats.Applied++
	}

	stats.ClosurePasses = t.resolve(queue)

	for _, p := range t.people {
		p.normalize()
		sortEgoIDs(p.Children)
		sortEgoIDs(p.Siblings)
		sortEgoIDs(p.Cousins)
		sortEgoIDs(p.Niblings)
		sortEgoIDs(p.Grandchildren)
	}
	return stats
}

func (t *Table) applySpouse(edge relations.Edge, stats *Stats) {
	rel := edge.RelativeEgoID()
	if rel == "" {
		stats.Skipped++
		return
	}
	if rel == edge.HeadEgoID {
		return
	}
	head := t.Person(edge.HeadEgoID)
	relative := t.Person(rel)
	if head.Spouse == "" {
		head.Spouse = rel
	}
	if relative.Spouse == "" {
		relative.Spouse = head.EgoID
	}
	stats.Applied++
}

// assignParents fills the child's empty parent slots from the head's
// gender: a male head is recorded as father and his spouse as mother,
// a female head the other way around. Unknown gender defaults to father.
func (t *Table) assignParents(child *Person, edge relations.Edge, head *Person) {
	headIsMother := edge.Head != nil && edge.Head.Gender == "F"
	if headIsMother {
		if child.Mother == "" {
			child.Mother = head.EgoID
		}
		if child.Father == "" && head.Spouse != "" {
			child.Father = head.Spouse
		}
		return
	}
	if child.Father == "" {
		child.Father = head.EgoID
	}
	if child.Mother == "" && head.Spouse != "" {
		child.Mother = head.Spouse
	}
}

// resolve runs the pending inheritance entries to a fixpoint. Relation
// lists only grow, so repeating passes until one changes nothing always
// terminates, even when entries reference each other in a cycle.
func (t *Table) resolve(queue []pending) int {
	passes := 0
	for {
		passes++
		changed := false
		for _, entry := range queue {
			owner := t.Person(entry.owner)
			via := t.Person(entry.via)
			switch entry.kind {
			case inheritFromParent:
				for _, sibling := range via.Children {
					if sibling == owner.EgoID {
						continue
					}
					if next := appendID(owner.Siblings, sibling, owner.EgoID); len(next) != len(owner.Siblings) {
						owner.Siblings = next
						changed = true
					}
				}
			case inheritSiblings:
				for _, sibling := range via.Siblings {
					if next := appendID(owner.Siblings, sibling, owner.EgoID); len(next) != len(owner.Siblings) {
						owner.Siblings = next
						changed = true
					}
				}
			case inheritCousins:
				for _, cousin := range via.Cousins {
					if next := appendID(owner.Cousins, cousin, owner.EgoID); len(next) != len(owner.Cousins) {
						owner.Cousins = next
						changed = true
					}
				}
			}
		}
		if !changed {
			return passes
		}
	}
}
