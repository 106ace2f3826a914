package verified

import (
	"reflect"
	"testing"

	"censuslink/internal/census"
	"censuslink/internal/relations"
)

func edge(t *testing.T, kind relations.Kind, headEgoID, headGender, matchEgoID string) relations.Edge {
	t.Helper()
	head := census.FromFields(map[string]string{"line": "1", "egoid": headEgoID, "gender": headGender})
	match := census.FromFields(map[string]string{"line": "2", "egoid": matchEgoID})
	return relations.Edge{
		HeadEgoID: headEgoID,
		Head:      head,
		Member:    census.FromFields(map[string]string{"line": "3"}),
		Match:     match,
		Kind:      kind,
	}
}

func TestApply_SpouseSymmetric(t *testing.T) {
	table := NewTable(nil)
	stats := table.Apply([]relations.Edge{
		edge(t, relations.KindSpouse, "100", "M", "200"),
	}, DefaultPolicy())

	if stats.Applied != 1 {
		t.Fatalf("applied = %d, want 1", stats.Applied)
	}
	head := table.Person("100")
	wife := table.Person("200")
	if head.Spouse != "200" || wife.Spouse != "100" {
		t.Fatalf("spouse fields = %q/%q", head.Spouse, wife.Spouse)
	}
	for _, p := range []*Person{head, wife} {
		if p.Mother != "" || p.Father != "" || len(p.Children) != 0 || len(p.Siblings) != 0 {
			t.Fatalf("person %s has unexpected relations: %+v", p.EgoID, p)
		}
	}
}

func TestApply_ChildGetsParentsAndSiblings(t *testing.T) {
	table := NewTable(nil)
	stats := table.Apply([]relations.Edge{
		edge(t, relations.KindSpouse, "100", "M", "200"),
		edge(t, relations.KindChild, "100", "M", "300"),
		edge(t, relations.KindChild, "100", "M", "400"),
	}, DefaultPolicy())

	if stats.Applied != 3 {
		t.Fatalf("applied = %d, want 3", stats.Applied)
	}
	head := table.Person("100")
	wife := table.Person("200")
	if !reflect.DeepEqual(head.Children, []string{"300", "400"}) {
		t.Fatalf("head children = %v", head.Children)
	}
	if !reflect.DeepEqual(wife.Children, []string{"300", "400"}) {
		t.Fatalf("spouse children = %v", wife.Children)
	}
	son := table.Person("300")
	if son.Father != "100" || son.Mother != "200" {
		t.Fatalf("son parents = %q/%q", son.Father, son.Mother)
	}
	if !reflect.DeepEqual(son.Siblings, []string{"400"}) {
		t.Fatalf("son siblings = %v", son.Siblings)
	}
	if !reflect.DeepEqual(table.Person("400").Siblings, []string{"300"}) {
		t.Fatalf("daughter siblings = %v", table.Person("400").Siblings)
	}
}

func TestApply_FemaleHeadAssignsMotherSlot(t *testing.T) {
	table := NewTable(nil)
	table.Apply([]relations.Edge{
		edge(t, relations.KindChild, "500", "F", "600"),
	}, DefaultPolicy())

	child := table.Person("600")
	if child.Mother != "500" {
		t.Fatalf("mother = %q, want 500", child.Mother)
	}
	if child.Father != "" {
		t.Fatalf("father = %q, want empty", child.Father)
	}
}

func TestApply_ParentEdgeLinksBothDirections(t *testing.T) {
	table := NewTable(nil)
	table.Apply([]relations.Edge{
		edge(t, relations.KindMother, "100", "M", "700"),
	}, DefaultPolicy())

	if got := table.Person("100").Mother; got != "700" {
		t.Fatalf("head mother = %q", got)
	}
	if got := table.Person("700").Children; !reflect.DeepEqual(got, []string{"100"}) {
		t.Fatalf("mother children = %v", got)
	}
}

func TestApply_SiblingInheritanceThroughClosure(t *testing.T) {
	// 800 already knows sibling 900; a new sibling edge to 100 must give
	// 100 both 800 and, through inheritance, 900.
	table := NewTable([]*Person{
		{EgoID: "800", Siblings: []string{"900"}},
	})
	table.Apply([]relations.Edge{
		edge(t, relations.KindSibling, "100", "M", "800"),
	}, DefaultPolicy())

	if got := table.Person("100").Siblings; !reflect.DeepEqual(got, []string{"800", "900"}) {
		t.Fatalf("head siblings = %v", got)
	}
	if got := table.Person("800").Siblings; !reflect.DeepEqual(got, []string{"100", "900"}) {
		t.Fatalf("sibling siblings = %v", got)
	}
}

func TestApply_AsymmetricSiblingsPolicy(t *testing.T) {
	table := NewTable(nil)
	table.Apply([]relations.Edge{
		edge(t, relations.KindSibling, "100", "M", "800"),
	}, Policy{SymmetricSiblings: false})

	if got := table.Person("100").Siblings; !reflect.DeepEqual(got, []string{"800"}) {
		t.Fatalf("head siblings = %v", got)
	}
	if got := table.Person("800").Siblings; len(got) != 0 {
		t.Fatalf("relative siblings = %v, want none", got)
	}
}

func TestApply_CousinSymmetryPolicy(t *testing.T) {
	table := NewTable(nil)
	table.Apply([]relations.Edge{
		edge(t, relations.KindCousin, "100", "M", "810"),
	}, Policy{SymmetricCousins: true})

	if got := table.Person("100").Cousins; !reflect.DeepEqual(got, []string{"810"}) {
		t.Fatalf("head cousins = %v", got)
	}
	if got := table.Person("810").Cousins; !reflect.DeepEqual(got, []string{"100"}) {
		t.Fatalf("cousin cousins = %v", got)
	}
}

func TestApply_MissingIdentitySkipped(t *testing.T) {
	table := NewTable(nil)
	stats := table.Apply([]relations.Edge{
		edge(t, relations.KindSpouse, "100", "M", ""),
		edge(t, relations.KindChild, "100", "M", ""),
	}, DefaultPolicy())

	if stats.Applied != 0 || stats.Skipped != 2 {
		t.Fatalf("stats = %+v, want 2 skipped", stats)
	}
	if table.Len() != 0 {
		t.Fatalf("table has %d rows, want 0", table.Len())
	}
}

func TestApply_InLawEdgeNotStored(t *testing.T) {
	table := NewTable(nil)
	stats := table.Apply([]relations.Edge{
		edge(t, relations.KindBrotherInLaw, "100", "M", "820"),
	}, DefaultPolicy())

	if stats.Unstored != 1 || stats.Applied != 0 {
		t.Fatalf("stats = %+v, want 1 unstored", stats)
	}
}

func TestApply_Idempotent(t *testing.T) {
	edges := []relations.Edge{
		edge(t, relations.KindSpouse, "100", "M", "200"),
		edge(t, relations.KindChild, "100", "M", "300"),
		edge(t, relations.KindSibling, "100", "M", "800"),
	}
	table := NewTable(nil)
	table.Apply(edges, DefaultPolicy())
	before := snapshot(table)
	table.Apply(edges, DefaultPolicy())
	after := snapshot(table)

	if !reflect.DeepEqual(before, after) {
		t.Fatalf("second application changed the table:\nbefore %v\nafter  %v", before, after)
	}
}

func TestResolve_CyclicEntriesTerminate(t *testing.T) {
	// Mutual sibling inheritance forms a cycle; the closure must still
	// reach a fixpoint with both rows holding the union.
	table := NewTable([]*Person{
		{EgoID: "1", Siblings: []string{"2", "5"}},
		{EgoID: "2", Siblings: []string{"1", "6"}},
	})
	passes := table.resolve([]pending{
		{owner: "1", via: "2", kind: inheritSiblings},
		{owner: "2", via: "1", kind: inheritSiblings},
	})
	if passes == 0 {
		t.Fatal("closure did not run")
	}
	one := table.Person("1").Siblings
	two := table.Person("2").Siblings
	if !reflect.DeepEqual(one, []string{"2", "5", "6"}) {
		t.Fatalf("person 1 siblings = %v", one)
	}
	if !reflect.DeepEqual(two, []string{"1", "6", "5"}) {
		t.Fatalf("person 2 siblings = %v", two)
	}
}

func snapshot(t *Table) map[string][]string {
	out := make(map[string][]string, t.Len())
	for _, p := range t.People() {
		out[p.EgoID] = p.Row()
	}
	return out
}
