package linker

import (
	"context"
	"testing"

	"censuslink/internal/blocking"
	"censuslink/internal/census"
	"censuslink/internal/scoring"
)

func rec(line, first, last, gender, race, year string) *census.Record {
	return census.FromFields(map[string]string{
		"line":       line,
		"first_name": first,
		"last_name":  last,
		"gender":     gender,
		"race":       race,
		"birth_year": year,
	})
}

func cand(aLine, bLine string, score, tier int) *Candidate {
	return &Candidate{
		A:     &census.Record{Line: aLine},
		B:     &census.Record{Line: bLine},
		Score: score,
		Tier:  tier,
	}
}

func TestResolve_UniqueEndpoints(t *testing.T) {
	tiers := Resolve([]*Candidate{
		cand("a1", "b1", 95, 1),
		cand("a1", "b2", 85, 2), // loses a1 to the higher score
		cand("a2", "b1", 82, 2), // loses b1
		cand("a2", "b3", 65, 3),
	}, false)

	if tiers.Total() != 2 {
		t.Fatalf("accepted %d pairs, want 2", tiers.Total())
	}
	seenA := map[string]bool{}
	seenB := map[string]bool{}
	for _, c := range tiers.All() {
		if seenA[c.A.Line] || seenB[c.B.Line] {
			t.Fatalf("identifier reused: %s-%s", c.A.Line, c.B.Line)
		}
		seenA[c.A.Line] = true
		seenB[c.B.Line] = true
	}
}

func TestResolve_Deterministic(t *testing.T) {
	input := []*Candidate{
		cand("a1", "b1", 85, 2),
		cand("a2", "b2", 85, 2),
		cand("a3", "b3", 95, 1),
	}
	first := Resolve(input, false)
	second := Resolve(input, false)

	if len(first.Tier2) != 2 || len(second.Tier2) != 2 {
		t.Fatalf("tier2 sizes: %d, %d", len(first.Tier2), len(second.Tier2))
	}
	for i := range first.Tier2 {
		if first.Tier2[i] != second.Tier2[i] {
			t.Fatalf("tier2 order differs at %d", i)
		}
	}
	// Equal scores keep input order.
	if first.Tier2[0].A.Line != "a1" || first.Tier2[1].A.Line != "a2" {
		t.Fatalf("tie-break order wrong: %s, %s", first.Tier2[0].A.Line, first.Tier2[1].A.Line)
	}
}

func TestResolve_SelfJoinSharedNamespace(t *testing.T) {
	tiers := Resolve([]*Candidate{
		cand("1", "2", 95, 1),
		cand("2", "3", 85, 2), // 2 already consumed as a B-side endpoint
	}, true)
	if tiers.Total() != 1 {
		t.Fatalf("accepted %d pairs, want 1", tiers.Total())
	}
}

func TestGenerate_EmptySideIsInert(t *testing.T) {
	a := rec("1", "John", "Smith", "M", "W", "1843")
	idx := blocking.Build([]*census.Record{a}, nil, blocking.PolicyStrict)

	cands, err := Generate(context.Background(), idx, GenerateOptions{
		Params:  scoring.Default(),
		Cutoffs: DefaultCutoffs(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cands) != 0 {
		t.Fatalf("expected no candidates from one-sided blocks, got %d", len(cands))
	}
}

func TestGenerate_SelfJoinNeverSelfPairsOrMirrors(t *testing.T) {
	records := []*census.Record{
		rec("1", "John", "Smith", "M", "W", "1843"),
		rec("2", "John", "Smith", "M", "W", "1843"),
	}
	idx := blocking.Build(records, records, blocking.PolicyStrict)

	cands, err := Generate(context.Background(), idx, GenerateOptions{
		Mode:     scoring.ModeDedup,
		Params:   scoring.Default(),
		Cutoffs:  DefaultCutoffs(),
		SelfJoin: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cands) != 1 {
		t.Fatalf("expected exactly one candidate, got %d", len(cands))
	}
	if cands[0].A.Line == cands[0].B.Line {
		t.Fatal("record paired with itself")
	}
	if cands[0].A.Line != "1" || cands[0].B.Line != "2" {
		t.Fatalf("unexpected orientation: %s-%s", cands[0].A.Line, cands[0].B.Line)
	}
}

func TestGenerate_SelfJoinEmitsEveryPairInBlock(t *testing.T) {
	// Three co-blocked records must yield all three unordered pairs.
	records := []*census.Record{
		rec("1", "John", "Smith", "M", "W", "1843"),
		rec("2", "John", "Smith", "M", "W", "1843"),
		rec("3", "John", "Smith", "M", "W", "1843"),
	}
	idx := blocking.Build(records, records, blocking.PolicyStrict)

	cands, err := Generate(context.Background(), idx, GenerateOptions{
		Mode:     scoring.ModeDedup,
		Params:   scoring.Default(),
		Cutoffs:  DefaultCutoffs(),
		SelfJoin: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := make(map[string]bool, len(cands))
	for _, c := range cands {
		got[c.A.Line+"-"+c.B.Line] = true
	}
	for _, pair := range []string{"1-2", "1-3", "2-3"} {
		if !got[pair] {
			t.Errorf("missing pair %s (got %v)", pair, got)
		}
	}
	if len(cands) != 3 {
		t.Fatalf("expected 3 candidates, got %d", len(cands))
	}
}

func TestGenerate_PairScoredOnceAcrossBlocks(t *testing.T) {
	// Same pair falls in all three blocks; it must be created once.
	a := census.FromFields(map[string]string{
		"line": "1", "first_name": "John", "last_name": "Smith",
		"gender": "M", "race": "W", "birth_year": "1843", "birth_place": "VA",
	})
	b := census.FromFields(map[string]string{
		"line": "9", "first_name": "John", "last_name": "Smith",
		"gender": "M", "race": "W", "birth_year": "1843", "birth_place": "VA",
	})
	idx := blocking.Build([]*census.Record{a}, []*census.Record{b}, blocking.PolicyStrict)

	cands, err := Generate(context.Background(), idx, GenerateOptions{
		Params:  scoring.Default(),
		Cutoffs: DefaultCutoffs(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cands) != 1 {
		t.Fatalf("expected deduplicated candidate, got %d", len(cands))
	}
	if cands[0].Tier != 1 {
		t.Fatalf("tier = %d, want 1 (score %d)", cands[0].Tier, cands[0].Score)
	}
}

func TestGenerate_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	a := rec("1", "John", "Smith", "M", "W", "1843")
	b := rec("2", "John", "Smith", "M", "W", "1843")
	idx := blocking.Build([]*census.Record{a}, []*census.Record{b}, blocking.PolicyStrict)

	if _, err := Generate(ctx, idx, GenerateOptions{Params: scoring.Default(), Cutoffs: DefaultCutoffs()}); err == nil {
		t.Fatal("expected context error")
	}
}
