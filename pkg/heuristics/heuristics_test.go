package heuristics

import (
	"testing"

	"github.com/wordforge/crossgen/pkg/domain"
	"github.com/wordforge/crossgen/pkg/grid"
	"github.com/wordforge/crossgen/pkg/pattern"
	"github.com/wordforge/crossgen/pkg/slots"
	"github.com/wordforge/crossgen/pkg/wordpool"
)

func buildFixture(t *testing.T) ([]*slots.Slot, map[string]*slots.Slot, *domain.Manager, *pattern.Index) {
	t.Helper()
	g := grid.NewEmpty(grid.Config{Size: 3})
	all, byID := slots.Build(g)

	pool := wordpool.New()
	pool.AddWords([]string{"CAT", "DOG", "ACT", "TAB", "BAD", "ARC", "APE", "ANT"})
	idx := pattern.Build(pool, '_')

	used := domain.NewUsedSet()
	dm := domain.NewManager(idx, byID, used, '_')
	dm.InitDomains(all)

	return all, byID, dm, idx
}

func TestSelectMRVPicksSmallestDomain(t *testing.T) {
	all, byID, dm, _ := buildFixture(t)

	target := byID["A1-0"]
	target.Cells[0].Letter = 'X' // unmatched by any pool word -> empties its domain
	dm.ComputeDomain(target)

	got := SelectMRV(all, dm, nil, nil)
	if got == nil || got.ID != target.ID {
		t.Fatalf("expected MRV to pick the emptied-domain slot, got %v", got)
	}
}

func TestSelectMRVTieBreaksByCrossingsThenLenThenAlpha(t *testing.T) {
	all, _, dm, _ := buildFixture(t)
	// On a fully open 3x3 grid every slot has the same domain size,
	// length 3, and 3 crossings, so AlphaAsc decides: "A0-0" sorts first.
	got := SelectMRV(all, dm, nil, nil)
	if got == nil || got.ID != "A0-0" {
		t.Fatalf("expected A0-0 by alphabetical tie-break, got %v", got)
	}
}

func TestSelectMRVRespectsFrontier(t *testing.T) {
	all, byID, dm, _ := buildFixture(t)
	assigned := map[string]bool{"A0-0": true}
	frontier := Frontier(all, assigned)

	got := SelectMRV(all, dm, frontier, nil)
	if got == nil {
		t.Fatalf("expected a slot from the frontier")
	}
	if !frontier[got.ID] {
		t.Fatalf("expected selection restricted to frontier, got %s", got.ID)
	}
	_ = byID
}

func TestSelectMRVReturnsNilWhenEmpty(t *testing.T) {
	_, _, dm, _ := buildFixture(t)
	if got := SelectMRV(nil, dm, nil, nil); got != nil {
		t.Fatalf("expected nil for no unassigned slots, got %v", got)
	}
}

func TestOrderLCVDepthZeroSortsAlphabetically(t *testing.T) {
	_, byID, _, idx := buildFixture(t)
	slot := byID["A0-0"]
	candidates := []string{"DOG", "ACT", "CAT"}

	got := OrderLCV(slot, candidates, idx, byID, 0)
	want := []string{"ACT", "CAT", "DOG"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestOrderLCVDepthOneDoesNotMutateInput(t *testing.T) {
	_, byID, _, idx := buildFixture(t)
	slot := byID["A0-0"]
	candidates := []string{"DOG", "ACT", "CAT"}

	_ = OrderLCV(slot, candidates, idx, byID, 1)
	if candidates[0] != "DOG" || candidates[1] != "ACT" || candidates[2] != "CAT" {
		t.Fatalf("expected input slice left untouched, got %v", candidates)
	}
}

func TestOrderLCVPrefersLessConstrainingWord(t *testing.T) {
	all, byID, dm, idx := buildFixture(t)
	_ = all
	slot := byID["A0-0"]
	candidates := dm.Domain(slot.ID)

	got := OrderLCV(slot, candidates, idx, byID, 1)
	if len(got) != len(candidates) {
		t.Fatalf("expected same candidate count, got %d want %d", len(got), len(candidates))
	}
	seen := make(map[string]bool)
	for _, w := range got {
		seen[w] = true
	}
	for _, w := range candidates {
		if !seen[w] {
			t.Fatalf("expected %s to survive reordering", w)
		}
	}
}
