package domain

import (
	"reflect"
	"testing"

	"github.com/wordforge/crossgen/pkg/grid"
	"github.com/wordforge/crossgen/pkg/pattern"
	"github.com/wordforge/crossgen/pkg/slots"
	"github.com/wordforge/crossgen/pkg/wordpool"
)

func buildOpenGridSlots(t *testing.T) ([]*slots.Slot, map[string]*slots.Slot) {
	t.Helper()
	g := grid.NewEmpty(grid.Config{Size: 3})
	all, byID := slots.Build(g)
	if len(all) != 6 {
		t.Fatalf("expected 6 slots (3 across + 3 down) on an open 3x3, got %d", len(all))
	}
	return all, byID
}

func buildTestManager(t *testing.T) (*Manager, []*slots.Slot, map[string]*slots.Slot) {
	t.Helper()
	all, byID := buildOpenGridSlots(t)

	pool := wordpool.New()
	pool.AddWords([]string{"CAT", "DOG", "ACT", "TAB", "BAD"})
	idx := pattern.Build(pool, '_')

	used := NewUsedSet()
	m := NewManager(idx, byID, used, '_')
	return m, all, byID
}

func TestInitDomainsComputesEveryDomain(t *testing.T) {
	m, all, _ := buildTestManager(t)
	empties := m.InitDomains(all)
	if len(empties) != 0 {
		t.Fatalf("expected no empty domains on a fully open grid, got %v", empties)
	}
	for _, s := range all {
		if len(m.Domain(s.ID)) != 5 {
			t.Fatalf("slot %s: expected 5 candidates, got %v", s.ID, m.Domain(s.ID))
		}
	}
}

func TestComputeDomainExcludesUsedWords(t *testing.T) {
	m, all, _ := buildTestManager(t)
	m.used.Add("CAT")

	var target *slots.Slot
	for _, s := range all {
		if s.Length == 3 {
			target = s
			break
		}
	}
	domain := m.ComputeDomain(target)
	for _, w := range domain {
		if w == "CAT" {
			t.Fatalf("expected CAT to be excluded from domain once used, got %v", domain)
		}
	}
}

func TestRecomputeAfterPlacementNarrowsCrossingSlots(t *testing.T) {
	m, all, byID := buildTestManager(t)
	m.InitDomains(all)

	first := byID["A0-0"]
	if first == nil {
		t.Fatalf("expected slot A0-0 to exist")
	}
	first.Cells[0].Letter = 'C'
	first.Cells[1].Letter = 'A'
	first.Cells[2].Letter = 'T'

	emptied, affected := m.RecomputeAfterPlacement(first)
	if len(affected) != 3 {
		t.Fatalf("expected 3 crossing slots affected, got %v", affected)
	}
	if len(emptied) != 0 {
		t.Fatalf("did not expect any domain to empty out, got %v", emptied)
	}

	down := byID["D0-0"]
	domain := m.Domain(down.ID)
	for _, w := range domain {
		if w[0] != 'C' {
			t.Fatalf("expected every candidate in D0-0's domain to start with C, got %v", domain)
		}
	}
}

func TestSnapshotAndRestoreDomains(t *testing.T) {
	m, all, byID := buildTestManager(t)
	m.InitDomains(all)

	snap := m.SnapshotDomains()

	first := byID["A0-0"]
	first.Cells[0].Letter = 'C'
	m.ComputeDomain(first)

	if reflect.DeepEqual(m.Domain(first.ID), snap[first.ID]) {
		t.Fatalf("expected domain to have changed after mutation")
	}

	m.RestoreDomainsSnapshot(snap)
	if !reflect.DeepEqual(m.Domain(first.ID), snap[first.ID]) {
		t.Fatalf("expected domain restored to snapshot, got %v want %v", m.Domain(first.ID), snap[first.ID])
	}
}

func TestRemoveWordFromAllDomains(t *testing.T) {
	m, all, _ := buildTestManager(t)
	m.InitDomains(all)

	affected := m.RemoveWordFromAllDomains("CAT")
	if len(affected) == 0 {
		t.Fatalf("expected at least one slot's domain to contain CAT")
	}
	for _, id := range affected {
		for _, w := range m.Domain(id) {
			if w == "CAT" {
				t.Fatalf("slot %s: expected CAT removed, still present in %v", id, m.Domain(id))
			}
		}
	}
}

func TestUsedSetAddRemoveContains(t *testing.T) {
	u := NewUsedSet()
	if u.Contains("CAT") {
		t.Fatalf("expected empty set to not contain CAT")
	}
	u.Add("CAT")
	if !u.Contains("CAT") {
		t.Fatalf("expected set to contain CAT after Add")
	}
	u.Remove("CAT")
	if u.Contains("CAT") {
		t.Fatalf("expected CAT removed")
	}
}
