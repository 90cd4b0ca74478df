// Package domain maintains, for every slot, the live list of candidate
// words compatible with the current grid and the set of already-used
// words, with snapshot/restore support for backtracking.
package domain

import (
	"sort"

	"github.com/wordforge/crossgen/pkg/pattern"
	"github.com/wordforge/crossgen/pkg/slots"
)

// UsedSet tracks words already committed to the partial solution.
type UsedSet struct {
	words map[string]struct{}
}

// NewUsedSet returns an empty UsedSet.
func NewUsedSet() *UsedSet {
	return &UsedSet{words: make(map[string]struct{})}
}

func (u *UsedSet) Add(word string)      { u.words[word] = struct{}{} }
func (u *UsedSet) Remove(word string)   { delete(u.words, word) }
func (u *UsedSet) Contains(w string) bool {
	_, ok := u.words[w]
	return ok
}

// Manager computes and caches each slot's domain (candidate word list).
type Manager struct {
	index       *pattern.Index
	byID        map[string]*slots.Slot
	used        *UsedSet
	unknownChar rune
	domains     map[string][]string
}

// NewManager builds a Manager over the given slots, backed by idx and the
// shared Used set.
func NewManager(idx *pattern.Index, byID map[string]*slots.Slot, used *UsedSet, unknownChar rune) *Manager {
	return &Manager{
		index:       idx,
		byID:        byID,
		used:        used,
		unknownChar: unknownChar,
		domains:     make(map[string][]string),
	}
}

// ComputeDomain recomputes and stores a single slot's domain from scratch:
// the alphabetically ordered pool words matching the slot's current
// pattern, excluding Used words.
func (m *Manager) ComputeDomain(slot *slots.Slot) []string {
	pat := slot.Pattern(m.unknownChar)
	candidates := m.index.CandidatesForPattern(slot.Length, pat, pattern.All())

	filtered := make([]string, 0, len(candidates))
	for _, w := range candidates {
		if !m.used.Contains(w) {
			filtered = append(filtered, w)
		}
	}

	m.domains[slot.ID] = filtered
	return filtered
}

// InitDomains computes every slot's domain and returns the ids of slots
// whose domain came out empty.
func (m *Manager) InitDomains(all []*slots.Slot) []string {
	var empties []string
	for _, s := range all {
		if len(m.ComputeDomain(s)) == 0 {
			empties = append(empties, s.ID)
		}
	}
	return empties
}

// Domain returns the current candidate list for a slot.
func (m *Manager) Domain(slotID string) []string {
	return m.domains[slotID]
}

// RecomputeAfterPlacement recomputes the domain of every slot crossing
// placed. It returns the ids of neighbors whose new domain is empty
// (emptied) and every neighbor id that was recomputed (affected).
func (m *Manager) RecomputeAfterPlacement(placed *slots.Slot) (emptied, affected []string) {
	for _, cr := range placed.Crossings {
		neighbor, ok := m.byID[cr.OtherID]
		if !ok {
			continue
		}
		affected = append(affected, neighbor.ID)
		if len(m.ComputeDomain(neighbor)) == 0 {
			emptied = append(emptied, neighbor.ID)
		}
	}
	return emptied, affected
}

// SnapshotDomains returns a deep copy of the current domains map.
func (m *Manager) SnapshotDomains() map[string][]string {
	snap := make(map[string][]string, len(m.domains))
	for id, words := range m.domains {
		snap[id] = append([]string(nil), words...)
	}
	return snap
}

// RestoreDomainsSnapshot replaces the live domains map with a previously
// captured snapshot.
func (m *Manager) RestoreDomainsSnapshot(snap map[string][]string) {
	m.domains = make(map[string][]string, len(snap))
	for id, words := range snap {
		m.domains[id] = append([]string(nil), words...)
	}
}

// RemoveWordFromAllDomains deletes word from every slot's domain (used to
// enforce global answer uniqueness once a word is placed) and returns the
// ids of slots whose domain actually changed.
func (m *Manager) RemoveWordFromAllDomains(word string) []string {
	var affected []string
	for id, candidates := range m.domains {
		idxOf := sort.SearchStrings(candidates, word)
		if idxOf >= len(candidates) || candidates[idxOf] != word {
			continue
		}
		next := make([]string, 0, len(candidates)-1)
		next = append(next, candidates[:idxOf]...)
		next = append(next, candidates[idxOf+1:]...)
		m.domains[id] = next
		affected = append(affected, id)
	}
	return affected
}
