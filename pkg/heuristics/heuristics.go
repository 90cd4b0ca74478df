// Package heuristics implements MRV slot selection and LCV candidate
// ordering used by the backtracker to pick which slot to fill next and in
// which order to try its candidate words.
package heuristics

import (
	"sort"

	"github.com/wordforge/crossgen/pkg/domain"
	"github.com/wordforge/crossgen/pkg/pattern"
	"github.com/wordforge/crossgen/pkg/slots"
)

// TieBreak names one MRV tie-breaking rule.
type TieBreak int

const (
	CrossingsDesc TieBreak = iota
	LenDesc
	AlphaAsc
)

// DefaultTieBreak is the order applied when none is configured:
// most-crossings first, then longest, then alphabetical slot id.
var DefaultTieBreak = []TieBreak{CrossingsDesc, LenDesc, AlphaAsc}

// LCVNeighborCap bounds, per crossing neighbor, how many remaining
// candidates are counted toward a word's LCV score — keeps one
// unusually permissive neighbor from dominating the sum.
const LCVNeighborCap = 50

// SelectMRV returns the unassigned slot with the smallest live domain,
// breaking ties per tieBreak (DefaultTieBreak if nil). If frontier is
// non-empty, the search is restricted to it; callers pass the full
// unassigned set to disable that refinement. Returns nil if unassigned is
// empty.
func SelectMRV(unassigned []*slots.Slot, dm *domain.Manager, frontier map[string]bool, tieBreak []TieBreak) *slots.Slot {
	if len(tieBreak) == 0 {
		tieBreak = DefaultTieBreak
	}

	pool := unassigned
	if len(frontier) > 0 {
		var restricted []*slots.Slot
		for _, s := range unassigned {
			if frontier[s.ID] {
				restricted = append(restricted, s)
			}
		}
		if len(restricted) > 0 {
			pool = restricted
		}
	}
	if len(pool) == 0 {
		return nil
	}

	best := pool[0]
	for _, candidate := range pool[1:] {
		if less(candidate, best, dm, tieBreak) {
			best = candidate
		}
	}
	return best
}

// less reports whether a should be preferred over b under MRV + tieBreak.
func less(a, b *slots.Slot, dm *domain.Manager, tieBreak []TieBreak) bool {
	da, db := len(dm.Domain(a.ID)), len(dm.Domain(b.ID))
	if da != db {
		return da < db
	}
	for _, rule := range tieBreak {
		switch rule {
		case CrossingsDesc:
			if len(a.Crossings) != len(b.Crossings) {
				return len(a.Crossings) > len(b.Crossings)
			}
		case LenDesc:
			if a.Length != b.Length {
				return a.Length > b.Length
			}
		case AlphaAsc:
			if a.ID != b.ID {
				return a.ID < b.ID
			}
		}
	}
	return false
}

// Frontier returns the set of unassigned slot ids that cross at least one
// already-assigned slot.
func Frontier(unassigned []*slots.Slot, assigned map[string]bool) map[string]bool {
	frontier := make(map[string]bool)
	for _, s := range unassigned {
		for _, cr := range s.Crossings {
			if assigned[cr.OtherID] {
				frontier[s.ID] = true
				break
			}
		}
	}
	return frontier
}

// OrderLCV orders slot's current domain candidates by least-constraining
// value: the word that leaves crossing neighbors with the most remaining
// candidates is tried first. lcvDepth 0 disables scoring and sorts
// alphabetically; lcvDepth 1 scores via one-step projected-pattern
// lookahead. byID resolves a crossing's OtherID to its Slot.
func OrderLCV(slot *slots.Slot, candidates []string, idx *pattern.Index, byID map[string]*slots.Slot, lcvDepth int) []string {
	ordered := append([]string(nil), candidates...)

	if lcvDepth <= 0 {
		sort.Strings(ordered)
		return ordered
	}

	scores := make(map[string]int, len(ordered))
	for _, word := range ordered {
		scores[word] = score(slot, word, idx, byID)
	}

	sort.Slice(ordered, func(i, j int) bool {
		wi, wj := ordered[i], ordered[j]
		if scores[wi] != scores[wj] {
			return scores[wi] > scores[wj]
		}
		return wi < wj
	})
	return ordered
}

// score sums, over every crossing, the (capped) number of candidates the
// neighbor slot would retain if word were placed in slot.
func score(slot *slots.Slot, word string, idx *pattern.Index, byID map[string]*slots.Slot) int {
	total := 0
	for _, cr := range slot.Crossings {
		neighbor, ok := byID[cr.OtherID]
		if !ok {
			continue
		}
		projected := projectPattern(neighbor, cr.AtOther, rune(word[cr.AtThis]), rune(idx.UnknownChar))
		count := len(idx.CandidatesForPattern(neighbor.Length, projected, pattern.Capped(LCVNeighborCap)))
		total += count
	}
	return total
}

// projectPattern returns neighbor's current pattern with position i
// virtually set to ch.
func projectPattern(neighbor *slots.Slot, i int, ch rune, unknownChar rune) string {
	pat := []rune(neighbor.Pattern(unknownChar))
	pat[i] = ch
	return string(pat)
}
