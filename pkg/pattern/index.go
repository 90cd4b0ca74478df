// Package pattern builds a positional inverted index over a word pool and
// answers pattern queries such as "C_T" -> {CAT, COT, CUT, ...}.
package pattern

import (
	"sort"

	"github.com/wordforge/crossgen/pkg/wordpool"
)

// Order controls how CandidatesForPattern returns its results.
type Order int

const (
	// Alpha returns results sorted alphabetically (the default).
	Alpha Order = iota
	// AsIs returns results in the index's internal order, skipping the
	// sort — cheaper, but not guaranteed alphabetical.
	AsIs
)

// Unlimited is the Limit value meaning "no cap" — callers must say so
// explicitly, since the zero value of Limit means "return nothing" (see
// CandidatesForPattern).
const Unlimited = -1

// Options configures a single pattern query. The zero value
// (Order: Alpha, Limit: 0) returns an alphabetically sorted but EMPTY
// result: a caller that wants every match must set Limit to Unlimited
// (or a positive cap). This mirrors the boundary behavior that limit=0
// returns nothing and limit=infinity returns everything.
type Options struct {
	Order Order
	Limit int
}

// All returns Options requesting every match, alphabetically ordered.
func All() Options {
	return Options{Order: Alpha, Limit: Unlimited}
}

// Capped returns Options requesting up to n matches, alphabetically
// ordered.
func Capped(n int) Options {
	return Options{Order: Alpha, Limit: n}
}

// Index is a per-length positional inverted index: Pos[length][i][ch] is
// the set of words of that length with character ch at position i.
// ByLen[length] is the full, alphabetically sorted word list for that
// length.
type Index struct {
	UnknownChar byte
	ByLen       map[int][]string
	Pos         map[int][]map[byte]map[string]struct{}
}

// Build constructs an Index from a word pool. unknownChar is the wildcard
// character pattern queries use for unconstrained positions.
func Build(pool *wordpool.Pool, unknownChar byte) *Index {
	idx := &Index{
		UnknownChar: unknownChar,
		ByLen:       make(map[int][]string),
		Pos:         make(map[int][]map[byte]map[string]struct{}),
	}

	for length, bucket := range pool.Words {
		idx.ByLen[length] = pool.WordsOfLength(length)

		positions := make([]map[byte]map[string]struct{}, length)
		for i := range positions {
			positions[i] = make(map[byte]map[string]struct{})
		}
		for word := range bucket {
			for i := 0; i < length; i++ {
				ch := word[i]
				if positions[i][ch] == nil {
					positions[i][ch] = make(map[string]struct{})
				}
				positions[i][ch][word] = struct{}{}
			}
		}
		idx.Pos[length] = positions
	}

	return idx
}

// AddWord incrementally updates the index with a single new word, without
// rebuilding the whole structure. Used by the Hydrator to fold in
// freshly-fetched words.
func (idx *Index) AddWord(word string) {
	length := len(word)

	existing := idx.ByLen[length]
	pos := sort.SearchStrings(existing, word)
	if pos < len(existing) && existing[pos] == word {
		return // already present
	}
	extended := make([]string, len(existing)+1)
	copy(extended, existing[:pos])
	extended[pos] = word
	copy(extended[pos+1:], existing[pos:])
	idx.ByLen[length] = extended

	positions, ok := idx.Pos[length]
	if !ok {
		positions = make([]map[byte]map[string]struct{}, length)
		for i := range positions {
			positions[i] = make(map[byte]map[string]struct{})
		}
		idx.Pos[length] = positions
	}
	for i := 0; i < length; i++ {
		ch := word[i]
		if positions[i][ch] == nil {
			positions[i][ch] = make(map[string]struct{})
		}
		positions[i][ch][word] = struct{}{}
	}
}

// isWildcard reports whether b is the index's configured wildcard.
func (idx *Index) isWildcard(b byte) bool {
	return b == idx.UnknownChar
}

// CandidatesForPattern returns the words of the given length matching
// pattern, a string of exactly `length` characters drawn from the pool's
// alphabet plus the index's wildcard character. Invalid characters or a
// length mismatch yield an empty result, never an error.
func (idx *Index) CandidatesForPattern(length int, pattern string, opts Options) []string {
	if len(pattern) != length {
		return nil
	}

	positions, ok := idx.Pos[length]
	if !ok {
		return nil
	}

	type constraint struct {
		pos int
		ch  byte
	}
	var constraints []constraint

	for i := 0; i < length; i++ {
		ch := pattern[i]
		if idx.isWildcard(ch) {
			continue
		}
		if _, ok := positions[i][ch]; !ok {
			// No word of this length has ch at position i — whether
			// because ch is outside the alphabet or simply unseen.
			return nil
		}
		constraints = append(constraints, constraint{i, ch})
	}

	if len(constraints) == 0 {
		return limitResult(idx.ByLen[length], opts)
	}

	sort.Slice(constraints, func(i, j int) bool {
		return len(positions[constraints[i].pos][constraints[i].ch]) < len(positions[constraints[j].pos][constraints[j].ch])
	})

	// Seed the result from the smallest bucket, then intersect against
	// the remaining buckets. The accumulated order here is whatever the
	// underlying sets iterate in; Alpha sorts it below, AsIs returns it
	// untouched.
	smallest := positions[constraints[0].pos][constraints[0].ch]
	candidates := make([]string, 0, len(smallest))
	for w := range smallest {
		candidates = append(candidates, w)
	}

	for _, c := range constraints[1:] {
		bucket := positions[c.pos][c.ch]
		filtered := candidates[:0:0]
		for _, w := range candidates {
			if _, ok := bucket[w]; ok {
				filtered = append(filtered, w)
			}
		}
		candidates = filtered
		if len(candidates) == 0 {
			break
		}
	}

	if opts.Order == Alpha {
		sort.Strings(candidates)
	}

	return limitResult(candidates, opts)
}

func limitResult(words []string, opts Options) []string {
	if opts.Limit == 0 {
		return []string{}
	}
	if opts.Limit > 0 && opts.Limit < len(words) {
		return append([]string(nil), words[:opts.Limit]...)
	}
	return append([]string(nil), words...)
}
