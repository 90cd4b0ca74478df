// Package clues defines the clue-provider boundary without implementing a
// clue writer: AI-driven clue generation is explicitly out of scope, so the
// only concrete provider here serves whatever has already been cached.
package clues

import (
	"fmt"

	"github.com/wordforge/crossgen/pkg/grid"
)

// Difficulty tags cached clues the way ClueCache's schema does.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Provider resolves a clue for a filled word. Implementations may hit a
// cache, a static dictionary, or (not provided here) a generative model.
type Provider interface {
	Clue(word string, difficulty Difficulty) (string, bool)
}

// CacheOnlyProvider answers only from a ClueCache and never calls out to a
// model. It exists so callers downstream of the solver have a Provider to
// wire without depending on whether clue generation is configured.
type CacheOnlyProvider struct {
	cache *ClueCache
}

// NewCacheOnlyProvider wraps cache. cache may be nil, in which case Clue
// always reports a miss.
func NewCacheOnlyProvider(cache *ClueCache) *CacheOnlyProvider {
	return &CacheOnlyProvider{cache: cache}
}

func (p *CacheOnlyProvider) Clue(word string, difficulty Difficulty) (string, bool) {
	if p.cache == nil {
		return "", false
	}
	return p.cache.GetClue(word, string(difficulty))
}

// CluesForAssignments resolves a clue for every (slotID -> word) assignment
// via provider, returning only the hits. Misses are simply omitted rather
// than treated as an error: a puzzle can be exported with some clues
// pending.
func CluesForAssignments(assignments map[string]string, provider Provider, difficulty Difficulty) map[string]string {
	out := make(map[string]string, len(assignments))
	for slotID, word := range assignments {
		if clue, ok := provider.Clue(word, difficulty); ok {
			out[slotID] = clue
		}
	}
	return out
}

// EntryKey names a clue slot the way a puzzle export wants it: a number
// paired with its direction, not the internal slot ID.
func EntryKey(number int, dir grid.Direction) string {
	return fmt.Sprintf("%d-%s", number, dir)
}
