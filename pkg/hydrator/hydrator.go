// Package hydrator extends slot domains on the fly by querying an
// external word-lookup provider when a slot's live domain has shrunk too
// far to proceed, folding accepted results into the pool and pattern
// index and persisting the pool atomically.
package hydrator

import (
	"log"
	"strings"

	"github.com/wordforge/crossgen/pkg/domain"
	"github.com/wordforge/crossgen/pkg/grid"
	"github.com/wordforge/crossgen/pkg/lookup"
	"github.com/wordforge/crossgen/pkg/pattern"
	"github.com/wordforge/crossgen/pkg/slots"
	"github.com/wordforge/crossgen/pkg/wordpool"
)

// cacheKey identifies a prior fetch by slot length and pattern.
type cacheKey struct {
	length  int
	pattern string
}

// nogoodKey identifies a (slot, pattern) pair that was already tried and
// exhausted without success, to avoid repeat fetches within a run.
type nogoodKey struct {
	slotID  string
	pattern string
}

// Config controls hydration thresholds.
type Config struct {
	HydrateIfBelow int // should_hydrate(n) = n < HydrateIfBelow
	OnelookMax     int // max results requested per fetch
	PoolPath       string
}

// Hydrator bridges a Provider into the live Pool, Pattern Index, and slot
// domains.
type Hydrator struct {
	cfg      Config
	provider lookup.Provider
	pool     *wordpool.Pool
	index    *pattern.Index
	dm       *domain.Manager
	logger   *log.Logger

	cache   map[cacheKey][]string
	nogoods map[nogoodKey]bool
}

// New returns a Hydrator wired to provider, the live pool/index/domain
// manager, and cfg. logger defaults to log.Default() if nil.
func New(cfg Config, provider lookup.Provider, pool *wordpool.Pool, index *pattern.Index, dm *domain.Manager, logger *log.Logger) *Hydrator {
	if logger == nil {
		logger = log.Default()
	}
	return &Hydrator{
		cfg:      cfg,
		provider: provider,
		pool:     pool,
		index:    index,
		dm:       dm,
		logger:   logger,
		cache:    make(map[cacheKey][]string),
		nogoods:  make(map[nogoodKey]bool),
	}
}

// SetManager rebinds h to dm. Solve constructs its domain Manager after
// the caller has already built a Hydrator, so it binds itself in as the
// first step of a run rather than requiring the Manager up front.
func (h *Hydrator) SetManager(dm *domain.Manager) {
	h.dm = dm
}

// ShouldHydrate reports whether a domain of the given size warrants a
// hydration attempt.
func (h *Hydrator) ShouldHydrate(domainSize int) bool {
	return domainSize < h.cfg.HydrateIfBelow
}

// PatternForSlot converts slot's current cells to a pattern string using
// the provider's wildcard convention (the index's configured unknown
// character).
func (h *Hydrator) PatternForSlot(slot *slots.Slot) string {
	return slot.Pattern(rune(h.index.UnknownChar))
}

// IsNogood reports whether (slot, pattern) was already exhausted
// unsuccessfully earlier in this run.
func (h *Hydrator) IsNogood(slotID, pattern string) bool {
	return h.nogoods[nogoodKey{slotID, pattern}]
}

// RecordNogood marks (slot, pattern) as exhausted for the remainder of
// this run.
func (h *Hydrator) RecordNogood(slotID, pattern string) {
	h.nogoods[nogoodKey{slotID, pattern}] = true
}

// HydrateSlot computes slot's pattern, consults the cache, and on miss
// calls the provider. Results are filtered to exact length, the pool's
// word pattern (wordpool.WordPattern), and not already Used, merged into the pool and pattern index,
// persisted atomically, and folded into the slot's domain (deduplicated).
// Provider failures are soft: logged, cached as empty, and reported as
// false.
func (h *Hydrator) HydrateSlot(g *grid.Grid, slot *slots.Slot, used *domain.UsedSet) bool {
	pat := h.PatternForSlot(slot)
	key := cacheKey{length: slot.Length, pattern: pat}

	fetched, ok := h.cache[key]
	if !ok {
		raw, err := h.provider.Fetch(pat, h.cfg.OnelookMax)
		if err != nil {
			h.logger.Printf("hydrator: fetch failed for pattern %q: %v", pat, err)
			h.cache[key] = nil
			return false
		}
		fetched = h.filterResults(raw, slot.Length, used)
		h.cache[key] = fetched
	}

	if len(fetched) == 0 {
		return false
	}

	added := h.pool.AddWords(fetched)
	total := 0
	for _, n := range added {
		total += n
	}
	for _, w := range fetched {
		h.index.AddWord(w)
	}
	if total > 0 && h.cfg.PoolPath != "" {
		if err := h.pool.SaveAtomic(h.cfg.PoolPath); err != nil {
			h.logger.Printf("hydrator: failed to persist pool: %v", err)
		}
	}

	// The newly added words are now in the pattern index, so recomputing
	// the domain from scratch folds them in (deduplicated) for free.
	h.dm.ComputeDomain(slot)

	return true
}

// filterResults keeps only words of the exact required length, matching
// wordpool.WordPattern, and not already in Used.
func (h *Hydrator) filterResults(words []string, length int, used *domain.UsedSet) []string {
	var out []string
	for _, raw := range words {
		w := strings.ToUpper(strings.TrimSpace(raw))
		if len(w) != length {
			continue
		}
		if !wordpool.WordPattern.MatchString(w) {
			continue
		}
		if used.Contains(w) {
			continue
		}
		out = append(out, w)
	}
	return out
}
