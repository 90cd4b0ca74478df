package hydrator

import (
	"errors"
	"log"
	"path/filepath"
	"testing"

	"github.com/wordforge/crossgen/pkg/domain"
	"github.com/wordforge/crossgen/pkg/grid"
	"github.com/wordforge/crossgen/pkg/pattern"
	"github.com/wordforge/crossgen/pkg/slots"
	"github.com/wordforge/crossgen/pkg/wordpool"
)

type fakeProvider struct {
	words []string
	err   error
	calls int
}

func (f *fakeProvider) Fetch(pattern string, max int) ([]string, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.words, nil
}

func buildFixture(t *testing.T) ([]*slots.Slot, map[string]*slots.Slot, *domain.Manager, *pattern.Index, *wordpool.Pool) {
	t.Helper()
	g := grid.NewEmpty(grid.Config{Size: 3})
	all, byID := slots.Build(g)

	pool := wordpool.New()
	pool.AddWords([]string{"CAT"})
	idx := pattern.Build(pool, '_')

	used := domain.NewUsedSet()
	dm := domain.NewManager(idx, byID, used, '_')
	dm.InitDomains(all)

	return all, byID, dm, idx, pool
}

func TestShouldHydrate(t *testing.T) {
	h := New(Config{HydrateIfBelow: 5}, &fakeProvider{}, wordpool.New(), pattern.Build(wordpool.New(), '_'), nil, nil)
	if !h.ShouldHydrate(3) {
		t.Fatalf("expected 3 < 5 to require hydration")
	}
	if h.ShouldHydrate(5) {
		t.Fatalf("expected 5 to not require hydration")
	}
}

func TestHydrateSlotMergesAcceptedWords(t *testing.T) {
	all, byID, dm, idx, pool := buildFixture(t)
	_ = all
	slot := byID["A0-0"]

	provider := &fakeProvider{words: []string{"dog", "bad", "xy"}} // xy wrong length, filtered
	dir := t.TempDir()
	h := New(Config{HydrateIfBelow: 10, OnelookMax: 10, PoolPath: filepath.Join(dir, "pool.json")}, provider, pool, idx, dm, nil)

	used := domain.NewUsedSet()
	ok := h.HydrateSlot(grid.NewEmpty(grid.Config{Size: 3}), slot, used)
	if !ok {
		t.Fatalf("expected hydration to succeed")
	}

	domainWords := dm.Domain(slot.ID)
	found := map[string]bool{}
	for _, w := range domainWords {
		found[w] = true
	}
	if !found["DOG"] || !found["BAD"] {
		t.Fatalf("expected DOG and BAD folded into domain, got %v", domainWords)
	}
	if found["XY"] {
		t.Fatalf("expected wrong-length result filtered out, got %v", domainWords)
	}
}

func TestHydrateSlotCachesByPattern(t *testing.T) {
	all, byID, dm, idx, pool := buildFixture(t)
	_ = all
	slot := byID["A0-0"]

	provider := &fakeProvider{words: []string{"DOG"}}
	h := New(Config{HydrateIfBelow: 10, OnelookMax: 10}, provider, pool, idx, dm, nil)
	used := domain.NewUsedSet()
	g := grid.NewEmpty(grid.Config{Size: 3})

	h.HydrateSlot(g, slot, used)
	h.HydrateSlot(g, slot, used)

	if provider.calls != 1 {
		t.Fatalf("expected provider fetched once due to caching, got %d calls", provider.calls)
	}
}

func TestHydrateSlotSoftFailsOnProviderError(t *testing.T) {
	all, byID, dm, idx, pool := buildFixture(t)
	_ = all
	slot := byID["A0-0"]

	provider := &fakeProvider{err: errors.New("network down")}
	h := New(Config{HydrateIfBelow: 10, OnelookMax: 10}, provider, pool, idx, dm, log.Default())
	used := domain.NewUsedSet()
	g := grid.NewEmpty(grid.Config{Size: 3})

	ok := h.HydrateSlot(g, slot, used)
	if ok {
		t.Fatalf("expected soft failure to report false")
	}
}

func TestNogoodTracking(t *testing.T) {
	h := New(Config{}, &fakeProvider{}, wordpool.New(), pattern.Build(wordpool.New(), '_'), nil, nil)
	if h.IsNogood("A0-0", "C_T") {
		t.Fatalf("expected no nogood recorded yet")
	}
	h.RecordNogood("A0-0", "C_T")
	if !h.IsNogood("A0-0", "C_T") {
		t.Fatalf("expected nogood to be recorded")
	}
}
