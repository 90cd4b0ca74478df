package layout

import (
	"math/rand"
	"testing"

	"github.com/wordforge/crossgen/pkg/grid"
)

func newTestRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func TestGenerateProducesValidGrid(t *testing.T) {
	cfg := GeneratorConfig{
		Config:     grid.Config{Size: 9},
		Difficulty: Medium,
		Seed:       42,
	}

	g, err := Generate(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !g.Validate() {
		t.Fatalf("expected generated grid to satisfy symmetry, min-run, and connectivity")
	}
}

func TestGenerateBlockCountWithinBudget(t *testing.T) {
	budget := Budget{Min: 6, Max: 12}
	cfg := GeneratorConfig{
		Config: grid.Config{Size: 9},
		Budget: budget,
		Seed:   7,
	}

	g, err := Generate(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	count := countBlocks(g)
	if count > budget.Max {
		t.Fatalf("block count %d exceeds budget max %d", count, budget.Max)
	}
}

func TestGenerateIsDeterministicForFixedSeed(t *testing.T) {
	cfg := GeneratorConfig{
		Config:     grid.Config{Size: 9},
		Difficulty: Medium,
		Seed:       99,
	}

	a, err := Generate(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := Generate(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ra, rb := a.Rows(), b.Rows()
	for i := range ra {
		if ra[i] != rb[i] {
			t.Fatalf("expected identical grids for identical seed, row %d: %q vs %q", i, ra[i], rb[i])
		}
	}
}

func TestAddRescueBlockPairIncreasesBlockCount(t *testing.T) {
	cfg := GeneratorConfig{
		Config: grid.Config{Size: 11},
		Budget: Budget{Min: 6, Max: 10},
		Seed:   3,
	}
	g, err := Generate(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	before := countBlocks(g)
	rng := newTestRand(1)
	ok := AddRescueBlockPair(g, rng)
	after := countBlocks(g)

	if ok && after <= before {
		t.Fatalf("expected block count to increase after a successful rescue pair, before=%d after=%d", before, after)
	}
	if !g.Validate() {
		t.Fatalf("expected grid to remain valid after rescue pair")
	}
}

func TestSplitOrderCentersFirst(t *testing.T) {
	rng := newTestRand(5)
	order := splitOrder(3, 9, rng)
	if order[0] != 6 {
		t.Fatalf("expected center index 6 first, got %v", order)
	}
	seen := make(map[int]bool)
	for _, i := range order {
		if i < 3 || i > 9 {
			t.Fatalf("index %d out of range [3,9]", i)
		}
		seen[i] = true
	}
	for i := 3; i <= 9; i++ {
		if !seen[i] {
			t.Fatalf("expected every index in [3,9] to appear, missing %d", i)
		}
	}
}
