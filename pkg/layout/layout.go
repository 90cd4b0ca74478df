// Package layout generates a valid symmetric block pattern within a
// configured block-count budget, using the center-split algorithm: it
// repeatedly finds the longest splittable run and places one symmetric
// block pair at a centered index, rather than seeding blocks at random
// and hoping the result validates.
package layout

import (
	"errors"
	"math/rand"
	"time"

	"github.com/wordforge/crossgen/pkg/grid"
)

// Difficulty names a layout preset, used only to pick a default block
// budget when the caller does not supply one explicitly.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
	Expert Difficulty = "expert"
)

// Budget is an inclusive [Min, Max] target range for the grid's total
// block count.
type Budget struct {
	Min int
	Max int
}

// defaultBudget maps a difficulty preset to a block-count budget for a
// size x size grid, expressed as a fraction of total cells.
func defaultBudget(difficulty Difficulty, size int) Budget {
	total := size * size
	frac := func(lo, hi float64) Budget {
		min := int(float64(total) * lo)
		max := int(float64(total) * hi)
		if max <= min {
			max = min + 2
		}
		return Budget{Min: min, Max: max}
	}
	switch difficulty {
	case Easy:
		return frac(0.04, 0.07)
	case Hard:
		return frac(0.09, 0.12)
	case Expert:
		return frac(0.11, 0.16)
	default:
		return frac(0.06, 0.09)
	}
}

// ErrGenerationFailed is returned when no legal layout could be produced
// within MaxAttempts.
var ErrGenerationFailed = errors.New("layout: failed to generate a valid grid within the attempt budget")

// MaxAttempts bounds how many independent seeds Generate will try.
const MaxAttempts = 1000

// GeneratorConfig controls layout generation.
type GeneratorConfig struct {
	grid.Config
	Difficulty Difficulty
	Budget     Budget // zero value -> derived from Difficulty
	Seed       int64  // 0 -> derived from wall clock
}

// Generate produces a grid satisfying symmetry, minimum-run, and
// connectivity, with a block count no greater than the budget's Max. A
// layout that runs out of splittable runs below Min is still returned. It
// retries with a freshly seeded RNG up to MaxAttempts times.
func Generate(cfg GeneratorConfig) (*grid.Grid, error) {
	budget := cfg.Budget
	if budget.Max == 0 {
		budget = defaultBudget(cfg.Difficulty, cfg.Config.Size)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	for attempt := 0; attempt < MaxAttempts; attempt++ {
		rng := rand.New(rand.NewSource(seed + int64(attempt)))
		g := grid.NewEmpty(cfg.Config)

		centerSplit(g, rng, budget)

		if g.Validate() && blockCountWithin(g, budget) {
			return g, nil
		}
	}

	return nil, ErrGenerationFailed
}

// blockCountWithin reports whether g's current block count is within
// budget (a grid that falls short just stops early and is still
// accepted, as the spec allows).
func blockCountWithin(g *grid.Grid, budget Budget) bool {
	count := countBlocks(g)
	return count <= budget.Max
}

func countBlocks(g *grid.Grid) int {
	n := 0
	for r := 0; r < g.Size; r++ {
		for c := 0; c < g.Size; c++ {
			if g.Cells[r][c].Block {
				n++
			}
		}
	}
	return n
}

// targetBlockCount picks the midpoint of budget, rounded to the nearest
// even number so blocks can always be placed in symmetric pairs.
func targetBlockCount(budget Budget) int {
	mid := (budget.Min + budget.Max) / 2
	if mid%2 != 0 {
		mid++
	}
	return mid
}

// minSplittableLength is the shortest run a single symmetric block pair
// can split into two runs that each still satisfy minEntryLen.
func minSplittableLength(g *grid.Grid) int {
	return 2*g.MinEntryLen() + 1
}

// centerSplit repeatedly finds the longest splittable run and places one
// symmetric block pair near its center until the target block count is
// reached or no splittable run remains.
func centerSplit(g *grid.Grid, rng *rand.Rand, budget Budget) {
	target := targetBlockCount(budget)
	minLen := minSplittableLength(g)

	for countBlocks(g) < target {
		runs := splittableRuns(g, minLen)
		if len(runs) == 0 {
			return
		}

		run := longestRun(runs, rng)
		if !trySplitRun(g, run, rng) {
			// The longest run couldn't be split anywhere; try the rest,
			// in enumeration order, before giving up this round.
			placed := false
			for _, alt := range runs {
				if alt == run {
					continue
				}
				if trySplitRun(g, alt, rng) {
					placed = true
					break
				}
			}
			if !placed {
				return
			}
		}
	}
}

// splittableRuns returns every current run at least minLen long — the
// only runs a single block can divide into two legal entries.
func splittableRuns(g *grid.Grid, minLen int) []grid.Run {
	var out []grid.Run
	for _, r := range g.HorizontalRuns() {
		if r.Length >= minLen {
			out = append(out, r)
		}
	}
	for _, r := range g.VerticalRuns() {
		if r.Length >= minLen {
			out = append(out, r)
		}
	}
	return out
}

// longestRun returns the longest run, shuffling ties via rng for variety.
func longestRun(runs []grid.Run, rng *rand.Rand) grid.Run {
	best := runs[0]
	var tied []grid.Run
	tied = append(tied, best)
	for _, r := range runs[1:] {
		switch {
		case r.Length > best.Length:
			best = r
			tied = tied[:0]
			tied = append(tied, r)
		case r.Length == best.Length:
			tied = append(tied, r)
		}
	}
	return tied[rng.Intn(len(tied))]
}

// trySplitRun attempts a symmetric block placement at a split index
// within run, preferring the center and alternating outward, randomizing
// direction among equidistant candidates. Returns true on success.
func trySplitRun(g *grid.Grid, run grid.Run, rng *rand.Rand) bool {
	minEntry := g.MinEntryLen()
	lo, hi := minEntry, run.Length-minEntry-1
	if lo > hi {
		return false
	}

	for _, i := range splitOrder(lo, hi, rng) {
		r, c := run.CellAt(i)
		if err := g.PlaceBlockSymmetric(r, c, false); err == nil {
			return true
		}
	}
	return false
}

// splitOrder returns candidate split indices in [lo, hi], centered first
// and alternating outward, with left/right choice among equidistant pairs
// randomized.
func splitOrder(lo, hi int, rng *rand.Rand) []int {
	center := (lo + hi) / 2
	order := []int{center}
	for offset := 1; ; offset++ {
		left, right := center-offset, center+offset
		leftOK, rightOK := left >= lo, right <= hi
		if !leftOK && !rightOK {
			break
		}
		if leftOK && rightOK {
			if rng.Intn(2) == 0 {
				order = append(order, left, right)
			} else {
				order = append(order, right, left)
			}
		} else if leftOK {
			order = append(order, left)
		} else {
			order = append(order, right)
		}
	}
	return order
}

// AddRescueBlockPair performs one additional center-split iteration on an
// already-filled-in-progress grid, introducing one more symmetric block
// pair to add constraint. Used by the backtracker on repeated dead-ends
// when the difficulty configuration allows it. Returns false if no
// splittable run has room for another block.
func AddRescueBlockPair(g *grid.Grid, rng *rand.Rand) bool {
	minLen := minSplittableLength(g)
	runs := splittableRuns(g, minLen)
	if len(runs) == 0 {
		return false
	}
	run := longestRun(runs, rng)
	if trySplitRun(g, run, rng) {
		return true
	}
	for _, alt := range runs {
		if alt == run {
			continue
		}
		if trySplitRun(g, alt, rng) {
			return true
		}
	}
	return false
}
