// Package compose wires the grid, slot, pattern, domain, backtracker,
// hydrator, clue, and output packages into one end-to-end generation
// call: lay out a grid, fill it, clue it, and assemble it into an
// exportable Puzzle.
package compose

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/wordforge/crossgen/pkg/backtracker"
	"github.com/wordforge/crossgen/pkg/clues"
	"github.com/wordforge/crossgen/pkg/difficulty"
	"github.com/wordforge/crossgen/pkg/grid"
	"github.com/wordforge/crossgen/pkg/hydrator"
	"github.com/wordforge/crossgen/pkg/layout"
	"github.com/wordforge/crossgen/pkg/lookup"
	"github.com/wordforge/crossgen/pkg/output"
	"github.com/wordforge/crossgen/pkg/pattern"
	"github.com/wordforge/crossgen/pkg/slots"
	"github.com/wordforge/crossgen/pkg/wordpool"
)

// ErrNoSlots means the laid-out grid has no entry of legal minimum length.
var ErrNoSlots = fmt.Errorf("compose: layout produced a grid with no slots")

// Request configures one end-to-end puzzle generation run: a grid is laid
// out, filled from Pool (optionally extended live from Provider), clued
// from ClueProvider, and assembled into an exportable Puzzle.
type Request struct {
	Size int
	// Level selects a solver configuration in 1..7; unset (0) resolves to
	// Difficulty's default level.
	Level int
	Seed  int64

	Pool *wordpool.Pool
	// PoolPath, if set, is where Pool is persisted after Provider adds
	// words discovered during the solve.
	PoolPath string
	// Provider, if set, extends slot domains live when they run low; nil
	// disables hydration and fills strictly from Pool.
	Provider lookup.Provider

	// ClueProvider, if set, resolves clue text for every filled entry;
	// nil leaves every clue blank.
	ClueProvider clues.Provider

	// Difficulty is the full solver configuration set; nil resolves to
	// difficulty.Default().
	Difficulty *difficulty.Set

	Meta   output.Meta
	Logger *log.Logger
}

// Result is one generation's output, alongside the solver's own telemetry
// for callers that want to report on it.
type Result struct {
	Puzzle *output.Puzzle
	Solve  backtracker.Result
}

// Generate runs layout, fill, and clue/export assembly against req, end
// to end. It returns the partial Result (Puzzle nil, Solve populated)
// alongside the error when the solve itself fails, so callers can still
// inspect Solve.Reason and Solve.Stats.
func Generate(req Request) (*Result, error) {
	logger := req.Logger
	if logger == nil {
		logger = log.Default()
	}
	if req.Pool == nil {
		return nil, fmt.Errorf("compose: Pool is required")
	}

	diffSet := difficulty.Default()
	if req.Difficulty != nil {
		diffSet = *req.Difficulty
	}
	cfg := diffSet.Resolve(req.Level)

	g, err := layout.Generate(layout.GeneratorConfig{
		Config: grid.Config{Size: req.Size},
		Budget: cfg.BlockBudget,
		Seed:   req.Seed,
	})
	if err != nil {
		return nil, fmt.Errorf("compose: layout: %w", err)
	}

	allSlots, _ := slots.Build(g)
	if len(allSlots) == 0 {
		return nil, ErrNoSlots
	}

	idx := pattern.Build(req.Pool, byte(grid.DefaultUnknownChar))

	var hyd *hydrator.Hydrator
	if req.Provider != nil {
		hyd = hydrator.New(hydrator.Config{
			HydrateIfBelow: cfg.HydrateIfBelow,
			OnelookMax:     cfg.OnelookMax,
			PoolPath:       req.PoolPath,
		}, req.Provider, req.Pool, idx, nil, logger)
	}

	solveResult := backtracker.Solve(g, idx, backtracker.Options{
		Config:   cfg,
		Seed:     req.Seed,
		Hydrator: hyd,
	})
	result := &Result{Solve: solveResult}
	if !solveResult.OK {
		return result, fmt.Errorf("compose: solve failed: reason=%s", solveResult.Reason)
	}

	var clueText map[string]string
	if req.ClueProvider != nil {
		clueText = clues.CluesForAssignments(solveResult.Assignments, req.ClueProvider, clueDifficultyForLevel(req.Level))
	}

	meta := req.Meta
	if meta.ID == "" {
		meta.ID = uuid.New().String()
	}
	if meta.CreatedAt.IsZero() {
		meta.CreatedAt = time.Now().UTC()
	}

	result.Puzzle = output.Build(solveResult.Grid, allSlots, solveResult.Assignments, clueText, meta)
	return result, nil
}

// clueDifficultyForLevel maps a 1..7 solver difficulty level onto the
// clues package's coarser three-tier scale.
func clueDifficultyForLevel(level int) clues.Difficulty {
	switch {
	case level <= 2:
		return clues.DifficultyEasy
	case level <= 5:
		return clues.DifficultyMedium
	default:
		return clues.DifficultyHard
	}
}
