// Package difficulty resolves a solver configuration from a base plus a
// per-level (1..7) override, generalizing the teacher's single-float
// getDifficultyDensity switch to the full field set the solver needs.
package difficulty

import "github.com/wordforge/crossgen/pkg/layout"

// DefaultLevel is used when a requested level has no override: an exact
// match only, never the nearest level below.
const DefaultLevel = 4

// TieBreak mirrors heuristics.TieBreak without importing that package,
// to keep difficulty dependency-free of the solver's internals; callers
// convert as needed.
type TieBreak string

const (
	CrossingsDesc TieBreak = "crossingsDesc"
	LenDesc       TieBreak = "lenDesc"
	AlphaAsc      TieBreak = "alphaAsc"
)

// Config is the full set of solver-tunable fields for one difficulty
// level.
type Config struct {
	BlockBudget       layout.Budget
	TimeoutMs         int
	MaxBacktracks     int
	LCVDepth          int
	TieBreak          []TieBreak
	ShuffleCandidates bool
	HydrateIfBelow    int
	OnelookMax        int
	AllowRescueBlocks bool
	MaxRescuePairs    int
}

// Override holds the subset of Config fields a level wants to change
// relative to Base. A nil/zero field means "inherit from Base".
type Override struct {
	BlockBudget       *layout.Budget
	TimeoutMs         *int
	MaxBacktracks     *int
	LCVDepth          *int
	TieBreak          []TieBreak
	ShuffleCandidates *bool
	HydrateIfBelow    *int
	OnelookMax        *int
	AllowRescueBlocks *bool
	MaxRescuePairs    *int
}

// Set is a full difficulty configuration: a Base and per-level overrides
// keyed 1..7.
type Set struct {
	Base   Config
	Levels map[int]Override
}

// Resolve merges Base with Levels[level]. A missing level key falls back
// to Levels[DefaultLevel] merged over Base — exact match only; there is
// no nearest-below behavior.
func (s Set) Resolve(level int) Config {
	cfg := s.Base
	override, ok := s.Levels[level]
	if !ok {
		override, ok = s.Levels[DefaultLevel]
	}
	if !ok {
		return cfg
	}
	return applyOverride(cfg, override)
}

func applyOverride(cfg Config, o Override) Config {
	if o.BlockBudget != nil {
		cfg.BlockBudget = *o.BlockBudget
	}
	if o.TimeoutMs != nil {
		cfg.TimeoutMs = *o.TimeoutMs
	}
	if o.MaxBacktracks != nil {
		cfg.MaxBacktracks = *o.MaxBacktracks
	}
	if o.LCVDepth != nil {
		cfg.LCVDepth = *o.LCVDepth
	}
	if o.TieBreak != nil {
		cfg.TieBreak = o.TieBreak
	}
	if o.ShuffleCandidates != nil {
		cfg.ShuffleCandidates = *o.ShuffleCandidates
	}
	if o.HydrateIfBelow != nil {
		cfg.HydrateIfBelow = *o.HydrateIfBelow
	}
	if o.OnelookMax != nil {
		cfg.OnelookMax = *o.OnelookMax
	}
	if o.AllowRescueBlocks != nil {
		cfg.AllowRescueBlocks = *o.AllowRescueBlocks
	}
	if o.MaxRescuePairs != nil {
		cfg.MaxRescuePairs = *o.MaxRescuePairs
	}
	return cfg
}

// Default returns a Set with reasonable base values and overrides at
// levels 1 (easiest), 4 (default), and 7 (hardest), matching the spread
// the teacher's Easy/Medium/Hard/Expert presets implied.
func Default() Set {
	intp := func(n int) *int { return &n }
	boolp := func(b bool) *bool { return &b }

	base := Config{
		BlockBudget:       layout.Budget{Min: 18, Max: 38},
		TimeoutMs:         10_000,
		MaxBacktracks:     200_000,
		LCVDepth:          1,
		TieBreak:          []TieBreak{CrossingsDesc, LenDesc, AlphaAsc},
		ShuffleCandidates: false,
		HydrateIfBelow:    5,
		OnelookMax:        50,
		AllowRescueBlocks: true,
		MaxRescuePairs:    3,
	}

	return Set{
		Base: base,
		Levels: map[int]Override{
			1: {
				BlockBudget:   &layout.Budget{Min: 12, Max: 22},
				MaxBacktracks: intp(400_000),
			},
			4: {},
			7: {
				BlockBudget:       &layout.Budget{Min: 30, Max: 52},
				MaxBacktracks:     intp(80_000),
				AllowRescueBlocks: boolp(false),
			},
		},
	}
}
