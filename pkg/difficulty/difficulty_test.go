package difficulty

import "testing"

func TestResolveExactLevelOverride(t *testing.T) {
	s := Default()
	cfg := s.Resolve(7)
	if cfg.BlockBudget.Min != 30 || cfg.BlockBudget.Max != 52 {
		t.Fatalf("expected level 7 block budget override, got %+v", cfg.BlockBudget)
	}
	if cfg.AllowRescueBlocks {
		t.Fatalf("expected level 7 to disable rescue blocks")
	}
	// Fields untouched by the override should still inherit from Base.
	if cfg.LCVDepth != s.Base.LCVDepth {
		t.Fatalf("expected LCVDepth inherited from base, got %d", cfg.LCVDepth)
	}
}

func TestResolveMissingLevelFallsBackToDefaultLevel(t *testing.T) {
	s := Default()
	missing := s.Resolve(3)
	fallback := s.Resolve(DefaultLevel)
	if missing.BlockBudget != fallback.BlockBudget {
		t.Fatalf("expected level 3 (no override) to resolve identically to the default level")
	}
}

func TestResolveNeverFallsBackToNearestBelow(t *testing.T) {
	s := Set{
		Base: Config{MaxBacktracks: 100},
		Levels: map[int]Override{
			2: {MaxBacktracks: intPtr(999)},
		},
	}
	// Level 3 has no override and no default-level entry either; it must
	// resolve to Base, never silently borrow level 2's override.
	got := s.Resolve(3)
	if got.MaxBacktracks != 100 {
		t.Fatalf("expected level 3 to fall back to Base (100), got %d (nearest-below would be 999)", got.MaxBacktracks)
	}
}

func intPtr(n int) *int { return &n }
