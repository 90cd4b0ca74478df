package slots

import (
	"testing"

	"github.com/wordforge/crossgen/pkg/grid"
)

func TestNumberAssignsSequentiallyByPosition(t *testing.T) {
	g := grid.NewEmpty(grid.Config{Size: 3})
	all, byID := Build(g)
	if len(all) != 6 {
		t.Fatalf("expected 6 slots in an open 3x3 grid, got %d", len(all))
	}

	numbers := Number(all, g.Size)

	// (0,0) starts both an Across and a Down slot: both get number 1.
	if numbers["A0-0"] != 1 || numbers["D0-0"] != 1 {
		t.Fatalf("expected A0-0 and D0-0 to both be numbered 1, got %d and %d", numbers["A0-0"], numbers["D0-0"])
	}
	// (0,1) only starts a Down slot: number 2.
	if numbers["D0-1"] != 2 {
		t.Fatalf("expected D0-1 numbered 2, got %d", numbers["D0-1"])
	}
	// (0,2) only starts a Down slot: number 3.
	if numbers["D0-2"] != 3 {
		t.Fatalf("expected D0-2 numbered 3, got %d", numbers["D0-2"])
	}
	// (1,0) only starts an Across slot: number 4.
	if numbers["A1-0"] != 4 {
		t.Fatalf("expected A1-0 numbered 4, got %d", numbers["A1-0"])
	}
	if numbers["A2-0"] != 5 {
		t.Fatalf("expected A2-0 numbered 5, got %d", numbers["A2-0"])
	}

	if got := len(numbers); got != len(byID) {
		t.Fatalf("expected every slot to receive a number, got %d numbers for %d slots", got, len(byID))
	}
}
