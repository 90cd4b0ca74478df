package output

import (
	"strings"
	"testing"

	"github.com/wordforge/crossgen/pkg/grid"
	"github.com/wordforge/crossgen/pkg/slots"
)

// buildFixture returns a fully solved 3x3 open grid (rows CAP/AGO/RED,
// columns CAR/AGE/POD) with every slot assigned.
func buildFixture(t *testing.T) (*Puzzle, map[string]string) {
	t.Helper()
	g := grid.NewEmpty(grid.Config{Size: 3})
	letters := [3][3]byte{{'C', 'A', 'P'}, {'A', 'G', 'O'}, {'R', 'E', 'D'}}
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			if err := g.PlaceLetter(r, c, rune(letters[r][c])); err != nil {
				t.Fatalf("PlaceLetter(%d,%d): %v", r, c, err)
			}
		}
	}

	all, _ := slots.Build(g)
	assignments := make(map[string]string, len(all))
	for _, s := range all {
		assignments[s.ID] = s.Pattern('_')
	}

	clueText := map[string]string{}
	for _, s := range all {
		clueText[s.ID] = "clue for " + assignments[s.ID]
	}

	p := Build(g, all, assignments, clueText, Meta{
		ID:         "test-1",
		Title:      "Test Puzzle",
		Author:     "Tester",
		Difficulty: "medium",
	})
	return p, assignments
}

func TestBuildNumbersAndOrdersClues(t *testing.T) {
	p, _ := buildFixture(t)

	if len(p.CluesAcross) != 3 || len(p.CluesDown) != 3 {
		t.Fatalf("expected 3 across and 3 down clues, got %d/%d", len(p.CluesAcross), len(p.CluesDown))
	}
	for i := 1; i < len(p.CluesAcross); i++ {
		if p.CluesAcross[i].Number < p.CluesAcross[i-1].Number {
			t.Fatalf("across clues not sorted by number: %+v", p.CluesAcross)
		}
	}
	if p.CluesAcross[0].Number != 1 {
		t.Fatalf("expected first across clue numbered 1, got %d", p.CluesAcross[0].Number)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	p, assignments := buildFixture(t)

	data, err := ToJSON(p)
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	back, err := FromJSON(data)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}

	if back.Title != p.Title || back.Author != p.Author {
		t.Fatalf("round trip lost metadata: got %+v", back.Meta)
	}
	if strings.Join(back.Rows, "") != strings.Join(p.Rows, "") {
		t.Fatalf("round trip grid mismatch: got %v want %v", back.Rows, p.Rows)
	}
	if len(back.CluesAcross)+len(back.CluesDown) != len(assignments) {
		t.Fatalf("round trip lost clues: got %d total, want %d", len(back.CluesAcross)+len(back.CluesDown), len(assignments))
	}
}

func TestIPuzRoundTrip(t *testing.T) {
	p, _ := buildFixture(t)

	data, err := ToIPuz(p)
	if err != nil {
		t.Fatalf("ToIPuz: %v", err)
	}

	back, err := FromIPuz(data)
	if err != nil {
		t.Fatalf("FromIPuz: %v", err)
	}

	if strings.Join(back.Rows, "") != strings.Join(p.Rows, "") {
		t.Fatalf("ipuz round trip grid mismatch: got %v want %v", back.Rows, p.Rows)
	}
	if len(back.CluesAcross) != len(p.CluesAcross) || len(back.CluesDown) != len(p.CluesDown) {
		t.Fatalf("ipuz round trip lost clues: got %d/%d want %d/%d",
			len(back.CluesAcross), len(back.CluesDown), len(p.CluesAcross), len(p.CluesDown))
	}
}

func TestValidateIPuzRejectsMissingTitle(t *testing.T) {
	p, _ := buildFixture(t)
	p.Title = ""
	if err := ValidateIPuz(p); err == nil {
		t.Fatalf("expected error for missing title")
	}
}

func TestFormatPuzProducesMagicHeader(t *testing.T) {
	p, _ := buildFixture(t)

	data, err := FormatPuz(p)
	if err != nil {
		t.Fatalf("FormatPuz: %v", err)
	}
	if len(data) < 12 || string(data[:11]) != "ACROSS&DOWN" {
		t.Fatalf("expected ACROSS&DOWN magic header, got %q", data[:min(20, len(data))])
	}
}
