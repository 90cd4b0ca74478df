// Package output formats a solved grid for export: the Crossy-style JSON
// format, Across Lite's .puz binary format, and ipuz. All three build from
// the same Puzzle value, assembled by Build from a grid, its slots, and the
// solver's assignments.
package output

import (
	"time"

	"github.com/wordforge/crossgen/pkg/grid"
	"github.com/wordforge/crossgen/pkg/slots"
)

// Clue is one numbered entry with its answer.
type Clue struct {
	Number int
	Text   string
	Answer string
	Length int
}

// Meta carries the export fields that don't come from the grid itself.
type Meta struct {
	ID          string
	Title       string
	Author      string
	Difficulty  string
	CreatedAt   time.Time
	PublishedAt *time.Time
}

// Puzzle is the export-ready representation every format builds from.
type Puzzle struct {
	Meta
	Rows        []string // one string per row, block and unknown chars as the grid was serialized
	BlockChar   rune
	CluesAcross []Clue
	CluesDown   []Clue
}

// Build assembles a Puzzle from a solved grid, its slots, and the
// assignment of slot ID to word. clueText maps slot ID to clue text; a slot
// with no entry gets an empty clue text rather than being dropped, so a
// puzzle can be exported before clue generation completes.
func Build(g *grid.Grid, allSlots []*slots.Slot, assignments map[string]string, clueText map[string]string, meta Meta) *Puzzle {
	numbers := slots.Number(allSlots, g.Size)

	p := &Puzzle{
		Meta:      meta,
		Rows:      g.Rows(),
		BlockChar: grid.DefaultBlockChar,
	}

	for _, s := range allSlots {
		clue := Clue{
			Number: numbers[s.ID],
			Text:   clueText[s.ID],
			Answer: assignments[s.ID],
			Length: s.Length,
		}
		if s.Direction == grid.Across {
			p.CluesAcross = append(p.CluesAcross, clue)
		} else {
			p.CluesDown = append(p.CluesDown, clue)
		}
	}

	sortClues(p.CluesAcross)
	sortClues(p.CluesDown)

	return p
}

func sortClues(clues []Clue) {
	for i := 1; i < len(clues); i++ {
		for j := i; j > 0 && clues[j-1].Number > clues[j].Number; j-- {
			clues[j-1], clues[j] = clues[j], clues[j-1]
		}
	}
}

// Width reports the puzzle's grid width in cells.
func (p *Puzzle) Width() int {
	if len(p.Rows) == 0 {
		return 0
	}
	return len([]rune(p.Rows[0]))
}

// Height reports the puzzle's grid height in cells.
func (p *Puzzle) Height() int {
	return len(p.Rows)
}
