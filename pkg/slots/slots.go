// Package slots extracts word slots (maximal runs of non-block cells) from
// a grid and computes the crossing map between them.
package slots

import (
	"fmt"
	"sort"

	"github.com/wordforge/crossgen/pkg/grid"
)

// Crossing records that position AtThis of this slot shares a cell with
// position AtOther of the slot identified by OtherID.
type Crossing struct {
	OtherID string
	AtThis  int
	AtOther int
}

// Slot is a maximal run of non-block cells in one direction.
type Slot struct {
	ID        string
	Direction grid.Direction
	StartRow  int
	StartCol  int
	Length    int
	Cells     []*grid.Cell
	Crossings []Crossing
}

// Pattern returns the slot's current pattern, using unknownChar for cells
// that carry no letter yet.
func (s *Slot) Pattern(unknownChar rune) string {
	pattern := make([]rune, len(s.Cells))
	for i, cell := range s.Cells {
		if cell.Letter == 0 {
			pattern[i] = unknownChar
		} else {
			pattern[i] = cell.Letter
		}
	}
	return string(pattern)
}

func slotID(dir grid.Direction, row, col int) string {
	prefix := "A"
	if dir == grid.Down {
		prefix = "D"
	}
	return fmt.Sprintf("%s%d-%d", prefix, row, col)
}

// Build scans the grid for Across and Down slots of at least
// g.MinEntryLen() cells and computes the symmetric crossing map between
// them. The returned map is keyed by slot id.
func Build(g *grid.Grid) ([]*Slot, map[string]*Slot) {
	min := g.MinEntryLen()

	var all []*Slot
	byID := make(map[string]*Slot)

	for _, run := range g.HorizontalRuns() {
		if run.Length < min {
			continue
		}
		all = append(all, newSlotFromRun(g, run))
	}
	for _, run := range g.VerticalRuns() {
		if run.Length < min {
			continue
		}
		all = append(all, newSlotFromRun(g, run))
	}
	for _, s := range all {
		byID[s.ID] = s
	}

	computeCrossings(all)

	return all, byID
}

func newSlotFromRun(g *grid.Grid, run grid.Run) *Slot {
	cells := make([]*grid.Cell, run.Length)
	for i := 0; i < run.Length; i++ {
		r, c := run.CellAt(i)
		cells[i] = g.At(r, c)
	}
	return &Slot{
		ID:        slotID(run.Direction, run.StartRow, run.StartCol),
		Direction: run.Direction,
		StartRow:  run.StartRow,
		StartCol:  run.StartCol,
		Length:    run.Length,
		Cells:     cells,
	}
}

// computeCrossings finds, for every cell shared between an Across and a
// Down slot, the pair of indices into each slot and records a Crossing on
// both sides.
func computeCrossings(all []*Slot) {
	type occupant struct {
		slot *Slot
		idx  int
	}
	acrossAt := make(map[*grid.Cell]occupant)
	downAt := make(map[*grid.Cell]occupant)

	for _, s := range all {
		for i, cell := range s.Cells {
			if s.Direction == grid.Across {
				acrossAt[cell] = occupant{s, i}
			} else {
				downAt[cell] = occupant{s, i}
			}
		}
	}

	for cell, a := range acrossAt {
		d, ok := downAt[cell]
		if !ok {
			continue
		}
		a.slot.Crossings = append(a.slot.Crossings, Crossing{OtherID: d.slot.ID, AtThis: a.idx, AtOther: d.idx})
		d.slot.Crossings = append(d.slot.Crossings, Crossing{OtherID: a.slot.ID, AtThis: d.idx, AtOther: a.idx})
	}

	for _, s := range all {
		sort.Slice(s.Crossings, func(i, j int) bool { return s.Crossings[i].AtThis < s.Crossings[j].AtThis })
	}
}
