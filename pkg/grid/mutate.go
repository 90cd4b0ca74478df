package grid

import "errors"

var (
	// ErrFixedLetter is returned when a block placement target carries a
	// fixed letter and overwrite was not requested.
	ErrFixedLetter = errors.New("grid: target cell holds a fixed letter")
	// ErrShortRun is returned when a mutation would leave a run shorter
	// than the grid's minimum entry length.
	ErrShortRun = errors.New("grid: mutation produces a run shorter than the minimum entry length")
	// ErrDisconnects is returned when a mutation would split the white
	// cells into more than one connected component.
	ErrDisconnects = errors.New("grid: mutation disconnects the grid")
	// ErrOutOfBounds is returned for a coordinate outside the grid.
	ErrOutOfBounds = errors.New("grid: coordinate out of bounds")
	// ErrBadLetter is returned when a letter does not match the grid's
	// alphabet.
	ErrBadLetter = errors.New("grid: letter outside allowed alphabet")
)

// PlaceBlockSymmetric sets (r, c) and its 180-degree mirror to block. It
// fails, leaving the grid unchanged, if either target already holds a
// fixed letter (unless overwrite is true), if the resulting grid would
// contain a run shorter than MinEntryLen, or if it would disconnect the
// white cells.
func (g *Grid) PlaceBlockSymmetric(r, c int, overwrite bool) error {
	if !g.InBounds(r, c) {
		return ErrOutOfBounds
	}
	mr, mc := g.Mirror(r, c)

	cell, mirror := g.Cells[r][c], g.Cells[mr][mc]
	if !overwrite {
		if cell.Letter != 0 {
			return ErrFixedLetter
		}
		if mirror.Letter != 0 {
			return ErrFixedLetter
		}
	}

	if cell.Block && mirror.Block {
		return nil
	}

	prevCell, prevMirror := *cell, *mirror
	cell.Block = true
	cell.Letter = 0
	mirror.Block = true
	mirror.Letter = 0

	short := hasShortRuns(g)
	if short || !isConnected(g) {
		*cell, *mirror = prevCell, prevMirror
		if short {
			return ErrShortRun
		}
		return ErrDisconnects
	}

	return nil
}

// RemoveBlockSymmetric clears (r, c) and its mirror back to empty,
// non-block cells. It is the inverse of PlaceBlockSymmetric and succeeds
// for any in-bounds coordinate.
func (g *Grid) RemoveBlockSymmetric(r, c int) error {
	if !g.InBounds(r, c) {
		return ErrOutOfBounds
	}
	mr, mc := g.Mirror(r, c)
	g.Cells[r][c].Block = false
	g.Cells[mr][mc].Block = false
	return nil
}

// PlaceLetter sets a fixed letter in a single non-block cell. It rejects
// characters outside the grid's alphabet.
func (g *Grid) PlaceLetter(r, c int, ch rune) error {
	if !g.InBounds(r, c) {
		return ErrOutOfBounds
	}
	if !g.alphabetAllows(ch) {
		return ErrBadLetter
	}
	cell := g.Cells[r][c]
	if cell.Block {
		return ErrFixedLetter
	}
	cell.Letter = ch
	return nil
}

// ClearCell resets a single non-block cell to empty.
func (g *Grid) ClearCell(r, c int) error {
	if !g.InBounds(r, c) {
		return ErrOutOfBounds
	}
	g.Cells[r][c].Letter = 0
	return nil
}

func (g *Grid) alphabetAllows(ch rune) bool {
	alphabet := g.alphabet
	if alphabet == nil {
		alphabet = AlphabetPattern
	}
	return alphabet.MatchString(string(ch))
}

// Validate reports whether the grid currently satisfies symmetry, the
// minimum-run constraint, and connectivity.
func (g *Grid) Validate() bool {
	return isSymmetric(g) && !hasShortRuns(g) && isConnected(g)
}

// Report is a per-check breakdown of Validate, for callers that need to
// say which invariant failed rather than just whether the grid is valid.
type Report struct {
	Symmetric    bool
	NoShortRuns  bool
	Connected    bool
}

// OK reports whether every check in the report passed.
func (r Report) OK() bool {
	return r.Symmetric && r.NoShortRuns && r.Connected
}

// ValidateReport reports symmetry, the minimum-run constraint, and connectivity
// individually, instead of collapsing them into one bool.
func (g *Grid) ValidateReport() Report {
	return Report{
		Symmetric:   isSymmetric(g),
		NoShortRuns: !hasShortRuns(g),
		Connected:   isConnected(g),
	}
}
