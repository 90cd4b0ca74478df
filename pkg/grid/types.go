// Package grid implements the crossword grid model: cells, symmetric block
// placement, connectivity and minimum-run validation, and run enumeration.
package grid

import "regexp"

// DefaultMinEntryLen is the shortest run of non-block cells considered a
// legal crossword entry.
const DefaultMinEntryLen = 3

// DefaultBlockChar and DefaultUnknownChar are the characters used when
// serializing a grid to plain strings.
const (
	DefaultBlockChar   = '.'
	DefaultUnknownChar = '_'
)

// AlphabetPattern is the default alphabet a placed letter must satisfy:
// uppercase A-Z, digits, and underscore (for rebus-style entries).
var AlphabetPattern = regexp.MustCompile(`^[A-Z0-9_]$`)

// Config controls grid construction and validation.
type Config struct {
	Size        int
	MinEntryLen int
	Alphabet    *regexp.Regexp
	BlockChar   rune
	UnknownChar rune
}

// normalized returns a copy of cfg with zero fields replaced by defaults.
func (cfg Config) normalized() Config {
	if cfg.MinEntryLen == 0 {
		cfg.MinEntryLen = DefaultMinEntryLen
	}
	if cfg.Alphabet == nil {
		cfg.Alphabet = AlphabetPattern
	}
	if cfg.BlockChar == 0 {
		cfg.BlockChar = DefaultBlockChar
	}
	if cfg.UnknownChar == 0 {
		cfg.UnknownChar = DefaultUnknownChar
	}
	return cfg
}

// Cell is a single position in the grid: a block, or a cell that is either
// empty (Letter == 0) or carries a fixed letter.
type Cell struct {
	Row    int
	Col    int
	Block  bool
	Letter rune
}

// Grid is an N x N matrix of cells.
type Grid struct {
	Size  int
	Cells [][]*Cell

	minEntryLen int
	alphabet    *regexp.Regexp
	blockChar   rune
	unknownChar rune
}

// NewEmpty returns a Size x Size grid with every cell empty (no blocks, no
// letters).
func NewEmpty(cfg Config) *Grid {
	cfg = cfg.normalized()

	g := &Grid{
		Size:        cfg.Size,
		minEntryLen: cfg.MinEntryLen,
		alphabet:    cfg.Alphabet,
		blockChar:   cfg.BlockChar,
		unknownChar: cfg.UnknownChar,
	}

	g.Cells = make([][]*Cell, cfg.Size)
	for r := 0; r < cfg.Size; r++ {
		g.Cells[r] = make([]*Cell, cfg.Size)
		for c := 0; c < cfg.Size; c++ {
			g.Cells[r][c] = &Cell{Row: r, Col: c}
		}
	}
	return g
}

// MinEntryLen returns the minimum run length the grid enforces.
func (g *Grid) MinEntryLen() int {
	if g.minEntryLen == 0 {
		return DefaultMinEntryLen
	}
	return g.minEntryLen
}

// InBounds reports whether (r, c) is a valid cell coordinate.
func (g *Grid) InBounds(r, c int) bool {
	return r >= 0 && r < g.Size && c >= 0 && c < g.Size
}

// At returns the cell at (r, c), or nil if out of bounds.
func (g *Grid) At(r, c int) *Cell {
	if !g.InBounds(r, c) {
		return nil
	}
	return g.Cells[r][c]
}

// Mirror returns the 180-degree rotational mirror of (r, c).
func (g *Grid) Mirror(r, c int) (int, int) {
	return g.Size - 1 - r, g.Size - 1 - c
}

// Clone deep-copies the grid, including per-cell state.
func (g *Grid) Clone() *Grid {
	clone := &Grid{
		Size:        g.Size,
		minEntryLen: g.minEntryLen,
		alphabet:    g.alphabet,
		blockChar:   g.blockChar,
		unknownChar: g.unknownChar,
	}
	clone.Cells = make([][]*Cell, g.Size)
	for r := 0; r < g.Size; r++ {
		clone.Cells[r] = make([]*Cell, g.Size)
		for c := 0; c < g.Size; c++ {
			cell := *g.Cells[r][c]
			clone.Cells[r][c] = &cell
		}
	}
	return clone
}
