package grid

import (
	"fmt"
	"strings"
)

// Rows serializes the grid to Size strings of length Size, using the
// grid's configured block and unknown characters.
func (g *Grid) Rows() []string {
	block, unknown := g.blockChar, g.unknownChar
	if block == 0 {
		block = DefaultBlockChar
	}
	if unknown == 0 {
		unknown = DefaultUnknownChar
	}

	rows := make([]string, g.Size)
	for r := 0; r < g.Size; r++ {
		var b strings.Builder
		b.Grow(g.Size)
		for c := 0; c < g.Size; c++ {
			cell := g.Cells[r][c]
			switch {
			case cell.Block:
				b.WriteRune(block)
			case cell.Letter != 0:
				b.WriteRune(cell.Letter)
			default:
				b.WriteRune(unknown)
			}
		}
		rows[r] = b.String()
	}
	return rows
}

// FromRows reconstructs a grid from the string format produced by Rows.
// All rows must share the grid's configured size.
func FromRows(rows []string, cfg Config) (*Grid, error) {
	cfg = cfg.normalized()
	if cfg.Size == 0 {
		cfg.Size = len(rows)
	}
	if len(rows) != cfg.Size {
		return nil, fmt.Errorf("grid: expected %d rows, got %d", cfg.Size, len(rows))
	}

	g := NewEmpty(cfg)
	block, unknown := g.blockChar, g.unknownChar

	for r, row := range rows {
		runes := []rune(row)
		if len(runes) != cfg.Size {
			return nil, fmt.Errorf("grid: row %d has length %d, want %d", r, len(runes), cfg.Size)
		}
		for c, ch := range runes {
			switch {
			case ch == block:
				g.Cells[r][c].Block = true
			case ch == unknown:
				// leave empty
			default:
				if err := g.PlaceLetter(r, c, ch); err != nil {
					return nil, fmt.Errorf("grid: row %d col %d: %w", r, c, err)
				}
			}
		}
	}
	return g, nil
}
