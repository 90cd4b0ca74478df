package output

import (
	"encoding/json"
	"fmt"
)

// IPuzDimensions is the ipuz puzzle's declared size.
type IPuzDimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// IPuzClue is one clue in ipuz's [number, "text"] tuple form.
type IPuzClue []interface{}

// IPuzClues holds the Across and Down clue lists.
type IPuzClues struct {
	Across []IPuzClue `json:"Across"`
	Down   []IPuzClue `json:"Down"`
}

// IPuzPuzzle is the ipuz (http://ipuz.org/) document shape.
type IPuzPuzzle struct {
	Version    string          `json:"version"`
	Kind       []string        `json:"kind"`
	Title      string          `json:"title,omitempty"`
	Author     string          `json:"author,omitempty"`
	Copyright  string          `json:"copyright,omitempty"`
	Difficulty string          `json:"difficulty,omitempty"`
	Dimensions IPuzDimensions  `json:"dimensions"`
	Puzzle     [][]interface{} `json:"puzzle"`
	Solution   [][]interface{} `json:"solution"`
	Clues      IPuzClues       `json:"clues"`
}

// FormatIPuz converts a Puzzle to the ipuz document shape.
func FormatIPuz(p *Puzzle) (*IPuzPuzzle, error) {
	if p == nil {
		return nil, fmt.Errorf("puzzle cannot be nil")
	}
	width, height := p.Width(), p.Height()
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid grid dimensions: %dx%d", width, height)
	}

	puzzleGrid := make([][]interface{}, height)
	solutionGrid := make([][]interface{}, height)
	for y := 0; y < height; y++ {
		runes := []rune(p.Rows[y])
		puzzleGrid[y] = make([]interface{}, width)
		solutionGrid[y] = make([]interface{}, width)
		for x := 0; x < width; x++ {
			if runes[x] == p.BlockChar {
				puzzleGrid[y][x] = "#"
				solutionGrid[y][x] = "#"
				continue
			}
			puzzleGrid[y][x] = 0
			solutionGrid[y][x] = string(runes[x])
		}
	}
	// Stamp clue numbers onto their starting cells.
	stampNumbers(puzzleGrid, p.CluesAcross, p.Rows, true, p.BlockChar)
	stampNumbers(puzzleGrid, p.CluesDown, p.Rows, false, p.BlockChar)

	acrossClues := make([]IPuzClue, 0, len(p.CluesAcross))
	for _, c := range p.CluesAcross {
		acrossClues = append(acrossClues, IPuzClue{c.Number, c.Text})
	}
	downClues := make([]IPuzClue, 0, len(p.CluesDown))
	for _, c := range p.CluesDown {
		downClues = append(downClues, IPuzClue{c.Number, c.Text})
	}

	copyright := fmt.Sprintf("© %s", p.Author)
	if p.PublishedAt != nil {
		copyright = fmt.Sprintf("© %d %s", p.PublishedAt.Year(), p.Author)
	}

	return &IPuzPuzzle{
		Version:    "http://ipuz.org/v2",
		Kind:       []string{"http://ipuz.org/crossword#1"},
		Title:      p.Title,
		Author:     p.Author,
		Copyright:  copyright,
		Difficulty: p.Difficulty,
		Dimensions: IPuzDimensions{Width: width, Height: height},
		Puzzle:     puzzleGrid,
		Solution:   solutionGrid,
		Clues:      IPuzClues{Across: acrossClues, Down: downClues},
	}, nil
}

// stampNumbers writes each clue's number into its starting cell of grid,
// found by scanning the same way Number did: run starts are visited
// top-to-bottom, left-to-right, and the i-th across (or down) start
// receives the i-th across (or down) clue's number.
func stampNumbers(cellGrid [][]interface{}, clues []Clue, rows []string, across bool, block rune) {
	height := len(rows)
	width := 0
	if height > 0 {
		width = len([]rune(rows[0]))
	}

	idx := 0
	if across {
		for y := 0; y < height && idx < len(clues); y++ {
			runes := []rune(rows[y])
			for x := 0; x < width && idx < len(clues); x++ {
				if runes[x] == block {
					continue
				}
				startsHere := (x == 0 || runes[x-1] == block) && x+1 < width && runes[x+1] != block
				if startsHere {
					cellGrid[y][x] = clues[idx].Number
					idx++
				}
			}
		}
		return
	}

	for y := 0; y < height && idx < len(clues); y++ {
		runes := []rune(rows[y])
		for x := 0; x < width && idx < len(clues); x++ {
			if runes[x] == block {
				continue
			}
			above := y == 0 || []rune(rows[y-1])[x] == block
			below := y+1 < height && []rune(rows[y+1])[x] != block
			if above && below {
				cellGrid[y][x] = clues[idx].Number
				idx++
			}
		}
	}
}

// ToIPuz serializes p as indented ipuz JSON.
func ToIPuz(p *Puzzle) ([]byte, error) {
	ipuzPuzzle, err := FormatIPuz(p)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(ipuzPuzzle, "", "  ")
}

// FromIPuz parses an ipuz document back into a Puzzle.
func FromIPuz(data []byte) (*Puzzle, error) {
	var ipuz IPuzPuzzle
	if err := json.Unmarshal(data, &ipuz); err != nil {
		return nil, fmt.Errorf("failed to parse ipuz: %w", err)
	}

	rows := make([]string, ipuz.Dimensions.Height)
	for y := 0; y < ipuz.Dimensions.Height; y++ {
		runes := make([]rune, ipuz.Dimensions.Width)
		for x := 0; x < ipuz.Dimensions.Width; x++ {
			runes[x] = '.'
			if y < len(ipuz.Solution) && x < len(ipuz.Solution[y]) {
				if sol, ok := ipuz.Solution[y][x].(string); ok {
					if sol == "#" {
						runes[x] = '.'
					} else if len(sol) > 0 {
						runes[x] = []rune(sol)[0]
					}
				}
			}
		}
		rows[y] = string(runes)
	}

	acrossClues := parseIPuzClues(ipuz.Clues.Across)
	downClues := parseIPuzClues(ipuz.Clues.Down)

	return &Puzzle{
		Meta: Meta{
			Title:      ipuz.Title,
			Author:     ipuz.Author,
			Difficulty: ipuz.Difficulty,
		},
		Rows:        rows,
		BlockChar:   '.',
		CluesAcross: acrossClues,
		CluesDown:   downClues,
	}, nil
}

func parseIPuzClues(raw []IPuzClue) []Clue {
	out := make([]Clue, 0, len(raw))
	for _, c := range raw {
		if len(c) < 2 {
			continue
		}
		number := 0
		if n, ok := c[0].(float64); ok {
			number = int(n)
		}
		text := ""
		if s, ok := c[1].(string); ok {
			text = s
		}
		out = append(out, Clue{Number: number, Text: text})
	}
	return out
}

// ValidateIPuz reports whether p has enough information to export: a
// title, author, valid dimensions, and at least one clue.
func ValidateIPuz(p *Puzzle) error {
	if p == nil {
		return fmt.Errorf("puzzle cannot be nil")
	}
	if p.Title == "" {
		return fmt.Errorf("puzzle title is required")
	}
	if p.Author == "" {
		return fmt.Errorf("puzzle author is required")
	}
	if p.Width() <= 0 || p.Height() <= 0 {
		return fmt.Errorf("invalid grid dimensions: %dx%d", p.Width(), p.Height())
	}
	if len(p.CluesAcross) == 0 && len(p.CluesDown) == 0 {
		return fmt.Errorf("puzzle must have at least one clue")
	}
	return nil
}
