package output

import (
	"encoding/json"
	"time"
)

// ClueJSON is one clue in the JSON export format.
type ClueJSON struct {
	Number int    `json:"number"`
	Text   string `json:"text"`
	Answer string `json:"answer"`
	Length int    `json:"length"`
}

// PuzzleJSON is the on-disk JSON export shape.
type PuzzleJSON struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Author      string     `json:"author"`
	Difficulty  string     `json:"difficulty"`
	CreatedAt   time.Time  `json:"createdAt"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`

	Grid [][]string `json:"grid"` // one cell per entry: a letter, or "." for a block

	Across []ClueJSON `json:"across"`
	Down   []ClueJSON `json:"down"`
}

// FormatJSON converts a Puzzle to its JSON export shape.
func FormatJSON(p *Puzzle) *PuzzleJSON {
	gridRows := make([][]string, len(p.Rows))
	for y, row := range p.Rows {
		runes := []rune(row)
		gridRows[y] = make([]string, len(runes))
		for x, ch := range runes {
			gridRows[y][x] = string(ch)
		}
	}

	return &PuzzleJSON{
		ID:          p.ID,
		Title:       p.Title,
		Author:      p.Author,
		Difficulty:  p.Difficulty,
		CreatedAt:   p.CreatedAt,
		PublishedAt: p.PublishedAt,
		Grid:        gridRows,
		Across:      cluesToJSON(p.CluesAcross),
		Down:        cluesToJSON(p.CluesDown),
	}
}

func cluesToJSON(clues []Clue) []ClueJSON {
	out := make([]ClueJSON, len(clues))
	for i, c := range clues {
		out[i] = ClueJSON{Number: c.Number, Text: c.Text, Answer: c.Answer, Length: c.Length}
	}
	return out
}

// ToJSON serializes p as indented JSON.
func ToJSON(p *Puzzle) ([]byte, error) {
	return json.MarshalIndent(FormatJSON(p), "", "  ")
}

// FromJSON parses the JSON export shape back into a Puzzle. The grid's
// block cells must use ".".
func FromJSON(data []byte) (*Puzzle, error) {
	var pj PuzzleJSON
	if err := json.Unmarshal(data, &pj); err != nil {
		return nil, err
	}

	rows := make([]string, len(pj.Grid))
	for y, row := range pj.Grid {
		var b []rune
		for _, cell := range row {
			if cell == "" {
				cell = "."
			}
			b = append(b, []rune(cell)[0])
		}
		rows[y] = string(b)
	}

	return &Puzzle{
		Meta: Meta{
			ID:          pj.ID,
			Title:       pj.Title,
			Author:      pj.Author,
			Difficulty:  pj.Difficulty,
			CreatedAt:   pj.CreatedAt,
			PublishedAt: pj.PublishedAt,
		},
		Rows:        rows,
		BlockChar:   '.',
		CluesAcross: cluesFromJSON(pj.Across),
		CluesDown:   cluesFromJSON(pj.Down),
	}, nil
}

func cluesFromJSON(clues []ClueJSON) []Clue {
	out := make([]Clue, len(clues))
	for i, c := range clues {
		out[i] = Clue{Number: c.Number, Text: c.Text, Answer: c.Answer, Length: c.Length}
	}
	return out
}
