package output

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"
)

// FormatPuz converts a Puzzle to Across Lite's .puz binary format.
func FormatPuz(p *Puzzle) ([]byte, error) {
	solution := strings.Join(p.Rows, "")
	state := strings.Repeat("-", len(solution))

	title := p.Title
	author := p.Author
	copyright := fmt.Sprintf("© %s", author)
	clues := buildClueStrings(p)
	notes := ""

	width := byte(p.Width())
	height := byte(p.Height())
	numClues := uint16(len(p.CluesAcross) + len(p.CluesDown))

	cib := computeCIB(width, height, numClues, 0x0001, 0x0000)

	buf := new(bytes.Buffer)
	if err := writeHeader(buf, width, height, numClues, cib, solution, state); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	if err := writeStrings(buf, title, author, copyright, clues, notes); err != nil {
		return nil, fmt.Errorf("failed to write strings: %w", err)
	}

	return buf.Bytes(), nil
}

// buildClueStrings orders clues by number, across before down at ties,
// matching the order solvers expect the clue strings to appear in.
func buildClueStrings(p *Puzzle) []string {
	type numberedClue struct {
		number int
		text   string
		dir    string
	}

	var all []numberedClue
	for _, c := range p.CluesAcross {
		all = append(all, numberedClue{c.Number, c.Text, "across"})
	}
	for _, c := range p.CluesDown {
		all = append(all, numberedClue{c.Number, c.Text, "down"})
	}

	for i := 1; i < len(all); i++ {
		for j := i; j > 0; j-- {
			a, b := all[j-1], all[j]
			swap := a.number > b.number || (a.number == b.number && a.dir == "down" && b.dir == "across")
			if !swap {
				break
			}
			all[j-1], all[j] = all[j], all[j-1]
		}
	}

	texts := make([]string, len(all))
	for i, c := range all {
		texts[i] = c.text
	}
	return texts
}

func writeHeader(buf *bytes.Buffer, width, height byte, numClues uint16, cib uint16, solution, state string) error {
	globalCksum := uint16(0)

	buf.WriteString("ACROSS&DOWN\x00")
	binary.Write(buf, binary.LittleEndian, globalCksum)
	buf.WriteString("ICHEATED")
	binary.Write(buf, binary.LittleEndian, uint16(0))
	for i := 0; i < 4; i++ {
		binary.Write(buf, binary.LittleEndian, uint16(0))
	}
	buf.WriteString("1.3\x00")
	binary.Write(buf, binary.LittleEndian, uint16(0))
	binary.Write(buf, binary.LittleEndian, uint16(0))
	buf.Write(make([]byte, 4))
	buf.WriteByte(width)
	buf.WriteByte(height)
	binary.Write(buf, binary.LittleEndian, numClues)
	binary.Write(buf, binary.LittleEndian, uint16(0x0001))
	binary.Write(buf, binary.LittleEndian, uint16(0x0000))
	buf.WriteString(solution)
	buf.WriteString(state)

	return nil
}

func writeStrings(buf *bytes.Buffer, title, author, copyright string, clues []string, notes string) error {
	buf.WriteString(title)
	buf.WriteByte(0)
	buf.WriteString(author)
	buf.WriteByte(0)
	buf.WriteString(copyright)
	buf.WriteByte(0)

	for _, clue := range clues {
		buf.WriteString(clue)
		buf.WriteByte(0)
	}

	if notes != "" {
		buf.WriteString(notes)
		buf.WriteByte(0)
	}

	return nil
}

func computeCIB(width, height byte, numClues, puzzleType, scrambledState uint16) uint16 {
	cksum := uint16(0)
	cksum = checksumRegion(cksum, []byte{width, height})

	numCluesBytes := make([]byte, 2)
	binary.LittleEndian.PutUint16(numCluesBytes, numClues)
	cksum = checksumRegion(cksum, numCluesBytes)

	puzzleTypeBytes := make([]byte, 2)
	binary.LittleEndian.PutUint16(puzzleTypeBytes, puzzleType)
	cksum = checksumRegion(cksum, puzzleTypeBytes)

	scrambledStateBytes := make([]byte, 2)
	binary.LittleEndian.PutUint16(scrambledStateBytes, scrambledState)
	cksum = checksumRegion(cksum, scrambledStateBytes)

	return cksum
}

func checksumRegion(cksum uint16, data []byte) uint16 {
	for _, b := range data {
		if cksum&0x0001 != 0 {
			cksum = (cksum >> 1) + 0x8000
		} else {
			cksum = cksum >> 1
		}
		cksum = (cksum + uint16(b)) & 0xFFFF
	}
	return cksum
}
