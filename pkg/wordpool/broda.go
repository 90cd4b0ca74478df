package wordpool

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// LoadBrodaWordlist seeds a pool from a file in Peter Broda's
// "WORD;SCORE" format, one entry per line. The quality score is discarded;
// the pool tracks membership per length only.
func LoadBrodaWordlist(path string) (*Pool, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("wordpool: open wordlist file: %w", err)
	}
	defer file.Close()

	pool := New()
	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.SplitN(line, ";", 2)
		text := strings.TrimSpace(parts[0])
		if text == "" {
			return nil, fmt.Errorf("wordpool: malformed line %d: empty word", lineNum)
		}

		pool.AddWords([]string{text})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("wordpool: read wordlist file: %w", err)
	}

	return pool, nil
}
