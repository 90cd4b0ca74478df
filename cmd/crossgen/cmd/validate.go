package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/wordforge/crossgen/pkg/grid"
	"github.com/wordforge/crossgen/pkg/output"
	"github.com/wordforge/crossgen/pkg/slots"
)

var validateInput string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate crossword puzzle files",
	Long: `Validate one or more crossword puzzle files for correctness.

Checks include:
  - Grid symmetry (180-degree rotational)
  - Grid connectivity (all white cells reachable)
  - Minimum entry length
  - Clue completeness

Examples:
  # Validate a single puzzle file
  crossgen validate --input puzzle.json

  # Validate all puzzles in a directory
  crossgen validate --input ./puzzles`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVarP(&validateInput, "input", "i", "", "input file or directory to validate (required)")
	validateCmd.MarkFlagRequired("input")
}

func runValidate(cmd *cobra.Command, args []string) error {
	if verbosity > 0 {
		fmt.Printf("Validating: %s\n", validateInput)
	}

	info, err := os.Stat(validateInput)
	if err != nil {
		return fmt.Errorf("failed to access input path: %w", err)
	}

	var filesToValidate []string
	if info.IsDir() {
		files, err := filepath.Glob(filepath.Join(validateInput, "*.json"))
		if err != nil {
			return fmt.Errorf("failed to list directory: %w", err)
		}
		if len(files) == 0 {
			return fmt.Errorf("no .json files found in directory: %s", validateInput)
		}
		filesToValidate = files
	} else {
		filesToValidate = []string{validateInput}
	}

	validFiles, invalidFiles := 0, 0
	for _, filePath := range filesToValidate {
		if verbosity > 0 {
			fmt.Printf("\nValidating: %s\n", filePath)
		}

		errs, err := validatePuzzleFile(filePath)
		switch {
		case err != nil:
			fmt.Printf("FAIL %s: ERROR - %v\n", filepath.Base(filePath), err)
			invalidFiles++
		case len(errs) > 0:
			fmt.Printf("FAIL %s: INVALID\n", filepath.Base(filePath))
			for _, e := range errs {
				fmt.Printf("   - %s\n", e)
			}
			invalidFiles++
		default:
			if verbosity > 0 {
				fmt.Printf("OK %s: VALID\n", filepath.Base(filePath))
			}
			validFiles++
		}
	}

	fmt.Printf("\nValidation Summary:\n")
	fmt.Printf("  Total files:   %d\n", len(filesToValidate))
	fmt.Printf("  Valid:         %d\n", validFiles)
	fmt.Printf("  Invalid:       %d\n", invalidFiles)

	if invalidFiles > 0 {
		os.Exit(1)
	}
	return nil
}

// validatePuzzleFile loads a puzzle export (json or ipuz, by extension) and
// returns the list of invariant failures found, empty if the puzzle is
// clean. An error means the file itself could not be read or parsed.
func validatePuzzleFile(filePath string) ([]string, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var p *output.Puzzle
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".ipuz":
		p, err = output.FromIPuz(data)
	default:
		p, err = output.FromJSON(data)
	}
	if err != nil {
		return nil, fmt.Errorf("invalid puzzle format: %w", err)
	}
	if len(p.Rows) == 0 {
		return []string{"empty grid"}, nil
	}

	g, err := grid.FromRows(p.Rows, grid.Config{Size: p.Height(), BlockChar: p.BlockChar})
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct grid: %w", err)
	}

	var errs []string
	report := g.ValidateReport()
	if !report.Symmetric {
		errs = append(errs, "grid lacks 180-degree rotational symmetry")
	}
	if !report.Connected {
		errs = append(errs, "grid has disconnected white cells")
	}
	if !report.NoShortRuns {
		errs = append(errs, fmt.Sprintf("grid contains entries shorter than the minimum length (%d)", g.MinEntryLen()))
	}

	errs = append(errs, validateClueCompleteness(g, p.CluesAcross, p.CluesDown)...)
	return errs, nil
}

// validateClueCompleteness compares the clues an export carries against
// the entries pkg/slots derives from its grid: every entry needs exactly
// one non-empty clue of the matching length, and no clue may dangle
// without a matching entry.
func validateClueCompleteness(g *grid.Grid, across, down []output.Clue) []string {
	var errs []string

	allSlots, _ := slots.Build(g)
	numbers := slots.Number(allSlots, g.Size)

	expected := map[grid.Direction]map[int]int{grid.Across: {}, grid.Down: {}}
	for _, s := range allSlots {
		expected[s.Direction][numbers[s.ID]] = s.Length
	}

	errs = append(errs, checkClueSet("across", expected[grid.Across], across)...)
	errs = append(errs, checkClueSet("down", expected[grid.Down], down)...)
	return errs
}

func checkClueSet(label string, expected map[int]int, provided []output.Clue) []string {
	var errs []string
	seen := make(map[int]bool, len(provided))

	for _, c := range provided {
		seen[c.Number] = true
		if strings.TrimSpace(c.Text) == "" {
			errs = append(errs, fmt.Sprintf("%s clue %d has empty text", label, c.Number))
		}
		if strings.TrimSpace(c.Answer) == "" {
			errs = append(errs, fmt.Sprintf("%s clue %d has empty answer", label, c.Number))
		}
		if want, ok := expected[c.Number]; ok {
			if c.Length != want {
				errs = append(errs, fmt.Sprintf("%s clue %d: answer length mismatch (expected %d, got %d)", label, c.Number, want, c.Length))
			}
		} else {
			errs = append(errs, fmt.Sprintf("%s clue %d has no corresponding entry in grid", label, c.Number))
		}
	}

	for number := range expected {
		if !seen[number] {
			errs = append(errs, fmt.Sprintf("missing %s clue for entry %d", label, number))
		}
	}
	return errs
}
