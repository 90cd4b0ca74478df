package cmd

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/cobra"

	"github.com/wordforge/crossgen/pkg/clues"
	"github.com/wordforge/crossgen/pkg/compose"
	"github.com/wordforge/crossgen/pkg/difficulty"
	"github.com/wordforge/crossgen/pkg/lookup"
	"github.com/wordforge/crossgen/pkg/output"
	"github.com/wordforge/crossgen/pkg/wordpool"
)

var (
	generateCount      int
	generateLevel      int
	generateSize       int
	generateOutput     string
	generateFormats    string
	generateWordlist   string
	generateClueCache  string
	generateSeed       int64
	generateLiveLookup bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate crossword puzzles",
	Long: `Generate one or more crossword puzzles by laying out a grid and filling
it from a wordlist via constraint-satisfaction backtracking.

Examples:
  # Generate a single puzzle at the default size and difficulty
  crossgen generate --wordlist broda.txt --output ./out

  # Generate 5 medium puzzles in json and ipuz
  crossgen generate -n 5 -d 4 -w broda.txt -o ./out -f json,ipuz`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().IntVarP(&generateCount, "count", "n", 1, "number of puzzles to generate")
	generateCmd.Flags().IntVarP(&generateLevel, "difficulty", "d", 4, "difficulty level, 1 (easiest) to 7 (hardest)")
	generateCmd.Flags().IntVar(&generateSize, "size", 15, "grid size (size x size)")
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", ".", "output directory")
	generateCmd.Flags().StringVarP(&generateFormats, "format", "f", "json", "comma-separated output formats: json, puz, ipuz")
	generateCmd.Flags().StringVarP(&generateWordlist, "wordlist", "w", "", "path to a Broda-format wordlist file (required)")
	generateCmd.Flags().StringVar(&generateClueCache, "clue-cache", "./clue_cache.db", "path to the clue cache database")
	generateCmd.Flags().Int64Var(&generateSeed, "seed", 0, "random seed (0 picks a seed per puzzle from the count index)")
	generateCmd.Flags().BoolVar(&generateLiveLookup, "live-lookup", false, "extend the wordlist from a live lookup provider when domains run low")

	generateCmd.MarkFlagRequired("wordlist")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if generateLevel < 1 || generateLevel > 7 {
		return fmt.Errorf("difficulty must be between 1 and 7, got %d", generateLevel)
	}

	formats, err := parseFormats(generateFormats)
	if err != nil {
		return err
	}

	if verbosity > 0 {
		fmt.Printf("Loading wordlist: %s\n", generateWordlist)
	}
	pool, err := wordpool.LoadBrodaWordlist(generateWordlist)
	if err != nil {
		return fmt.Errorf("failed to load wordlist: %w", err)
	}
	if verbosity > 0 {
		fmt.Printf("Loaded %d words\n", pool.Size())
	}

	clueProvider, closeCache, err := setupClueProvider()
	if err != nil {
		return err
	}
	defer closeCache()

	var provider lookup.Provider
	if generateLiveLookup {
		provider = lookup.NewClient("")
	}

	if err := os.MkdirAll(generateOutput, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	diffSet := difficulty.Default()

	for i := 0; i < generateCount; i++ {
		seed := generateSeed
		if seed == 0 {
			seed = int64(i + 1)
		}

		if verbosity > 0 {
			fmt.Printf("Generating puzzle %d/%d (size=%d, level=%d, seed=%d)\n", i+1, generateCount, generateSize, generateLevel, seed)
		}

		result, err := compose.Generate(compose.Request{
			Size:         generateSize,
			Level:        generateLevel,
			Seed:         seed,
			Pool:         pool,
			Provider:     provider,
			ClueProvider: clueProvider,
			Difficulty:   &diffSet,
			Meta: output.Meta{
				Title:      fmt.Sprintf("Crossword #%d", i+1),
				Difficulty: strconv.Itoa(generateLevel),
			},
		})
		if err != nil {
			fmt.Printf("FAIL puzzle %d: %v\n", i+1, err)
			if result != nil {
				fmt.Printf("   solver: %s (backtracks=%d)\n", result.Solve.Reason, result.Solve.Stats.Backtracks)
			}
			continue
		}

		base := filepath.Join(generateOutput, fmt.Sprintf("puzzle-%03d", i+1))
		if err := writeOutputFiles(result.Puzzle, base, formats); err != nil {
			return fmt.Errorf("failed to write puzzle %d: %w", i+1, err)
		}
		fmt.Printf("OK wrote %s (backtracks=%d)\n", base, result.Solve.Stats.Backtracks)
	}

	return nil
}

func parseFormats(raw string) ([]string, error) {
	var formats []string
	for _, f := range strings.Split(raw, ",") {
		f = strings.TrimSpace(strings.ToLower(f))
		if f == "" {
			continue
		}
		if f != "json" && f != "puz" && f != "ipuz" {
			return nil, fmt.Errorf("unsupported format %q: must be json, puz, or ipuz", f)
		}
		formats = append(formats, f)
	}
	if len(formats) == 0 {
		return nil, fmt.Errorf("no output formats given")
	}
	return formats, nil
}

// setupClueProvider opens the clue cache database and wraps it in a
// CacheOnlyProvider; the returned closer must always be called, even on
// error, to release the database handle.
func setupClueProvider() (clues.Provider, func(), error) {
	db, err := sql.Open("sqlite3", generateClueCache)
	if err != nil {
		return nil, func() {}, fmt.Errorf("failed to open clue cache: %w", err)
	}
	if err := clues.InitDB(db); err != nil {
		db.Close()
		return nil, func() {}, fmt.Errorf("failed to initialize clue cache schema: %w", err)
	}
	cache, err := clues.NewClueCache(db)
	if err != nil {
		db.Close()
		return nil, func() {}, fmt.Errorf("failed to initialize clue cache: %w", err)
	}
	return clues.NewCacheOnlyProvider(cache), func() { db.Close() }, nil
}

func writeOutputFiles(p *output.Puzzle, base string, formats []string) error {
	for _, format := range formats {
		var data []byte
		var err error
		var ext string

		switch format {
		case "json":
			data, err = output.ToJSON(p)
			ext = ".json"
		case "puz":
			data, err = output.FormatPuz(p)
			ext = ".puz"
		case "ipuz":
			data, err = output.ToIPuz(p)
			ext = ".ipuz"
		}
		if err != nil {
			return fmt.Errorf("failed to format %s: %w", format, err)
		}
		if err := os.WriteFile(base+ext, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", base+ext, err)
		}
	}
	return nil
}
