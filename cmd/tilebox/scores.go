package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tilebox/internal/games/tilebox"
	"github.com/vovakirdan/tilebox/internal/platform/tui"
	"github.com/vovakirdan/tilebox/internal/storage"
)

var (
	flagPlain bool
	flagLimit int
	flagClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the score history",
	Long: `Display the best recorded games.

An interactive table is shown when stdout is a terminal; use --plain
(or pipe the output) for a text listing.

Examples:
  tilebox scores
  tilebox scores --plain --limit 5
  tilebox scores --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print a plain text listing")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of scores in the plain listing")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the score history and best score")
}

func runScores(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	title := tilebox.New().Title()

	if flagClear {
		if err := store.ClearScores(tilebox.GameID); err != nil {
			return err
		}
		fmt.Println("Score history cleared.")
		return nil
	}

	fd := int(os.Stdout.Fd())
	if !flagPlain && term.IsTerminal(fd) {
		width, height, err := term.GetSize(fd)
		if err != nil {
			width, height = 80, 24
		}
		return tui.RunScoreboard(store, tilebox.GameID, title, width, height)
	}

	return printScores(store, title)
}

func printScores(store *storage.Store, title string) error {
	scores, err := store.TopScores(tilebox.GameID, flagLimit)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'tilebox play' to set the first high score!")
		return nil
	}

	fmt.Printf("  %-4s  %-8s  %-8s  %s\n", "Rank", "Score", "Tiles", "Date")
	fmt.Printf("  %-4s  %-8s  %-8s  %s\n", "----", "-----", "-----", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-8d  %-8d  %s\n", i+1, entry.Score, entry.Inserted, dateStr)
	}

	fmt.Println()
	if best, err := store.BestScore(tilebox.GameID); err == nil {
		fmt.Printf("Best: %d\n", best)
	}
	return nil
}
