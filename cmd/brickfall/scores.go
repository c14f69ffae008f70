package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/brickfall/internal/registry"
	"github.com/vovakirdan/brickfall/internal/storage"
)

var flagClear bool

var scoresCmd = &cobra.Command{
	Use:   "scores [level]",
	Short: "Show high scores",
	Long: `Display the top 10 rounds of a level, or a summary of every
level when no level is given.

Examples:
  brickfall scores
  brickfall scores three
  brickfall scores three --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the recorded scores of the level")
}

func runScores(_ *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()

	if len(args) == 0 {
		if flagClear {
			return fmt.Errorf("--clear needs a level")
		}
		return printLevelStats(store)
	}

	level := args[0]
	if flagClear {
		if err := store.ClearScores(level); err != nil {
			return err
		}
		fmt.Printf("Cleared scores for %s\n", level)
		return nil
	}

	title := level
	if l, err := registry.Get(level); err == nil {
		title = l.Name
	}

	scores, err := store.TopScores(level, 10)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No rounds recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'brickfall play %s' to set the first high score!\n", level)
		return nil
	}

	fmt.Printf("  %-4s  %-6s  %-5s  %-6s  %s\n", "Rank", "Score", "Balls", "Result", "Date")
	fmt.Printf("  %-4s  %-6s  %-5s  %-6s  %s\n", "----", "-----", "-----", "------", "----")

	for i, entry := range scores {
		result := "lost"
		if entry.Won {
			result = "won"
		}
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-6d  %-5d  %-6s  %s\n", i+1, entry.Score, entry.BallsUsed, result, dateStr)
	}

	fmt.Println()
	if best, err := store.HighScore(level); err == nil {
		fmt.Printf("Best: %d\n", best)
	}
	return nil
}

func printLevelStats(store *storage.Store) error {
	stats, err := store.AllLevelStats()
	if err != nil {
		return fmt.Errorf("retrieving level stats: %w", err)
	}

	if len(stats) == 0 {
		fmt.Println("No rounds recorded yet.")
		return nil
	}

	fmt.Printf("  %-12s  %6s  %5s  %5s  %7s  %s\n", "Level", "Rounds", "Wins", "Best", "Average", "Last played")
	fmt.Printf("  %-12s  %6s  %5s  %5s  %7s  %s\n", "-----", "------", "----", "----", "-------", "-----------")
	for _, s := range stats {
		fmt.Printf("  %-12s  %6d  %5d  %5d  %7.1f  %s\n",
			s.Level, s.Rounds, s.Wins, s.HighScore, s.AvgScore, s.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}
