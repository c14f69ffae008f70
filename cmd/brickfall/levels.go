package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/brickfall/internal/registry"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List all available levels",
	Long: `Shows the built-in levels and those loaded from --levels-dir.

A level file is YAML with an id, an optional name and the brick rows.
'#' or '1' is a brick; '.', '0' or a space is an empty cell:

  id: pyramid
  name: Pyramid
  rows:
    - "...#..."
    - "..###.."
    - ".#####."`,
	RunE: runLevels,
}

func runLevels(_ *cobra.Command, _ []string) error {
	logger, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	loadLevels(logger)

	printLevels(os.Stdout, registry.List())
	return nil
}

func printLevels(w io.Writer, levels []registry.LevelInfo) {
	if len(levels) == 0 {
		fmt.Fprintln(w, "No levels available.")
		return
	}

	fmt.Fprintln(w, "Available levels:")
	fmt.Fprintln(w)

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, l := range levels {
		maxIDLen = max(maxIDLen, len(l.ID))
	}

	fmt.Fprintf(w, "  %-*s  %-12s  %6s  %s\n", maxIDLen, "ID", "Name", "Bricks", "Source")
	fmt.Fprintf(w, "  %-*s  %-12s  %6s  %s\n", maxIDLen, "--", "----", "------", "------")

	for _, l := range levels {
		fmt.Fprintf(w, "  %-*s  %-12s  %6d  %s\n", maxIDLen, l.ID, l.Name, l.Bricks, l.Source)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'brickfall play <id>' to play a level.")
}
