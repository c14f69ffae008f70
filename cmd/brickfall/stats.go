package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat"

	"github.com/vovakirdan/brickfall/internal/telemetry"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize recorded round telemetry",
	Long: `Reads rounds.csv from --telemetry-dir and prints per-level ball
speed statistics.

Examples:
  brickfall --telemetry-dir ./telemetry play
  brickfall --telemetry-dir ./telemetry stats`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func runStats(_ *cobra.Command, _ []string) error {
	if flagTelemetryDir == "" {
		return fmt.Errorf("--telemetry-dir is required")
	}

	records, err := telemetry.ReadFile(filepath.Join(flagTelemetryDir, telemetry.FileName))
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("No rounds recorded yet.")
		return nil
	}

	byLevel := make(map[string][]telemetry.RoundRecord)
	var order []string
	for _, r := range records {
		if _, ok := byLevel[r.Level]; !ok {
			order = append(order, r.Level)
		}
		byLevel[r.Level] = append(byLevel[r.Level], r)
	}

	fmt.Printf("  %-12s  %6s  %5s  %10s  %10s  %8s\n", "Level", "Rounds", "Wins", "Mean speed", "Mean score", "Capped")
	fmt.Printf("  %-12s  %6s  %5s  %10s  %10s  %8s\n", "-----", "------", "----", "----------", "----------", "------")
	for _, level := range order {
		rounds := byLevel[level]
		speeds := make([]float64, len(rounds))
		scores := make([]float64, len(rounds))
		capped := make([]float64, len(rounds))
		wins := 0
		for i, r := range rounds {
			speeds[i] = r.SpeedMean
			scores[i] = float64(r.Score)
			capped[i] = r.CappedRatio
			if r.Result == "won" {
				wins++
			}
		}
		fmt.Printf("  %-12s  %6d  %5d  %10.1f  %10.1f  %7.1f%%\n",
			level, len(rounds), wins, stat.Mean(speeds, nil), stat.Mean(scores, nil), 100*stat.Mean(capped, nil))
	}
	return nil
}
