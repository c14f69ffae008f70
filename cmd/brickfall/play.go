package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/brickfall/internal/config"
	"github.com/vovakirdan/brickfall/internal/core"
	"github.com/vovakirdan/brickfall/internal/platform/tui"
	"github.com/vovakirdan/brickfall/internal/registry"
	"github.com/vovakirdan/brickfall/internal/storage"
	"github.com/vovakirdan/brickfall/internal/telemetry"
)

var flagDifficulty string

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play a level",
	Long: `Start playing. Without a level the level menu opens.

Controls:
  Left/Right, H/L  - Move paddle
  Space/Up         - Launch a ball (pushes live balls when none are left)
  S                - Shake (push live balls)
  [ / ]            - Tilt (when tilt control is enabled)
  P                - Pause / resume
  R                - Restart (after the round ended)
  Esc/B            - Back to menu (paused or ended)
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - 5 balls, large paddle, slow launches
  normal - 3 balls, medium paddle, speed grows with score
  hard   - 2 balls, small paddle, fast launches
  fixed  - Configured values, no speed progression

Examples:
  brickfall play
  brickfall play one
  brickfall play four --difficulty hard
  brickfall play --config ./my-breakout.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runPlay(_ *cobra.Command, args []string) error {
	logFile, err := openLogFile()
	if err != nil {
		return fmt.Errorf("cannot open log file: %w", err)
	}
	defer logFile.Close()

	logger, err := newLogger(logFile)
	if err != nil {
		return err
	}
	loadLevels(logger)

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	} else {
		defer store.Close()
	}

	settings, err := loadSettings(store)
	if err != nil {
		return err
	}

	if flagDifficulty != "" {
		preset, ok := config.ParsePreset(flagDifficulty)
		if !ok {
			return fmt.Errorf("unknown difficulty %q", flagDifficulty)
		}
		config.ApplyPreset(&settings, preset)
	}

	writer, err := telemetry.NewWriter(flagTelemetryDir)
	if err != nil {
		return err
	}
	defer writer.Close()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
	opts := tui.Options{
		Store:     store,
		Telemetry: writer,
		Logger:    logger,
	}

	if len(args) == 0 {
		return tui.RunSession(settings, opts, cfg)
	}

	if !registry.Exists(args[0]) {
		return fmt.Errorf("unknown level %q (run 'brickfall levels' to see available levels)", args[0])
	}
	settings.Level = args[0]
	return tui.Run(settings, opts, cfg)
}
