// brickfall is a physics-driven brick breaker for the terminal.
//
// Usage:
//
//	brickfall play [level]     - Play a level, or pick one from the menu
//	brickfall serve            - Start SSH server for remote play
//	brickfall levels           - List available levels
//	brickfall scores [level]   - Show high scores
//	brickfall settings         - Show, change or reset saved settings
//	brickfall stats            - Summarize recorded round telemetry
//
// Global flags:
//
//	--fps <rate>            - Set tick rate (default: 60)
//	--seed <value>          - Set RNG seed for reproducible launch angles
//	--db <path>             - Set database path (default: ~/.brickfall/brickfall.db)
//	--config <path>         - Use a custom settings YAML
//	--levels-dir <path>     - Load extra levels from a directory
//	--telemetry-dir <path>  - Append round telemetry to rounds.csv in a directory
//	--log-level <level>     - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/brickfall/internal/config"
	"github.com/vovakirdan/brickfall/internal/registry"
	"github.com/vovakirdan/brickfall/internal/storage"
)

var (
	// Global flags
	flagFPS          int
	flagSeed         int64
	flagDBPath       string
	flagConfig       string
	flagLevelsDir    string
	flagTelemetryDir string
	flagLogLevel     string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "brickfall",
	Short: "Brickfall - a physics brick breaker in your terminal",
	Long: `Brickfall is a terminal brick breaker driven by a 2D physics engine.
Launch balls off the paddle, clear every brick, and do it before the
ball budget runs out.

Available commands:
  play      - Play a level (menu if no level is given)
  serve     - Start SSH server for remote play
  levels    - Show all available levels
  scores    - View high scores
  settings  - Show or change saved settings
  stats     - Summarize recorded round telemetry

Examples:
  brickfall play
  brickfall play four --difficulty hard
  brickfall serve --ssh :2222
  brickfall settings set Settings.BallCount 5`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to scores and settings database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom settings YAML")
	rootCmd.PersistentFlags().StringVar(&flagLevelsDir, "levels-dir", registry.DefaultDir(), "Directory of extra level YAML files")
	rootCmd.PersistentFlags().StringVar(&flagTelemetryDir, "telemetry-dir", "", "Directory for rounds.csv telemetry (empty = off)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(statsCmd)
}

// newLogger creates the process logger writing to w.
func newLogger(w io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "brickfall",
		Level:           level,
	}), nil
}

// openLogFile opens ~/.brickfall/brickfall.log for appending. The terminal
// belongs to the game while playing, so logs go to a file.
func openLogFile() (*os.File, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	dir := filepath.Join(home, ".brickfall")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(filepath.Join(dir, "brickfall.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

// loadLevels registers the user's level files. Broken files are logged
// and skipped.
func loadLevels(logger *log.Logger) {
	loaded, skipped, err := registry.LoadDir(flagLevelsDir)
	if err != nil {
		logger.Warn("cannot read levels directory", "dir", flagLevelsDir, "err", err)
		return
	}
	for _, e := range skipped {
		logger.Warn("skipping level file", "err", e)
	}
	if len(loaded) > 0 {
		logger.Info("loaded levels", "dir", flagLevelsDir, "levels", loaded)
	}
}

// loadSettings reads the settings file and overlays the values saved in
// the store.
func loadSettings(store *storage.Store) (config.Settings, error) {
	settings, err := config.Load(flagConfig)
	if err != nil {
		return settings, err
	}
	if store == nil {
		return settings, nil
	}
	return config.LoadFrom(store, settings)
}
