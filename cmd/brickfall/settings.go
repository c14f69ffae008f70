package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/brickfall/internal/config"
	"github.com/vovakirdan/brickfall/internal/storage"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change saved settings",
	Long: `Settings saved here override the settings file on every start.

Keys:
  Settings.Level              - level id
  Settings.BallSpeedModifier  - 0.0 (slowest launch) to 1.0 (fastest)
  Settings.BallCount          - balls per round
  Settings.PaddleWidth        - percent of the field, or small/medium/large
  Settings.ControlWithTilt    - true or false

Examples:
  brickfall settings
  brickfall settings set Settings.PaddleWidth large
  brickfall settings reset
  brickfall settings defaults > ~/.brickfall/configs/breakout.yaml`,
	Args: cobra.NoArgs,
	RunE: runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Save a setting",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		return withStore(func(store *storage.Store) error {
			if err := config.SetKey(store, args[0], args[1]); err != nil {
				return err
			}
			value, _, err := store.Get(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%s = %s\n", args[0], value)
			return nil
		})
	},
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete every saved setting",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return withStore(func(store *storage.Store) error {
			if err := config.ResetKeys(store); err != nil {
				return err
			}
			fmt.Println("Saved settings cleared.")
			return nil
		})
	},
}

var settingsDefaultsCmd = &cobra.Command{
	Use:   "defaults",
	Short: "Print the default settings file",
	Long: `Prints the built-in settings YAML. Save it as
~/.brickfall/configs/breakout.yaml or pass it with --config to customize.`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		_, err := os.Stdout.Write(config.DefaultYAML())
		return err
	},
}

func init() {
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsResetCmd)
	settingsCmd.AddCommand(settingsDefaultsCmd)
}

func runSettingsShow(_ *cobra.Command, _ []string) error {
	return withStore(func(store *storage.Store) error {
		settings, err := loadSettings(store)
		if err != nil {
			return err
		}
		for _, key := range config.Keys() {
			value, err := config.Lookup(settings, key)
			if err != nil {
				return err
			}
			fmt.Printf("%-28s %s\n", key, value)
		}
		return nil
	})
}

// withStore opens the database for the duration of fn.
func withStore(fn func(store *storage.Store) error) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()
	return fn(store)
}
