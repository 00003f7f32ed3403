// temporal is a reflex-timing game for the terminal: start a timer and try
// to stop it as close as possible to a target time.
//
// Usage:
//
//	temporal play            - Play in this terminal
//	temporal serve           - Start SSH server for remote play
//	temporal themes          - List color themes
//	temporal config          - Print the effective settings
//
// Global flags:
//
//	--config <path>  - Settings file (YAML, or TOML by .toml extension)
//	--debug          - Debug logging
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig string
	flagDebug  bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "temporal",
	Short: "Temporal Precision - stop the clock on target",
	Long: `Temporal Precision is a reflex-timing game for the terminal.

Press space (or click) to start the timer, press again to stop it as close
as you can to the target time, and once more to reset. Every stop is scored
by its signed difference from the target; the smallest miss of the session
is your record.

Available commands:
  play     - Play in this terminal
  serve    - Start SSH server for remote play
  themes   - List color themes
  config   - Print the effective settings

Examples:
  temporal play
  temporal play --target 5
  temporal serve --ssh :2222
  temporal config --format toml`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to settings file (default search: ~/.temporal/config.yaml, ./configs/temporal.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(themesCmd)
	rootCmd.AddCommand(configCmd)
}
