package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/temporal-precision/internal/config"
)

var flagFormat string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective settings",
	Long: `Prints the settings after the file search, TEMPORAL_* environment
overrides and validation, in a form that can be saved as a settings file.

Search order: --config, ~/.temporal/config.yaml, ./configs/temporal.yaml,
then built-in defaults.

Examples:
  temporal config > ~/.temporal/config.yaml
  temporal config --format toml > temporal.toml
  TEMPORAL_TARGET=5 temporal config`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().StringVar(&flagFormat, "format", "yaml", "Output format: yaml or toml")
}

func runConfig(cmd *cobra.Command, _ []string) {
	cfg, err := loadSettings(cmd)
	if err != nil {
		fail("loading settings", err)
	}

	data, err := config.Marshal(cfg, flagFormat)
	if err != nil {
		fail("encoding settings", err)
	}

	fmt.Fprintf(os.Stderr, "# source: %s\n", cfg.Source)
	os.Stdout.Write(data)
}
