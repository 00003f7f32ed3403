package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/temporal-precision/internal/clock"
	"github.com/vovakirdan/temporal-precision/internal/config"
	"github.com/vovakirdan/temporal-precision/internal/game"
	"github.com/vovakirdan/temporal-precision/internal/logger"
	"github.com/vovakirdan/temporal-precision/internal/platform/tui"
)

// loadSettings loads the settings file and environment, then applies the
// global flags.
func loadSettings(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if cmd.Flags().Changed("debug") {
		cfg.Log.Debug = flagDebug
	}
	return cfg, nil
}

// openLogger creates the logger for a command. The log file defaults to
// ~/.temporal/logs/temporal.log; console output is only used by serve.
func openLogger(cfg config.Config, console io.Writer, prefix string) (*logger.Logger, error) {
	file := cfg.Log.File
	if file == "" {
		file = logger.DefaultFile(config.Dir())
	} else {
		file = config.ExpandPath(file)
	}
	return logger.New(logger.Config{
		Debug:  cfg.Log.Debug,
		File:   file,
		Stderr: console,
		Prefix: prefix,
	})
}

// controllerFactory builds controllers from the settings, each with its own
// frame ticker.
func controllerFactory(cfg config.Config) tui.ControllerFactory {
	return func(l *log.Logger) (*game.Controller, error) {
		opts := cfg.GameOptions(l)
		opts.Frames = clock.NewTicker(cfg.Display.FPS)
		return game.New(opts)
	}
}

// screenOptions converts the settings into timer screen options.
func screenOptions(cfg config.Config) tui.Options {
	opts := tui.DefaultOptions()
	opts.Runtime.FrameRate = cfg.Display.FPS
	opts.Presets = cfg.Game.QuickSelect
	opts.CloseThreshold = cfg.Display.CloseThreshold
	return opts
}

// fail prints an error and exits.
func fail(what string, err error) {
	fmt.Fprintf(os.Stderr, "Error %s: %v\n", what, err)
	os.Exit(1)
}
