package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/temporal-precision/internal/config"
	"github.com/vovakirdan/temporal-precision/internal/platform/tui"
	"github.com/vovakirdan/temporal-precision/internal/score"
)

var (
	flagTarget  float64
	flagFPS     int
	flagTheme   string
	flagHistory int
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start the timer screen in this terminal.

Controls:
  Space/Enter/Click  - Start, stop, reset
  1-4                - Quick-select target (1s, 3s, 5s, 10s by default)
  E                  - Type a custom target (Enter applies, Esc cancels)
  ?                  - More keys
  Q/Ctrl+C           - Quit

The target can only change before a run. Logs go to ~/.temporal/logs so
they never draw over the game.

Examples:
  temporal play
  temporal play --target 5
  temporal play --theme 03 --fps 30
  temporal play --config ./temporal.toml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().Float64Var(&flagTarget, "target", 0, "Initial target time in seconds (0, 3600]")
	playCmd.Flags().IntVar(&flagFPS, "fps", 0, "Timer redraw rate while running")
	playCmd.Flags().StringVar(&flagTheme, "theme", "", "Starting theme ID (see 'temporal themes')")
	playCmd.Flags().IntVar(&flagHistory, "history", 0, "Attempts kept on the board")
}

func runPlay(cmd *cobra.Command, _ []string) {
	cfg, err := loadSettings(cmd)
	if err != nil {
		fail("loading settings", err)
	}
	applyPlayFlags(cmd, &cfg)
	if err := cfg.Validate(); err != nil {
		fail("in flags", err)
	}

	l, err := openLogger(cfg, nil, "temporal")
	if err != nil {
		fail("opening log", err)
	}
	defer l.Close()

	ctrl, err := controllerFactory(cfg)(l.Logger)
	if err != nil {
		fail("creating game", err)
	}
	defer ctrl.Close()

	opts := screenOptions(cfg)
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		opts.Runtime.ScreenW = w
		opts.Runtime.ScreenH = h
	}

	l.Info("session started", "target", cfg.Game.Target, "frame", cfg.FrameInterval(), "settings", cfg.Source)
	runErr := tui.Run(ctrl, opts)

	board := ctrl.Board()
	l.Info("session ended", "attempts", board.Len(), "best", bestText(board.BestDelta()))

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// applyPlayFlags overrides settings with explicitly set flags.
func applyPlayFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("target") {
		cfg.Game.Target = flagTarget
	}
	if flags.Changed("fps") {
		cfg.Display.FPS = flagFPS
	}
	if flags.Changed("theme") {
		cfg.Display.Theme = flagTheme
	}
	if flags.Changed("history") {
		cfg.Game.MaxHistory = flagHistory
	}
}

func bestText(delta float64, ok bool) string {
	if !ok {
		return "---"
	}
	return score.FormatDelta(delta)
}
