package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/temporal-precision/internal/config"
	"github.com/vovakirdan/temporal-precision/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own game: target, history and record are
never shared between sessions and are discarded on disconnect.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.temporal/host_key

Examples:
  temporal serve                           # Listen on :23240 with auto-generated key
  temporal serve --ssh :2222               # Listen on port 2222
  temporal serve --host-key ./my_host_key  # Use specific host key
  temporal serve --idle-timeout 5m

Users can connect with:
  ssh localhost -p 23240`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 0, "Idle time before disconnecting (e.g. 30m)")
}

func runServe(cmd *cobra.Command, _ []string) {
	cfg, err := loadSettings(cmd)
	if err != nil {
		fail("loading settings", err)
	}
	applyServeFlags(cmd, &cfg)
	if err := cfg.Validate(); err != nil {
		fail("in flags", err)
	}

	l, err := openLogger(cfg, os.Stderr, "temporal-ssh")
	if err != nil {
		fail("opening log", err)
	}
	defer l.Close()

	server, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:       cfg.SSH.Address,
		HostKeyPath:   config.ExpandPath(cfg.SSH.HostKey),
		IdleTimeout:   cfg.SSH.IdleTimeout,
		Screen:        screenOptions(cfg),
		NewController: controllerFactory(cfg),
		Logger:        l.Logger,
	})
	if err != nil {
		fail("creating server", err)
	}

	fmt.Printf("Starting Temporal Precision SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

// applyServeFlags overrides settings with explicitly set flags.
func applyServeFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("ssh") {
		cfg.SSH.Address = flagSSHAddr
	}
	if flags.Changed("host-key") {
		cfg.SSH.HostKey = flagHostKey
	}
	if flags.Changed("idle-timeout") {
		cfg.SSH.IdleTimeout = flagIdleTimeout
	}
	if cfg.SSH.Address == "" {
		cfg.SSH.Address = config.DefaultSSHAddress
	}
}
