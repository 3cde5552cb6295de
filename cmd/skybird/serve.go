package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/skybird/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the skybird SSH server",
	Long: `Start an SSH server that allows users to connect and fly.

Each SSH connection gets its own session. The SSH user name selects the
profile, so progress follows the player between connections. Scores are
stored per-server (all users share the same leaderboard).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.skybird/host_key

Examples:
  skybird serve                           # Listen on :23234 with auto-generated key
  skybird serve --ssh :2222               # Listen on port 2222
  skybird serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh ann@localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(cmd *cobra.Command, _ []string) error {
	logger := newLogger(os.Stderr)

	gameCfg, err := loadGameConfig()
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		logger.Warn("running without persistence", "err", err)
		store = nil
	} else {
		defer store.Close()
	}

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.TickRate = flagFPS
	cfg.Game = gameCfg

	server, err := tui.NewSSHServer(cfg, store, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("connect with ssh", "address", cfg.Address)
	return server.ListenAndServe(ctx)
}
