package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/skybird/internal/platform/web"
)

var (
	flagWebAddr   string
	flagQueueSize int
)

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Start the WebSocket server for browser clients",
	Long: `Serve sessions over WebSocket.

Endpoints:
  GET /ws?player=<name>&codec=json|msgpack   - game session
  GET /api/leaderboard?limit=<n>             - best score per player
  GET /api/profile/<player>                  - saved progression
  GET /healthz                               - liveness

Clients send {"type":"flap"}, {"type":"pause"}, {"type":"theme","theme":"winter"}
or {"type":"skin","skin":"cardinal"} and receive "frame" and "haptic" messages.

Examples:
  skybird web
  skybird web --addr :9000 --fps 30`,
	Args: cobra.NoArgs,
	RunE: runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagWebAddr, "addr", ":8080", "HTTP listen address")
	webCmd.Flags().IntVar(&flagQueueSize, "queue", 8, "Frames buffered per connection before the oldest is dropped")
}

func runWeb(cmd *cobra.Command, _ []string) error {
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

	cfg := web.DefaultConfig()
	cfg.Address = flagWebAddr
	cfg.QueueSize = flagQueueSize
	cfg.Game = gameCfg
	if flagFPS > 0 {
		cfg.TickInterval = time.Second / time.Duration(flagFPS)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return web.NewServer(cfg, store, logger).ListenAndServe(ctx)
}
