package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/skybird/internal/core"
	"github.com/vovakirdan/skybird/internal/engine"
	"github.com/vovakirdan/skybird/internal/platform/tui"
)

var flagLogFile string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Fly in this terminal",
	Long: `Start a session in this terminal. Progress is saved to --db under
the --player profile.

Controls:
  Space/Up/W - Flap (also starts a flight)
  P/Esc      - Pause
  T          - Next theme
  S          - Next owned skin
  B          - Scoreboard (when not flying)
  Q/Ctrl+C   - Quit

Examples:
  skybird play
  skybird play --player ann --seed 7
  skybird play --config ./my-skybird.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (the screen is owned by the game)")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	var logOut io.Writer = io.Discard
	if flagLogFile != "" {
		if err := os.MkdirAll(filepath.Dir(flagLogFile), 0o755); err != nil {
			return err
		}
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return err
		}
		defer f.Close()
		logOut = f
	}
	logger := newLogger(logOut)

	gameCfg, err := loadGameConfig()
	if err != nil {
		return err
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	opts := engine.Options{
		Player: flagPlayer,
		Seed:   flagSeed,
		Config: gameCfg,
		Logger: logger,
	}

	// The game still works without storage.
	var scores tui.ScoreSource
	store, err := openStore()
	if err != nil {
		cmd.PrintErrf("Warning: %v\n", err)
	} else {
		defer store.Close()
		opts.Store = store
		scores = store
	}

	rc := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
		Player:   flagPlayer,
	}
	return tui.Run(engine.NewSession(opts), scores, rc)
}
