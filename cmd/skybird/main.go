// skybird is an endless side-scrolling flight game for the terminal, SSH
// and the browser.
//
// Usage:
//
//	skybird play             - Fly in this terminal
//	skybird serve            - Start SSH server for remote play
//	skybird web              - Start WebSocket server for browser clients
//	skybird scores           - Show the leaderboard or a player's best runs
//	skybird profile          - Show a player's progression
//	skybird themes           - List visual themes
//	skybird skins            - List skins or select an owned one
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: config tick_ms)
//	--seed <value>      - Set RNG seed for reproducible spawns
//	--db <path>         - Set database path (default: ~/.skybird/skybird.db)
//	--config <path>     - Load tuning from a YAML file
//	--player <name>     - Profile name (default: $USER)
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/skybird/internal/config"
	"github.com/vovakirdan/skybird/internal/storage"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagPlayer   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "skybird",
	Short: "Skybird - an endless flight through the seasons",
	Long: `Skybird is a one-button flying game. Flap through rings, balloons
and branches, collect coins and power-ups, and level up your bird.

Available commands:
  play     - Fly in this terminal
  serve    - Start SSH server for remote play
  web      - Start WebSocket server for browser clients
  scores   - View high scores
  profile  - Show progression
  themes   - List themes
  skins    - List or select skins

Settings may also come from a .env file or the environment:
  SKYBIRD_DB, SKYBIRD_CONFIG, SKYBIRD_PLAYER, SKYBIRD_LOG_LEVEL

Examples:
  skybird play
  skybird play --seed 42 --player ann
  skybird serve --ssh :2222
  skybird web --addr :8080
  skybird scores --player ann`,
	SilenceUsage:      true,
	PersistentPreRunE: applyEnv,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (0 = use the config's tick_ms)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.skybird/skybird.db", "Path to the profile and score database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom tuning YAML")
	rootCmd.PersistentFlags().StringVar(&flagPlayer, "player", defaultPlayer(), "Profile name")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(themesCmd)
	rootCmd.AddCommand(skinsCmd)
}

// applyEnv loads .env and fills flags the user did not set from the
// environment.
func applyEnv(cmd *cobra.Command, _ []string) error {
	if err := config.LoadEnv(); err != nil {
		return err
	}

	flags := cmd.Flags()
	for _, f := range []struct {
		name string
		env  string
		dst  *string
	}{
		{"db", config.EnvDB, &flagDBPath},
		{"config", config.EnvConfig, &flagConfig},
		{"player", config.EnvPlayer, &flagPlayer},
		{"log-level", config.EnvLogLevel, &flagLogLevel},
	} {
		if !flags.Changed(f.name) {
			*f.dst = config.GetEnv(f.env, *f.dst)
		}
	}
	return nil
}

func defaultPlayer() string {
	return config.GetEnv("USER", "local")
}

// newLogger creates the command logger writing to w.
func newLogger(w io.Writer) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "skybird",
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// loadGameConfig loads tuning from --config or the default search path.
func loadGameConfig() (config.SkybirdConfig, error) {
	cfg, err := config.LoadSkybird(flagConfig)
	if err != nil {
		return config.SkybirdConfig{}, err
	}
	return cfg, nil
}

// openStore opens the database at --db.
func openStore() (*storage.Store, error) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return nil, fmt.Errorf("cannot open database: %w", err)
	}
	return store, nil
}
