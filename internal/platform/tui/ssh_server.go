package tui

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"

	"github.com/vovakirdan/skybird/internal/config"
	"github.com/vovakirdan/skybird/internal/core"
	"github.com/vovakirdan/skybird/internal/engine"
	"github.com/vovakirdan/skybird/internal/storage"
)

const sshShutdownTimeout = 10 * time.Second

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	Address     string        // host:port, e.g. ":23234"
	HostKeyPath string        // Empty generates ~/.skybird/host_key
	IdleTimeout time.Duration // Idle connections are closed after this
	TickRate    int           // Overrides the configured tick interval when positive
	Game        config.SkybirdConfig
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		IdleTimeout: 30 * time.Minute,
		Game:        config.DefaultSkybirdConfig(),
	}
}

// SSHServer serves one skybird session per SSH connection. The SSH user
// name selects the profile, so progress follows the player.
type SSHServer struct {
	cfg    SSHServerConfig
	server *ssh.Server
	store  *storage.Store // Optional
	logger *log.Logger
}

// NewSSHServer creates the server. store may be nil, in which case
// nothing is persisted.
func NewSSHServer(cfg SSHServerConfig, store *storage.Store, logger *log.Logger) (*SSHServer, error) {
	keyPath, err := resolveHostKey(cfg.HostKeyPath)
	if err != nil {
		return nil, err
	}

	s := &SSHServer{
		cfg:    cfg,
		store:  store,
		logger: logger.WithPrefix("ssh"),
	}

	// Middlewares run last to first: logging wraps activeterm wraps the game.
	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(keyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(s.newProgram),
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(s.logger),
		),
		ssh.WrapConn(noDelay),
	)
	if err != nil {
		return nil, fmt.Errorf("ssh: cannot create server: %w", err)
	}
	s.server = server
	return s, nil
}

// resolveHostKey returns the host key location and makes sure its
// directory exists. wish generates the key on first start.
func resolveHostKey(path string) (string, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("ssh: cannot get home directory: %w", err)
		}
		path = filepath.Join(home, ".skybird", "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("ssh: cannot create host key directory: %w", err)
	}
	return path, nil
}

// noDelay disables Nagle's algorithm so single keystrokes reach the game
// immediately.
func noDelay(_ ssh.Context, conn net.Conn) net.Conn {
	if tcp, ok := conn.(*net.TCPConn); ok {
		_ = tcp.SetNoDelay(true)
	}
	return conn
}

// newProgram builds the Bubble Tea model for one connection.
func (s *SSHServer) newProgram(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := sess.Pty()
	player := sess.User()

	opts := engine.Options{
		Player: player,
		Config: s.cfg.Game,
		Logger: s.logger,
	}
	var scores ScoreSource
	if s.store != nil {
		opts.Store = s.store
		scores = s.store
	}

	rc := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.cfg.TickRate,
		Player:   player,
	}
	session := engine.NewSession(opts)
	go func() {
		<-sess.Context().Done()
		session.SaveProgress()
	}()
	return NewAppModel(session, scores, rc), []tea.ProgramOption{tea.WithAltScreen()}
}

// ListenAndServe accepts connections until ctx is cancelled, then shuts
// the server down gracefully.
func (s *SSHServer) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting SSH server", "address", s.cfg.Address)
		errCh <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, ssh.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("ssh: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), sshShutdownTimeout)
	defer cancel()
	return s.server.Shutdown(shutdownCtx)
}
