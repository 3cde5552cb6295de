// Package web serves skybird sessions over WebSocket. Each connection owns
// its own Session and Runner; frames stream to the browser while the
// session is playing.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/skybird/internal/config"
	"github.com/vovakirdan/skybird/internal/engine"
	"github.com/vovakirdan/skybird/internal/storage"
)

// Config holds the web server settings.
type Config struct {
	Address      string
	TickInterval time.Duration // Zero uses the game config
	QueueSize    int           // Frames buffered per connection
	Game         config.SkybirdConfig
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Address:   ":8080",
		QueueSize: 8,
		Game:      config.DefaultSkybirdConfig(),
	}
}

// Server is the HTTP and WebSocket front end.
type Server struct {
	cfg      Config
	store    *storage.Store // Optional
	logger   *log.Logger
	upgrader websocket.Upgrader

	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
	wg    sync.WaitGroup
}

// NewServer creates a server. store may be nil.
func NewServer(cfg Config, store *storage.Store, logger *log.Logger) *Server {
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = time.Duration(cfg.Game.Loop.TickMillis) * time.Millisecond
	}
	return &Server{
		cfg:    cfg,
		store:  store,
		logger: logger.WithPrefix("web"),
		upgrader: websocket.Upgrader{
			// Any origin may connect; sessions are anonymous.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		conns: make(map[*websocket.Conn]struct{}),
	}
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ws", s.handleWS)
	mux.HandleFunc("GET /api/leaderboard", s.handleLeaderboard)
	mux.HandleFunc("GET /api/profile/{player}", s.handleProfile)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	return mux
}

// ListenAndServe serves until ctx is cancelled, then closes every open
// connection and waits for their sessions to persist.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting web server", "address", s.cfg.Address)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	s.closeAll()
	s.wg.Wait()
	return err
}

func (s *Server) track(c *websocket.Conn) {
	s.mu.Lock()
	s.conns[c] = struct{}{}
	s.mu.Unlock()
}

func (s *Server) untrack(c *websocket.Conn) {
	s.mu.Lock()
	delete(s.conns, c)
	s.mu.Unlock()
}

// closeAll closes hijacked connections, which http.Server.Shutdown does
// not track.
func (s *Server) closeAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.conns {
		_ = c.Close()
	}
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		http.Error(w, "scores are not being saved", http.StatusServiceUnavailable)
		return
	}

	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = min(n, 100)
	}

	scores, err := s.store.Leaderboard(limit)
	if err != nil {
		s.logger.Error("leaderboard query failed", "err", err)
		http.Error(w, "cannot load scores", http.StatusInternalServerError)
		return
	}
	writeJSON(w, scores)
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		http.Error(w, "profiles are not being saved", http.StatusServiceUnavailable)
		return
	}

	player := r.PathValue("player")
	p, found, err := s.store.LoadProfile(player)
	if err != nil {
		s.logger.Error("profile query failed", "player", player, "err", err)
		http.Error(w, "cannot load profile", http.StatusInternalServerError)
		return
	}
	if !found {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, p)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// sessionOptions builds the engine options for a connection.
func (s *Server) sessionOptions(player string, haptics engine.Haptics, logger *log.Logger) engine.Options {
	opts := engine.Options{
		Player:  player,
		Config:  s.cfg.Game,
		Haptics: haptics,
		Logger:  logger,
	}
	if s.store != nil {
		opts.Store = s.store
	}
	return opts
}
