package web

import (
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/skybird/internal/engine"
	"github.com/vovakirdan/skybird/internal/sim"
)

// Connection timing
const (
	readLimit    = 1 << 12
	pongWait     = 60 * time.Second
	pingInterval = 25 * time.Second
	writeWait    = 10 * time.Second
)

// client is one websocket connection. readLoop is the only reader and
// writeLoop the only writer.
type client struct {
	conn    *websocket.Conn
	codec   codec
	logger  *log.Logger
	queue   *engine.FrameQueue
	haptics chan sim.Impact
	errs    chan error
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	cd, err := codecFor(q.Get("codec"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	player := q.Get("player")
	if player == "" {
		player = "guest-" + uuid.NewString()[:8]
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrade failed", "err", err)
		return
	}

	s.wg.Add(1)
	defer s.wg.Done()
	s.track(conn)
	defer s.untrack(conn)
	defer conn.Close()

	c := &client{
		conn:    conn,
		codec:   cd,
		logger:  s.logger.With("player", player, "remote", r.RemoteAddr),
		queue:   engine.NewFrameQueue(s.cfg.QueueSize),
		haptics: make(chan sim.Impact, 8),
		errs:    make(chan error, 4),
	}

	session := engine.NewSession(s.sessionOptions(player, engine.HapticsFunc(c.pulse), c.logger))
	runner := engine.NewRunner(session, s.cfg.TickInterval, c.queue.Send)

	c.logger.Info("client connected", "codec", q.Get("codec"))
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		c.writeLoop()
	}()

	c.queue.Send(session.Frame())
	c.readLoop(runner)

	// Close the runner first so no frame is produced after the queue is done.
	_ = runner.Close()
	session.SaveProgress()
	c.queue.Close()
	<-writerDone
	c.logger.Info("client disconnected")
}

// pulse queues a haptic without blocking the runner.
func (c *client) pulse(i sim.Impact) {
	select {
	case c.haptics <- i:
	default:
	}
}

// reject reports a bad client message without blocking.
func (c *client) reject(err error) {
	select {
	case c.errs <- err:
	default:
	}
}

func (c *client) readLoop(r *engine.Runner) {
	c.conn.SetReadLimit(readLimit)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.logger.Debug("read failed", "err", err)
			}
			return
		}

		var msg clientMessage
		if err := c.codec.Decode(data, &msg); err != nil {
			c.reject(err)
			continue
		}
		if err := msg.apply(r); err != nil {
			if errors.Is(err, engine.ErrClosed) {
				return
			}
			c.reject(err)
		}
	}
}

func (c *client) writeLoop() {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		var msg serverMessage
		select {
		case <-c.queue.Done():
			_ = c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			return
		case f := <-c.queue.Frames():
			msg = frameMessage(f)
		case i := <-c.haptics:
			msg = hapticMessage(i)
		case err := <-c.errs:
			msg = errorMessage(err)
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
			continue
		}

		if err := c.write(msg); err != nil {
			c.logger.Debug("write failed", "err", err)
			// Unblock the reader so the handler can clean up.
			_ = c.conn.Close()
			return
		}
	}
}

func (c *client) write(msg serverMessage) error {
	mt, data, err := c.codec.Encode(msg)
	if err != nil {
		return err
	}
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(mt, data)
}
