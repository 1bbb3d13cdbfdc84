package hub

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/openshift-assisted/machine-monitor/internal/config"
	"github.com/openshift-assisted/machine-monitor/internal/log"
)

const defaultPingPeriod = 54 * time.Second

var (
	ErrSessionClosed = errors.New("session closed")
	ErrQueueFull     = errors.New("send queue full")
)

// WebsocketSession is a viewer connected through a websocket.
// Messages are queued by Send and written by a single writer goroutine.
type WebsocketSession struct {
	id   string
	conn *websocket.Conn
	conf config.Hub

	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

func NewWebsocketSession(conn *websocket.Conn, conf config.Hub) *WebsocketSession {
	return &WebsocketSession{
		id:   uuid.NewString(),
		conn: conn,
		conf: conf,
		send: make(chan []byte, conf.SendQueueSize),
		done: make(chan struct{}),
	}
}

func (s *WebsocketSession) ID() string {
	return s.id
}

func (s *WebsocketSession) Send(msg []byte) error {
	select {
	case <-s.done:
		return ErrSessionClosed
	default:
	}

	select {
	case s.send <- msg:
		return nil
	default:
		return ErrQueueFull
	}
}

// Close stops the session without waiting for the close handshake to be written.
func (s *WebsocketSession) Close() {
	s.closeOnce.Do(func() {
		close(s.done)

		go s.shutdown()
	})
}

func (s *WebsocketSession) shutdown() {
	deadline := time.Now().Add(s.conf.WriteTimeout)
	_ = s.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
	_ = s.conn.Close()
}

// Run registers the session and blocks until the viewer goes away, the session is dropped or ctx is done.
func (s *WebsocketSession) Run(ctx context.Context, h *Hub) {
	h.Register(s)
	defer h.Unregister(s)

	go s.writePump()

	go func() {
		select {
		case <-ctx.Done():
			h.Unregister(s)
		case <-s.done:
		}
	}()

	s.readPump()
}

// readPump discards viewer messages, it only serves close and pong handling.
func (s *WebsocketSession) readPump() {
	s.conn.SetReadLimit(s.conf.MaxMessageSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(s.conf.PongTimeout))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(s.conf.PongTimeout))
	})

	for {
		_, _, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNoStatusReceived) {
				log.Logger().V(1).Info("Viewer read failed", "session", s.id, "reason", err.Error())
			}

			return
		}
	}
}

func (s *WebsocketSession) writePump() {
	pingTicker := time.NewTicker(s.pingPeriod())
	defer pingTicker.Stop()

	for {
		select {
		case <-s.done:
			return

		case msg := <-s.send:
			_ = s.conn.SetWriteDeadline(time.Now().Add(s.conf.WriteTimeout))

			err := s.conn.WriteMessage(websocket.TextMessage, msg)
			if err != nil {
				log.Logger().V(1).Info("Viewer write failed", "session", s.id, "reason", err.Error())
				_ = s.conn.Close()

				return
			}

		case <-pingTicker.C:
			err := s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(s.conf.WriteTimeout))
			if err != nil {
				_ = s.conn.Close()

				return
			}
		}
	}
}

func (s *WebsocketSession) pingPeriod() time.Duration {
	if s.conf.PongTimeout <= 0 {
		return defaultPingPeriod
	}

	return s.conf.PongTimeout * 9 / 10
}
