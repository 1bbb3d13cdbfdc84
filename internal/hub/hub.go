// Package hub fans machine change events out to connected viewers.
package hub

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/openshift-assisted/machine-monitor/internal/domain/entity"
	"github.com/openshift-assisted/machine-monitor/internal/log"
)

// Session is a viewer connection owned by the Hub while registered.
// Send must not block: it queues the message or fails.
type Session interface {
	ID() string
	Send(msg []byte) error
	Close()
}

type Hub struct {
	mu       sync.Mutex
	sessions map[string]Session

	sessionGauge   prometheus.Gauge
	broadcastCount prometheus.Counter
	droppedCount   prometheus.Counter
}

func New() *Hub {
	return &Hub{
		sessions: make(map[string]Session),
	}
}

func (h *Hub) WithMetrics(registerer prometheus.Registerer, namespace string) (*Hub, error) {
	sessionGauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "viewer_sessions",
		Help:      "Number of registered viewer sessions.",
	})

	broadcastCount := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "broadcast_total",
		Help:      "Number of published change events.",
	})

	droppedCount := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "broadcast_dropped_total",
		Help:      "Number of deliveries that failed and removed their session.",
	})

	for _, c := range []prometheus.Collector{sessionGauge, broadcastCount, droppedCount} {
		err := registerer.Register(c)
		if err != nil {
			return nil, fmt.Errorf("failed to register metric: %w", err)
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.sessionGauge = sessionGauge
	h.broadcastCount = broadcastCount
	h.droppedCount = droppedCount

	h.sessionGauge.Set(float64(len(h.sessions)))

	return h, nil
}

func (h *Hub) Register(session Session) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.sessions[session.ID()] = session
	h.updateGauge()

	log.Logger().V(1).Info("Viewer connected", "session", session.ID(), "sessions", len(h.sessions))
}

// Unregister removes and closes session. Unknown sessions are ignored.
func (h *Hub) Unregister(session Session) {
	h.mu.Lock()
	removed := h.detach(session)
	count := len(h.sessions)
	h.mu.Unlock()

	if !removed {
		return
	}

	session.Close()

	log.Logger().V(1).Info("Viewer disconnected", "session", session.ID(), "sessions", count)
}

// Publish serializes event once and queues it on every registered session.
// A session failing to accept the message is unregistered, the others are not affected.
// Dropped sessions are closed once the lock is released.
func (h *Hub) Publish(event entity.ChangeEvent) error {
	msg, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal change event: %w", err)
	}

	dropped := h.broadcast(msg)

	for _, session := range dropped {
		session.Close()
	}

	return nil
}

func (h *Hub) broadcast(msg []byte) []Session {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.broadcastCount != nil {
		h.broadcastCount.Inc()
	}

	dropped := make([]Session, 0)

	for _, session := range h.sessions {
		err := session.Send(msg)
		if err == nil {
			continue
		}

		log.Logger().V(1).Info("Dropping viewer", "session", session.ID(), "reason", err.Error())

		if h.droppedCount != nil {
			h.droppedCount.Inc()
		}

		if h.detach(session) {
			dropped = append(dropped, session)
		}
	}

	return dropped
}

// Process lets the Hub be used as a change event sink.
func (h *Hub) Process(_ context.Context, event entity.ChangeEvent) error {
	return h.Publish(event)
}

func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.sessions)
}

// Close unregisters every session.
func (h *Hub) Close() {
	h.mu.Lock()

	sessions := make([]Session, 0, len(h.sessions))
	for _, session := range h.sessions {
		sessions = append(sessions, session)
	}

	clear(h.sessions)
	h.updateGauge()
	h.mu.Unlock()

	for _, session := range sessions {
		session.Close()
	}
}

// detach must be called with the lock held. The caller closes the session.
func (h *Hub) detach(session Session) bool {
	current, found := h.sessions[session.ID()]
	if !found || current != session {
		return false
	}

	delete(h.sessions, session.ID())
	h.updateGauge()

	return true
}

func (h *Hub) updateGauge() {
	if h.sessionGauge == nil {
		return
	}

	h.sessionGauge.Set(float64(len(h.sessions)))
}
