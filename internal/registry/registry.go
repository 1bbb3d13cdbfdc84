// Package registry keeps the latest known state of every machine.
package registry

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/openshift-assisted/machine-monitor/internal/domain/entity"
	"github.com/openshift-assisted/machine-monitor/internal/status"
)

// Registry is the single piece of mutable shared state of the service.
// Writers are serialized, readers share a read lock and only get copies.
type Registry struct {
	mu       sync.RWMutex
	machines map[string]*entity.MachineState

	criteria *status.Criteria
	gauge    *prometheus.GaugeVec
}

func New(criteria *status.Criteria) *Registry {
	return &Registry{
		machines: make(map[string]*entity.MachineState),
		criteria: criteria,
	}
}

// WithMetrics exposes the number of machines per status.
func (r *Registry) WithMetrics(registerer prometheus.Registerer, namespace string) (*Registry, error) {
	gauge := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "machines",
		Help:      "Number of known machines by status.",
	}, []string{"status"})

	err := registerer.Register(gauge)
	if err != nil {
		return nil, fmt.Errorf("failed to register metric: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.gauge = gauge
	r.updateGauge()

	return r, nil
}

// Register pre-seeds a machine that has not reported yet. Known machines are left untouched.
func (r *Registry) Register(info entity.MachineInfo, now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, found := r.machines[info.ID]
	if found {
		return
	}

	state := &entity.MachineState{
		Info:         info,
		RegisteredAt: now,
		LastSeen:     now,
	}
	state.Status = status.Classify(state.Snapshot, false, 0, r.criteria.Get())

	r.machines[info.ID] = state
	r.updateGauge()
}

// Restore loads previously persisted states, typically at startup. No event is produced.
// Machines already reporting in the registry keep their current state.
func (r *Registry) Restore(states []entity.MachineState, now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	thresholds := r.criteria.Get()

	for _, s := range states {
		current, found := r.machines[s.Info.ID]
		if found && current.HasData {
			continue
		}

		restored := s
		restored.Snapshot = s.Snapshot.Clone()

		if found {
			restored.Info = current.Info
		}

		restored.Status = status.Classify(restored.Snapshot, restored.HasData, now.Sub(restored.LastSeen), thresholds)

		r.machines[s.Info.ID] = &restored
	}

	r.updateGauge()
}

// Upsert records a snapshot sampled and received at now and reports whether it produced a change.
// A first sighting always produces an event, later ones only on status or data change.
func (r *Registry) Upsert(id string, snapshot entity.SensorSnapshot, now time.Time) (entity.ChangeEvent, bool) {
	return r.UpsertSampled(id, snapshot, now, now)
}

// UpsertSampled records a snapshot sampled at sampledAt and received at now.
// The machine is last seen at sampledAt, capped at now; a zero sampledAt means now.
func (r *Registry) UpsertSampled(id string, snapshot entity.SensorSnapshot, sampledAt time.Time, now time.Time) (entity.ChangeEvent, bool) {
	snapshot = snapshot.Clone()
	if len(snapshot.Aux) == 0 {
		snapshot.Aux = nil
	}

	lastSeen := sampledAt
	if lastSeen.IsZero() || lastSeen.After(now) {
		lastSeen = now
	}

	newStatus := status.Classify(snapshot, true, now.Sub(lastSeen), r.criteria.Get())

	r.mu.Lock()
	defer r.mu.Unlock()

	state, found := r.machines[id]
	if !found {
		state = &entity.MachineState{
			Info:         entity.MachineInfo{ID: id},
			RegisteredAt: now,
		}

		r.machines[id] = state
	}

	changed := !found || !state.HasData || state.Status != newStatus || !sameSnapshot(state.Snapshot, snapshot)

	state.Snapshot = snapshot
	state.Status = newStatus
	state.HasData = true
	state.LastSeen = lastSeen

	r.updateGauge()

	if !changed {
		return entity.ChangeEvent{}, false
	}

	return entity.ChangeEvent{
		MachineID: id,
		Status:    newStatus,
		Snapshot:  snapshot.Clone(),
		Timestamp: now.UTC(),
	}, true
}

// Refresh applies the elapsed time rules at now and returns one event per machine whose status moved.
func (r *Registry) Refresh(now time.Time) []entity.ChangeEvent {
	thresholds := r.criteria.Get()

	r.mu.Lock()
	defer r.mu.Unlock()

	ret := make([]entity.ChangeEvent, 0)

	for _, id := range r.sortedIDs() {
		state := r.machines[id]

		newStatus := status.Classify(state.Snapshot, state.HasData, now.Sub(state.LastSeen), thresholds)
		if newStatus == state.Status {
			continue
		}

		state.Status = newStatus

		ret = append(ret, entity.ChangeEvent{
			MachineID: id,
			Status:    newStatus,
			Snapshot:  state.Snapshot.Clone(),
			Timestamp: now.UTC(),
		})
	}

	if len(ret) > 0 {
		r.updateGauge()
	}

	return ret
}

func (r *Registry) Get(id string) (entity.MachineState, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	state, found := r.machines[id]
	if !found {
		return entity.MachineState{}, false
	}

	return copyState(state), true
}

// GetAll returns a point in time copy of every machine, sorted by id.
func (r *Registry) GetAll() []entity.MachineState {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ret := make([]entity.MachineState, 0, len(r.machines))

	for _, id := range r.sortedIDs() {
		ret = append(ret, copyState(r.machines[id]))
	}

	return ret
}

func (r *Registry) sortedIDs() []string {
	ids := make([]string, 0, len(r.machines))
	for id := range r.machines {
		ids = append(ids, id)
	}

	slices.SortFunc(ids, strings.Compare)

	return ids
}

// updateGauge must be called with the write lock held.
func (r *Registry) updateGauge() {
	if r.gauge == nil {
		return
	}

	counts := make(map[entity.Status]int, len(entity.Statuses))
	for _, state := range r.machines {
		counts[state.Status]++
	}

	for _, s := range entity.Statuses {
		r.gauge.WithLabelValues(string(s)).Set(float64(counts[s]))
	}
}

func copyState(state *entity.MachineState) entity.MachineState {
	ret := *state
	ret.Snapshot = state.Snapshot.Clone()

	return ret
}

func sameSnapshot(a, b entity.SensorSnapshot) bool {
	return cmp.Equal(a, b)
}
