package history

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/openshift-assisted/machine-monitor/internal/domain/entity"
)

// Memory keeps the most recent status transitions of every machine.
type Memory struct {
	mu sync.RWMutex

	size        int
	last        map[string]entity.StatusTransition
	transitions map[string][]entity.StatusTransition
}

func NewMemory(size int) *Memory {
	return &Memory{
		size:        size,
		last:        make(map[string]entity.StatusTransition),
		transitions: make(map[string][]entity.StatusTransition),
	}
}

// Observe returns the transition carried by event, if its status differs from the last observed one.
// Observing the event of the last transition again returns that transition, so a retried event is recorded.
func (m *Memory) Observe(event entity.ChangeEvent) (entity.StatusTransition, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	previous, found := m.last[event.MachineID]
	if found && previous.To == event.Status {
		return previous, previous.Timestamp.Equal(event.Timestamp)
	}

	ret := entity.StatusTransition{
		MachineID: event.MachineID,
		From:      previous.To,
		To:        event.Status,
		Timestamp: event.Timestamp,
	}

	m.last[event.MachineID] = ret

	return ret, true
}

func (m *Memory) WriteStatusTransition(_ context.Context, transition entity.StatusTransition) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries := m.transitions[transition.MachineID]
	if len(entries) > 0 && sameTransition(entries[len(entries)-1], transition) {
		return nil
	}

	entries = append(entries, transition)
	if m.size > 0 && len(entries) > m.size {
		entries = slices.Clone(entries[len(entries)-m.size:])
	}

	m.transitions[transition.MachineID] = entries

	return nil
}

// GetStatusTransitions returns the transitions of machineID at or after since, newest first.
func (m *Memory) GetStatusTransitions(_ context.Context, machineID string, since time.Time) ([]entity.StatusTransition, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entries := m.transitions[machineID]
	ret := make([]entity.StatusTransition, 0, len(entries))

	for i := len(entries) - 1; i >= 0; i-- {
		if entries[i].Timestamp.Before(since) {
			break
		}

		ret = append(ret, entries[i])
	}

	return ret, nil
}

func sameTransition(a, b entity.StatusTransition) bool {
	return a.MachineID == b.MachineID && a.From == b.From && a.To == b.To && a.Timestamp.Equal(b.Timestamp)
}
