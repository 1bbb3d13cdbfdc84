package processing

import (
	"context"
	"errors"

	"github.com/openshift-assisted/machine-monitor/internal/domain/entity"
	"github.com/openshift-assisted/machine-monitor/internal/domain/repo"
	"github.com/openshift-assisted/machine-monitor/internal/registry"
)

// StoreSink writes through the full state of every changed machine.
type StoreSink struct {
	registry *registry.Registry
	writer   repo.MachineStateWriter
}

func NewStoreSink(registry *registry.Registry, writer repo.MachineStateWriter) StoreSink {
	return StoreSink{
		registry: registry,
		writer:   writer,
	}
}

func (s StoreSink) Process(ctx context.Context, event entity.ChangeEvent) error {
	state, found := s.registry.Get(event.MachineID)
	if !found {
		return nil
	}

	return s.writer.WriteMachineState(ctx, state)
}

type TransitionObserver interface {
	Observe(event entity.ChangeEvent) (entity.StatusTransition, bool)
}

// HistorySink turns change events into status transitions and records them.
type HistorySink struct {
	observer TransitionObserver
	writers  []repo.StatusHistoryWriter
}

func NewHistorySink(observer TransitionObserver, writers ...repo.StatusHistoryWriter) HistorySink {
	return HistorySink{
		observer: observer,
		writers:  writers,
	}
}

func (h HistorySink) Process(ctx context.Context, event entity.ChangeEvent) error {
	transition, ok := h.observer.Observe(event)
	if !ok {
		return nil
	}

	errs := make([]error, 0)

	for _, w := range h.writers {
		err := w.WriteStatusTransition(ctx, transition)
		if err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
