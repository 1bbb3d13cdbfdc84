package repo

import (
	"context"
	"time"

	"github.com/openshift-assisted/machine-monitor/internal/domain/entity"
	"github.com/openshift-assisted/machine-monitor/pkg/pipeline"
)

//go:generate mockgen -source=interfaces.go -package=mock -destination=./mock/mock_repo.go

type ProcessingErrorWriter interface {
	WriteProcessingError(ctx context.Context, pErr pipeline.ErrProcessingError) error
}

type ProcessingError interface {
	ProcessingErrorWriter
}

type MachineStateWriter interface {
	WriteMachineState(ctx context.Context, state entity.MachineState) error
}

type MachineStateReader interface {
	GetMachineStates(ctx context.Context) ([]entity.MachineState, error)
}

type MachineState interface {
	MachineStateWriter
	MachineStateReader
}

type ChangeEventPublisher interface {
	PublishChangeEvent(ctx context.Context, event entity.ChangeEvent) error
}

type StatusHistoryWriter interface {
	WriteStatusTransition(ctx context.Context, transition entity.StatusTransition) error
}

type StatusHistoryReader interface {
	GetStatusTransitions(ctx context.Context, machineID string, since time.Time) ([]entity.StatusTransition, error)
}

type StatusHistory interface {
	StatusHistoryWriter
	StatusHistoryReader
}
