package processing

import (
	"context"
	"errors"

	"github.com/openshift-assisted/machine-monitor/internal/domain/repo"
	"github.com/openshift-assisted/machine-monitor/internal/log"
	"github.com/openshift-assisted/machine-monitor/pkg/pipeline"
)

// MainError reports rejected snapshots and hands them to the dead letter writer when one is configured.
type MainError struct {
	writer repo.ProcessingErrorWriter
}

func NewMainError(writer repo.ProcessingErrorWriter) MainError {
	return MainError{
		writer: writer,
	}
}

func (m MainError) Process(ctx context.Context, pErr pipeline.ErrProcessingError) error {
	keysAndValues := []any{
		"category", pErr.Category,
		"retryable", errors.Is(pErr, pipeline.ErrRetryableError),
	}

	if pErr.Origin != nil {
		keysAndValues = append(keysAndValues, "transport", pErr.Origin.Transport, "key", pErr.Origin.Key)
	}

	log.Logger().Info("Snapshot rejected: "+pErr.Error(), keysAndValues...)

	if m.writer == nil || pErr.Origin == nil {
		return nil
	}

	return m.writer.WriteProcessingError(ctx, pErr)
}
