package ingestion

import (
	"context"
	"fmt"

	"github.com/openshift-assisted/machine-monitor/internal/domain/entity"
)

// Source returns the snapshots available at call time.
// A RejectedSnapshots error comes with the snapshots that could be decoded.
type Source interface {
	Poll(ctx context.Context) ([]entity.InboundSnapshot, error)
}

// Refresher applies the elapsed time rules to every known machine.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// RejectedSnapshot is one element of a poll result that could not be decoded.
type RejectedSnapshot struct {
	Payload []byte
	Err     error
}

type RejectedSnapshots []RejectedSnapshot

func (r RejectedSnapshots) Error() string {
	return fmt.Sprintf("%d snapshots rejected, first: %v", len(r), r[0].Err)
}
