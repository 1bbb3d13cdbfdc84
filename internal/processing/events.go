package processing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jonboulle/clockwork"

	"github.com/openshift-assisted/machine-monitor/internal/common"
	"github.com/openshift-assisted/machine-monitor/internal/domain/entity"
	"github.com/openshift-assisted/machine-monitor/internal/log"
	"github.com/openshift-assisted/machine-monitor/internal/registry"
	"github.com/openshift-assisted/machine-monitor/pkg/pipeline"
)

const (
	TransportSimulator = "simulator"
	TransportUpstream  = "upstream"
	TransportHTTP      = "http"

	categorySinkError = "sink"
)

// Main applies inbound snapshots to the registry and dispatches the resulting change events.
type Main struct {
	normalizer Normalizer
	registry   *registry.Registry
	sink       pipeline.Processing[entity.ChangeEvent]
	clock      clockwork.Clock
}

func NewMain(normalizer Normalizer, registry *registry.Registry, sink pipeline.Processing[entity.ChangeEvent], clock clockwork.Clock) Main {
	return Main{
		normalizer: normalizer,
		registry:   registry,
		sink:       sink,
		clock:      clock,
	}
}

func (m Main) Process(ctx context.Context, in entity.InboundSnapshot) error {
	normalized, err := m.normalizer.Normalize(in)
	if err != nil {
		return err
	}

	event, changed := m.registry.UpsertSampled(normalized.MachineID, normalized.Snapshot, normalized.SampledAt, m.clock.Now())

	if normalized.ReportedStatus != "" && normalized.ReportedStatus != event.Status && changed {
		log.Logger().V(2).Info("Reported status differs from classification",
			"machineID", normalized.MachineID,
			"reported", normalized.ReportedStatus,
			"classified", event.Status,
		)
	}

	if !changed {
		log.Logger().V(3).Info("Snapshot without change", "machineID", normalized.MachineID)

		return nil
	}

	err = m.sink.Process(ctx, event)
	if err != nil {
		return common.NewErrProcessingError(err, categorySinkError, nil, "failed to dispatch change of %s", normalized.MachineID)
	}

	return nil
}

// Refresh applies the elapsed time rules and dispatches every resulting change.
// A failing sink does not prevent the remaining events from being dispatched.
func (m Main) Refresh(ctx context.Context) error {
	events := m.registry.Refresh(m.clock.Now())

	errs := make([]error, 0)

	for _, event := range events {
		log.Logger().V(1).Info("Machine aged", "machineID", event.MachineID, "status", event.Status)

		err := m.sink.Process(ctx, event)
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to dispatch change of %s: %w", event.MachineID, err))
		}
	}

	if len(errs) > 0 {
		return common.NewErrProcessingError(errors.Join(errs...), categorySinkError, nil, "failed to dispatch %d aged machines", len(errs))
	}

	return nil
}

// Origin builds the error origin of an inbound snapshot received through transport.
func Origin(transport string, in entity.InboundSnapshot, clock clockwork.Clock) pipeline.Origin {
	payload, err := json.Marshal(in)
	if err != nil {
		payload = nil
	}

	return pipeline.Origin{
		Transport: transport,
		Key:       in.ID,
		Payload:   payload,
		Received:  clock.Now().UTC(),
	}
}
