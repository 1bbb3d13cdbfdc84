package processing

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/openshift-assisted/machine-monitor/internal/domain/entity"
	"github.com/openshift-assisted/machine-monitor/internal/log"
	"github.com/openshift-assisted/machine-monitor/internal/status"
	"github.com/openshift-assisted/machine-monitor/pkg/pipeline"
)

// CountLateData counts accepted snapshots sampled longer ago than the stale timeout.
type CountLateData struct {
	counter  prometheus.Counter
	clock    clockwork.Clock
	criteria *status.Criteria
	inner    pipeline.Processing[entity.InboundSnapshot]
}

func NewCountLateData(p pipeline.Processing[entity.InboundSnapshot], registry prometheus.Registerer, clock clockwork.Clock, criteria *status.Criteria, config pipeline.MetricsConfig) (pipeline.Processing[entity.InboundSnapshot], error) {
	counter := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: config.Namespace,
		Subsystem: config.Subsystem,
		Name:      "late_snapshot_total",
		Help:      "Snapshots sampled before the stale deadline.",
	})

	err := registry.Register(counter)
	if err != nil {
		return nil, fmt.Errorf("failed to register metric: %w", err)
	}

	ret := CountLateData{
		counter:  counter,
		clock:    clock,
		criteria: criteria,
		inner:    p,
	}

	return ret, nil
}

func (p CountLateData) Process(ctx context.Context, in entity.InboundSnapshot) error {
	err := p.inner.Process(ctx, in)
	if err != nil {
		return err // Count only successfully processed data
	}

	sampledAt, err := entity.ParseTimestamp(in.Timestamp)
	if err != nil {
		log.Logger().Error(err, "Failed to extract time to count late data")

		return nil // Not a processing error
	}

	if sampledAt.After(p.computeDeadline()) {
		return nil
	}

	p.counter.Inc()

	return nil
}

// Snapshots sampled before the deadline would already have aged their machine to stale.
func (p CountLateData) computeDeadline() time.Time {
	return p.clock.Now().UTC().Add(-p.criteria.Get().StaleTimeout)
}
