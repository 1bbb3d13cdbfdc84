package processing

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/openshift-assisted/machine-monitor/internal/domain/entity"
	"github.com/openshift-assisted/machine-monitor/pkg/pipeline"
)

const resultProcessed = "processed"

type CountData struct {
	counter *prometheus.CounterVec
	inner   pipeline.Processing[entity.InboundSnapshot]
}

func NewCountData(p pipeline.Processing[entity.InboundSnapshot], registry prometheus.Registerer, config pipeline.MetricsConfig) (pipeline.Processing[entity.InboundSnapshot], error) {
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: config.Namespace,
		Subsystem: config.Subsystem,
		Name:      "snapshot_total",
		Help:      "Snapshot counter by processing result.",
	}, []string{"result"})

	err := registry.Register(counter)
	if err != nil {
		return nil, fmt.Errorf("failed to register metric: %w", err)
	}

	ret := CountData{
		counter: counter,
		inner:   p,
	}

	return ret, nil
}

func (p CountData) Process(ctx context.Context, in entity.InboundSnapshot) error {
	err := p.inner.Process(ctx, in)

	result := resultProcessed
	if err != nil {
		result = pipeline.AsProcessingError(err).Category
	}

	p.counter.WithLabelValues(result).Inc()

	return err
}
