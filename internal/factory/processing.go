package factory

import (
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"

	"github.com/openshift-assisted/machine-monitor/internal/domain/entity"
	"github.com/openshift-assisted/machine-monitor/internal/domain/repo"
	"github.com/openshift-assisted/machine-monitor/internal/processing"
	"github.com/openshift-assisted/machine-monitor/internal/status"
	"github.com/openshift-assisted/machine-monitor/pkg/pipeline"
)

const (
	namespaceSnapshot = "snapshot"
	namespaceError    = "error"
	namespaceSink     = "sink"
)

var sinkRetry = pipeline.RetryConfig{MaxAttempt: 3, Delay: 100 * time.Millisecond}

/*
 * DecorateProcessing decorates the snapshot processing as follow:
 *
 * panic --> duration --> tracing --> count --> late --> main (normalize + registry + sink)
 */
func DecorateProcessing(mainProcessing pipeline.Processing[entity.InboundSnapshot], registry prometheus.Registerer, clock clockwork.Clock, tracer trace.Tracer, criteria *status.Criteria) (pipeline.Processing[entity.InboundSnapshot], error) {
	ret, err := processing.NewCountLateData(mainProcessing, registry, clock, criteria, pipeline.MetricsConfig{Namespace: namespaceSnapshot})
	if err != nil {
		return nil, fmt.Errorf("failed to create late data processor: %w", err)
	}

	ret, err = processing.NewCountData(ret, registry, pipeline.MetricsConfig{Namespace: namespaceSnapshot})
	if err != nil {
		return nil, fmt.Errorf("failed to create count processor: %w", err)
	}

	ret = pipeline.NewTracingProcessing(ret, tracer, "snapshot")

	ret, err = pipeline.NewDurationMetricsDecoratorProcessing(ret, registry, clock, pipeline.MetricsConfig{Namespace: namespaceSnapshot})
	if err != nil {
		return nil, fmt.Errorf("failed to create duration metrics processor: %w", err)
	}

	ret = pipeline.NewPanicHandlerProcessing(ret)

	return ret, nil
}

/*
 * DecorateErrorProcessing decorates the error processing as follow:
 *
 *										---> retry --> main (log + dlq)
 *	panic --> duration --> parallel ---|
 *										---> error count
 */
func DecorateErrorProcessing(mainProcessing pipeline.ErrorProcessing, registry prometheus.Registerer, clock clockwork.Clock) (pipeline.ErrorProcessing, error) {
	ret := mainProcessing

	ret = pipeline.NewRetryProcessing(ret, sinkRetry)

	errorCount, err := pipeline.NewErrorCountProcessing(registry, pipeline.MetricsConfig{Namespace: namespaceError})
	if err != nil {
		return nil, fmt.Errorf("failed to create error count processing: %w", err)
	}

	ret = pipeline.NewParallelProcessing(ret, errorCount)

	ret, err = pipeline.NewDurationMetricsDecoratorProcessing(ret, registry, clock, pipeline.MetricsConfig{Namespace: namespaceError})
	if err != nil {
		return nil, fmt.Errorf("failed to create duration metrics processor: %w", err)
	}

	ret = pipeline.NewPanicHandlerProcessing(ret)

	return ret, nil
}

// ChangeSinks lists the consumers of change events. Nil members are skipped.
type ChangeSinks struct {
	Viewers   pipeline.Processing[entity.ChangeEvent]
	Store     pipeline.Processing[entity.ChangeEvent]
	Publisher repo.ChangeEventPublisher
	History   pipeline.Processing[entity.ChangeEvent]
}

/*
 * CreateChangeSink builds the change event fan out as follow:
 *
 *							---> viewers (hub)
 *							---> retry --> store (valkey | badger)
 *	duration --> parallel ---|
 *							---> retry --> publisher (nats)
 *							---> retry --> history (memory + s3)
 */
func CreateChangeSink(sinks ChangeSinks, registry prometheus.Registerer, clock clockwork.Clock) (pipeline.Processing[entity.ChangeEvent], error) {
	members := make([]pipeline.Processing[entity.ChangeEvent], 0, 4)

	if sinks.Viewers != nil {
		members = append(members, sinks.Viewers)
	}

	if sinks.Store != nil {
		members = append(members, pipeline.NewRetryProcessing(sinks.Store, sinkRetry))
	}

	if sinks.Publisher != nil {
		publish := pipeline.ProcessingFunc[entity.ChangeEvent](sinks.Publisher.PublishChangeEvent)
		members = append(members, pipeline.NewRetryProcessing[entity.ChangeEvent](publish, sinkRetry))
	}

	if sinks.History != nil {
		members = append(members, pipeline.NewRetryProcessing(sinks.History, sinkRetry))
	}

	ret := pipeline.NewParallelProcessing(members...)

	ret, err := pipeline.NewDurationMetricsDecoratorProcessing(ret, registry, clock, pipeline.MetricsConfig{Namespace: namespaceSink})
	if err != nil {
		return nil, fmt.Errorf("failed to create duration metrics processor: %w", err)
	}

	return ret, nil
}
