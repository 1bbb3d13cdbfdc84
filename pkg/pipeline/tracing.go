package pipeline

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Tracing Processing

type tracingDecorator[Payload any] struct {
	processing Processing[Payload]
	tracer     trace.Tracer
	spanName   string
}

// NewTracingProcessing opens one span per processed payload.
func NewTracingProcessing[Payload any](p Processing[Payload], tracer trace.Tracer, spanName string) Processing[Payload] {
	return tracingDecorator[Payload]{
		processing: p,
		tracer:     tracer,
		spanName:   spanName,
	}
}

func (p tracingDecorator[Payload]) Process(ctx context.Context, payload Payload) error {
	ctx, span := p.tracer.Start(ctx, p.spanName)
	defer span.End()

	err := p.processing.Process(ctx, payload)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(
			attribute.String("error.category", AsProcessingError(err).Category),
			attribute.Bool("error.retryable", errors.Is(err, ErrRetryableError)),
		)
	}

	return err
}
