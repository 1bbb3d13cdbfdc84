package factory

import (
	"context"
	"fmt"

	"github.com/prometheus/common/version"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/openshift-assisted/machine-monitor/internal/common"
	"github.com/openshift-assisted/machine-monitor/internal/config"
)

// CreateTracerProvider returns a no-op provider unless tracing is enabled, spans are then written to stdout.
func CreateTracerProvider(conf config.Tracing) (trace.TracerProvider, common.CloseFunc, error) {
	if !conf.Enabled {
		return noop.NewTracerProvider(), nil, nil
	}

	exporter, err := stdouttrace.New()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create stdout exporter: %w", err)
	}

	resource := sdkresource.NewSchemaless(
		attribute.String("service.name", conf.ServiceName),
		attribute.String("service.version", version.Version),
	)

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource),
	)

	shutdown := func(ctx context.Context) error {
		return provider.Shutdown(ctx)
	}

	return provider, shutdown, nil
}
