package pipeline_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/openshift-assisted/machine-monitor/internal/domain/entity"
	"github.com/openshift-assisted/machine-monitor/pkg/pipeline"
)

var _ = Describe("Testing tracing decorator", func() {
	var recorder *tracetest.SpanRecorder
	var provider *sdktrace.TracerProvider

	BeforeEach(func() {
		recorder = tracetest.NewSpanRecorder()
		provider = sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	})

	AfterEach(func() {
		Expect(provider.Shutdown(context.Background())).To(Succeed())
	})

	When("the inner processing succeeds", func() {
		It("should end one span without error", func() {
			inner := pipeline.ProcessingFunc[entity.ChangeEvent](func(context.Context, entity.ChangeEvent) error { return nil })

			p := pipeline.NewTracingProcessing[entity.ChangeEvent](inner, provider.Tracer("test"), "snapshot")
			Expect(p.Process(context.Background(), event)).To(Succeed())

			spans := recorder.Ended()
			Expect(spans).To(HaveLen(1))
			Expect(spans[0].Name()).To(Equal("snapshot"))
			Expect(spans[0].Status().Code).To(Equal(codes.Unset))
		})
	})

	When("the inner processing fails", func() {
		It("should record the error category", func() {
			inner := pipeline.ProcessingFunc[entity.ChangeEvent](func(context.Context, entity.ChangeEvent) error { return errSinkFailed })

			p := pipeline.NewTracingProcessing[entity.ChangeEvent](inner, provider.Tracer("test"), "snapshot")
			Expect(p.Process(context.Background(), event)).To(MatchError(errSinkFailed))

			spans := recorder.Ended()
			Expect(spans).To(HaveLen(1))
			Expect(spans[0].Status().Code).To(Equal(codes.Error))
			Expect(spans[0].Attributes()).To(ContainElements(
				attribute.String("error.category", sinkCategory),
				attribute.Bool("error.retryable", true),
			))
		})
	})
})
