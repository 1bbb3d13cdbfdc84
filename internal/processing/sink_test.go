package processing_test

import (
	"context"
	"errors"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/mock/gomock"

	"github.com/openshift-assisted/machine-monitor/internal/domain/entity"
	"github.com/openshift-assisted/machine-monitor/internal/domain/repo/history"
	repomock "github.com/openshift-assisted/machine-monitor/internal/domain/repo/mock"
	"github.com/openshift-assisted/machine-monitor/internal/processing"
	"github.com/openshift-assisted/machine-monitor/internal/registry"
	"github.com/openshift-assisted/machine-monitor/internal/status"
	"github.com/openshift-assisted/machine-monitor/pkg/pipeline"
)

var _ = Describe("Store sink", func() {
	It("should write the full state of the changed machine", func() {
		ctrl := gomock.NewController(GinkgoT())
		writer := repomock.NewMockMachineStateWriter(ctrl)

		criteria, err := status.NewCriteria(status.DefaultThresholds())
		Expect(err).NotTo(HaveOccurred())

		reg := registry.New(criteria)
		reg.Register(entity.MachineInfo{ID: "volvo_sweden", Name: "Volvo Group"}, start)

		event, _ := reg.Upsert("volvo_sweden", entity.SensorSnapshot{Readings: entity.Readings{Temperature: entity.Float(42)}}, start)

		writer.EXPECT().WriteMachineState(gomock.Any(), gomock.Cond(func(x any) bool {
			state, ok := x.(entity.MachineState)

			return ok && state.Info.Name == "Volvo Group" && state.HasData && state.Status == entity.StatusHealthy
		})).Return(nil)

		Expect(processing.NewStoreSink(reg, writer).Process(context.Background(), event)).To(Succeed())
	})
})

var _ = Describe("History sink", func() {
	var (
		ctrl    *gomock.Controller
		archive *repomock.MockStatusHistoryWriter
		memory  *history.Memory
		sink    processing.HistorySink
	)

	BeforeEach(func() {
		ctrl = gomock.NewController(GinkgoT())
		archive = repomock.NewMockStatusHistoryWriter(ctrl)
		memory = history.NewMemory(10)
		sink = processing.NewHistorySink(memory, memory, archive)
	})

	It("should record status transitions only", func() {
		archive.EXPECT().WriteStatusTransition(gomock.Any(), gomock.Any()).Return(nil).Times(2)

		ctx := context.Background()
		Expect(sink.Process(ctx, entity.ChangeEvent{MachineID: "m1", Status: entity.StatusHealthy, Timestamp: start})).To(Succeed())
		Expect(sink.Process(ctx, entity.ChangeEvent{MachineID: "m1", Status: entity.StatusHealthy, Timestamp: start.Add(time.Minute)})).To(Succeed())
		Expect(sink.Process(ctx, entity.ChangeEvent{MachineID: "m1", Status: entity.StatusWarning, Timestamp: start.Add(2 * time.Minute)})).To(Succeed())

		transitions, err := memory.GetStatusTransitions(ctx, "m1", time.Time{})
		Expect(err).NotTo(HaveOccurred())
		Expect(transitions).To(HaveLen(2))
		Expect(transitions[0].From).To(Equal(entity.StatusHealthy))
		Expect(transitions[0].To).To(Equal(entity.StatusWarning))
	})

	It("should report archive failures", func() {
		archive.EXPECT().WriteStatusTransition(gomock.Any(), gomock.Any()).Return(pipeline.NewErrRetryableError(errors.New("s3 down")))

		err := sink.Process(context.Background(), entity.ChangeEvent{MachineID: "m1", Status: entity.StatusHealthy, Timestamp: start})
		Expect(err).To(MatchError(pipeline.ErrRetryableError))
	})
})

type flakyArchive struct {
	failures int
	calls    int
	archived []entity.StatusTransition
}

func (f *flakyArchive) WriteStatusTransition(_ context.Context, transition entity.StatusTransition) error {
	f.calls++

	if f.calls <= f.failures {
		return pipeline.NewErrRetryableError(errors.New("s3 down"))
	}

	f.archived = append(f.archived, transition)

	return nil
}

var _ = Describe("History sink retried", func() {
	It("should archive the transition once the archive recovers", func() {
		memory := history.NewMemory(10)
		archive := &flakyArchive{failures: 1}

		sink := pipeline.NewRetryProcessing[entity.ChangeEvent](processing.NewHistorySink(memory, memory, archive), pipeline.RetryConfig{MaxAttempt: 3})

		event := entity.ChangeEvent{MachineID: "m1", Status: entity.StatusCritical, Timestamp: start}
		Expect(sink.Process(context.Background(), event)).To(Succeed())

		Expect(archive.calls).To(Equal(2))
		Expect(archive.archived).To(HaveLen(1))
		Expect(archive.archived[0].To).To(Equal(entity.StatusCritical))

		transitions, err := memory.GetStatusTransitions(context.Background(), "m1", time.Time{})
		Expect(err).NotTo(HaveOccurred())
		Expect(transitions).To(HaveLen(1))
	})

	It("should report the failure when the archive stays down", func() {
		memory := history.NewMemory(10)
		archive := &flakyArchive{failures: 10}

		sink := pipeline.NewRetryProcessing[entity.ChangeEvent](processing.NewHistorySink(memory, memory, archive), pipeline.RetryConfig{MaxAttempt: 3})

		err := sink.Process(context.Background(), entity.ChangeEvent{MachineID: "m1", Status: entity.StatusCritical, Timestamp: start})
		Expect(err).To(MatchError(pipeline.ErrRetryableError))
		Expect(archive.calls).To(Equal(3))
	})
})

var _ = Describe("Main error processing", func() {
	var (
		ctrl   *gomock.Controller
		writer *repomock.MockProcessingErrorWriter
	)

	BeforeEach(func() {
		ctrl = gomock.NewController(GinkgoT())
		writer = repomock.NewMockProcessingErrorWriter(ctrl)
	})

	It("should dead letter errors with an origin", func() {
		pErr := pipeline.NewErrProcessingError(errors.New("bad"), processing.CategoryInvalidSnapshot, nil).
			WithOrigin(pipeline.Origin{Transport: processing.TransportHTTP, Key: "m1"})

		writer.EXPECT().WriteProcessingError(gomock.Any(), pErr).Return(nil)

		Expect(processing.NewMainError(writer).Process(context.Background(), pErr)).To(Succeed())
	})

	It("should only log errors without origin", func() {
		pErr := pipeline.NewErrProcessingError(errors.New("bad"), processing.CategoryInvalidSnapshot, nil)

		Expect(processing.NewMainError(writer).Process(context.Background(), pErr)).To(Succeed())
	})

	It("should only log without dead letter writer", func() {
		pErr := pipeline.NewErrProcessingError(errors.New("bad"), processing.CategoryInvalidSnapshot, nil).
			WithOrigin(pipeline.Origin{Transport: processing.TransportHTTP})

		Expect(processing.NewMainError(nil).Process(context.Background(), pErr)).To(Succeed())
	})
})

var _ = Describe("Counting snapshots", func() {
	It("should count by result", func() {
		registry := prometheus.NewPedanticRegistry()

		inner := pipeline.ProcessingFunc[entity.InboundSnapshot](func(_ context.Context, in entity.InboundSnapshot) error {
			if in.ID == "bad" {
				return pipeline.NewErrProcessingError(errors.New("bad"), processing.CategoryInvalidSnapshot, nil)
			}

			return nil
		})

		p, err := processing.NewCountData(inner, registry, pipeline.MetricsConfig{Namespace: "test"})
		Expect(err).NotTo(HaveOccurred())

		ctx := context.Background()
		Expect(p.Process(ctx, entity.InboundSnapshot{ID: "good"})).To(Succeed())
		Expect(p.Process(ctx, entity.InboundSnapshot{ID: "good"})).To(Succeed())
		Expect(p.Process(ctx, entity.InboundSnapshot{ID: "bad"})).NotTo(Succeed())

		expected := `
# HELP test_snapshot_total Snapshot counter by processing result.
# TYPE test_snapshot_total counter
test_snapshot_total{result="invalid_snapshot"} 1
test_snapshot_total{result="processed"} 2
`
		Expect(testutil.GatherAndCompare(registry, strings.NewReader(expected), "test_snapshot_total")).To(Succeed())
	})
})
