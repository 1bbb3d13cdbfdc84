package processing_test

import (
	"context"
	"errors"
	"time"

	"github.com/jonboulle/clockwork"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/openshift-assisted/machine-monitor/internal/domain/entity"
	"github.com/openshift-assisted/machine-monitor/internal/processing"
	"github.com/openshift-assisted/machine-monitor/internal/registry"
	"github.com/openshift-assisted/machine-monitor/internal/status"
	"github.com/openshift-assisted/machine-monitor/pkg/pipeline"
	"github.com/openshift-assisted/machine-monitor/pkg/pipeline/mock"
)

var start = time.Date(2025, 3, 3, 12, 0, 0, 0, time.UTC)

func hasStatus(id string, s entity.Status) gomock.Matcher {
	return gomock.Cond(func(x any) bool {
		event, ok := x.(entity.ChangeEvent)

		return ok && event.MachineID == id && event.Status == s
	})
}

var _ = Describe("Processing inbound snapshots", func() {
	var (
		ctx            context.Context
		ctrl           *gomock.Controller
		sink           *mock.MockProcessing[entity.ChangeEvent]
		clock          clockwork.FakeClock
		reg            *registry.Registry
		mainProcessing processing.Main
	)

	BeforeEach(func() {
		ctx = context.Background()
		ctrl = gomock.NewController(GinkgoT())
		sink = mock.NewMockProcessing[entity.ChangeEvent](ctrl)
		clock = clockwork.NewFakeClockAt(start)

		criteria, err := status.NewCriteria(status.DefaultThresholds())
		Expect(err).NotTo(HaveOccurred())

		reg = registry.New(criteria)

		normalizer, err := processing.NewNormalizer()
		Expect(err).NotTo(HaveOccurred())

		mainProcessing = processing.NewMain(normalizer, reg, sink, clock)
	})

	When("a new machine reports a healthy snapshot", func() {
		BeforeEach(func() {
			sink.EXPECT().Process(gomock.Any(), hasStatus("volvo_sweden", entity.StatusHealthy)).Return(nil).Times(1)

			Expect(mainProcessing.Process(ctx, inbound())).To(Succeed())
		})

		It("should store it", func() {
			state, found := reg.Get("volvo_sweden")
			Expect(found).To(BeTrue())
			Expect(state.Status).To(Equal(entity.StatusHealthy))
			Expect(state.LastSeen).To(Equal(start))
		})

		It("should not dispatch an identical snapshot", func() {
			clock.Advance(time.Second)

			Expect(mainProcessing.Process(ctx, inbound())).To(Succeed())
		})

		It("should dispatch a critical snapshot", func() {
			in := inbound()
			in.Data["temperature"] = 85.0
			in.Status = "error"

			sink.EXPECT().Process(gomock.Any(), hasStatus("volvo_sweden", entity.StatusCritical)).Return(nil).Times(1)

			Expect(mainProcessing.Process(ctx, in)).To(Succeed())
		})

		It("should age the machine once it stops reporting", func() {
			clock.Advance(40 * time.Minute)

			sink.EXPECT().Process(gomock.Any(), hasStatus("volvo_sweden", entity.StatusNotAccessible)).Return(nil).Times(1)

			Expect(mainProcessing.Refresh(ctx)).To(Succeed())
			Expect(mainProcessing.Refresh(ctx)).To(Succeed())
		})
	})

	When("a machine keeps being listed with an old sample", func() {
		It("should be last seen at the sample time and go offline", func() {
			sink.EXPECT().Process(gomock.Any(), hasStatus("volvo_sweden", entity.StatusHealthy)).Return(nil).Times(1)
			Expect(mainProcessing.Process(ctx, inbound())).To(Succeed())

			clock.Advance(20 * time.Minute)
			Expect(mainProcessing.Process(ctx, inbound())).To(Succeed())

			state, _ := reg.Get("volvo_sweden")
			Expect(state.LastSeen).To(Equal(start))

			clock.Advance(20 * time.Minute)
			sink.EXPECT().Process(gomock.Any(), hasStatus("volvo_sweden", entity.StatusNotAccessible)).Return(nil).Times(1)
			Expect(mainProcessing.Process(ctx, inbound())).To(Succeed())
			Expect(mainProcessing.Refresh(ctx)).To(Succeed())
		})
	})

	When("the snapshot is malformed", func() {
		It("should reject it before the registry", func() {
			in := inbound()
			in.Data["disk_volume"] = 250.0

			err := mainProcessing.Process(ctx, in)
			Expect(err).To(HaveOccurred())
			Expect(pipeline.AsProcessingError(err).Category).To(Equal(processing.CategoryInvalidSnapshot))

			_, found := reg.Get("volvo_sweden")
			Expect(found).To(BeFalse())
		})
	})

	When("the sink fails", func() {
		It("should report a sink error and keep the registry updated", func() {
			sink.EXPECT().Process(gomock.Any(), gomock.Any()).Return(pipeline.NewErrRetryableError(errors.New("valkey down")))

			err := mainProcessing.Process(ctx, inbound())
			Expect(err).To(MatchError(pipeline.ErrRetryableError))
			Expect(pipeline.AsProcessingError(err).Category).To(Equal("sink"))

			_, found := reg.Get("volvo_sweden")
			Expect(found).To(BeTrue())
		})
	})

	When("several machines age at once", func() {
		It("should dispatch every event even if one fails", func() {
			for _, id := range []string{"a", "b", "c"} {
				in := inbound()
				in.ID = id

				sink.EXPECT().Process(gomock.Any(), hasStatus(id, entity.StatusHealthy)).Return(nil)
				Expect(mainProcessing.Process(ctx, in)).To(Succeed())
			}

			clock.Advance(time.Hour)

			sink.EXPECT().Process(gomock.Any(), hasStatus("a", entity.StatusNotAccessible)).Return(errors.New("boom"))
			sink.EXPECT().Process(gomock.Any(), hasStatus("b", entity.StatusNotAccessible)).Return(nil)
			sink.EXPECT().Process(gomock.Any(), hasStatus("c", entity.StatusNotAccessible)).Return(nil)

			err := mainProcessing.Refresh(ctx)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("failed to dispatch change of a"))
		})
	})
})

var _ = Describe("Building error origins", func() {
	It("should keep the raw payload and the machine id", func() {
		clock := clockwork.NewFakeClockAt(start)

		origin := processing.Origin(processing.TransportHTTP, inbound(), clock)
		Expect(origin.Transport).To(Equal("http"))
		Expect(origin.Key).To(Equal("volvo_sweden"))
		Expect(origin.Received).To(Equal(start))
		Expect(string(origin.Payload)).To(ContainSubstring(`"id":"volvo_sweden"`))
	})
})
