package ingestion

import (
	"context"
	"errors"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/openshift-assisted/machine-monitor/internal/common"
	"github.com/openshift-assisted/machine-monitor/internal/domain/entity"
	"github.com/openshift-assisted/machine-monitor/internal/log"
	"github.com/openshift-assisted/machine-monitor/internal/processing"
	"github.com/openshift-assisted/machine-monitor/pkg/pipeline"
)

// Poller feeds the snapshots of a source through the processing on every tick,
// then applies the elapsed time rules.
// A failed poll skips the tick, the next one retries.
type Poller struct {
	source    Source
	transport string

	processing      pipeline.Processing[entity.InboundSnapshot]
	errorProcessing pipeline.ErrorProcessing
	refresher       Refresher

	clock    clockwork.Clock
	interval time.Duration
}

func NewPoller(
	source Source,
	transport string,
	processing pipeline.Processing[entity.InboundSnapshot],
	errorProcessing pipeline.ErrorProcessing,
	refresher Refresher,
	clock clockwork.Clock,
	interval time.Duration,
) Poller {
	return Poller{
		source:          source,
		transport:       transport,
		processing:      processing,
		errorProcessing: errorProcessing,
		refresher:       refresher,
		clock:           clock,
		interval:        interval,
	}
}

func (p Poller) Start(ctx context.Context) error {
	log.Logger().V(1).Info("Starting poller", "transport", p.transport, "interval", p.interval)

	every(ctx, p.clock, p.interval, p.tick)

	log.Logger().V(1).Info("Poller stopped", "transport", p.transport)

	return nil
}

func (p Poller) tick(ctx context.Context) {
	logger := log.Logger()

	snapshots, err := p.source.Poll(ctx)

	rejected := RejectedSnapshots{}

	switch {
	case errors.As(err, &rejected):
		p.reject(ctx, rejected)
	case err != nil:
		logger.Error(err, "Failed to poll source, skipping tick", "transport", p.transport, "retryable", errors.Is(err, pipeline.ErrRetryableError))
	}

	logger.V(2).Info("Polled source", "transport", p.transport, "snapshots", len(snapshots))

	for _, snapshot := range snapshots {
		err := p.processing.Process(ctx, snapshot)
		if err != nil {
			origin := processing.Origin(p.transport, snapshot, p.clock)
			processError(ctx, p.errorProcessing, pipeline.AsProcessingError(err).WithOrigin(origin))
		}
	}

	refresh(ctx, p.refresher, p.errorProcessing)
}

// reject routes undecodable elements to the error pipeline, the rest of the poll is processed.
func (p Poller) reject(ctx context.Context, rejected RejectedSnapshots) {
	for _, r := range rejected {
		origin := pipeline.Origin{
			Transport: p.transport,
			Payload:   r.Payload,
			Received:  p.clock.Now().UTC(),
		}

		pErr := common.NewErrProcessingError(r.Err, processing.CategoryInvalidSnapshot, nil, "invalid snapshot from %s", p.transport)
		processError(ctx, p.errorProcessing, pErr.WithOrigin(origin))
	}
}

// Sweeper applies the elapsed time rules when no poller runs.
type Sweeper struct {
	refresher       Refresher
	errorProcessing pipeline.ErrorProcessing

	clock    clockwork.Clock
	interval time.Duration
}

func NewSweeper(refresher Refresher, errorProcessing pipeline.ErrorProcessing, clock clockwork.Clock, interval time.Duration) Sweeper {
	return Sweeper{
		refresher:       refresher,
		errorProcessing: errorProcessing,
		clock:           clock,
		interval:        interval,
	}
}

func (s Sweeper) Start(ctx context.Context) error {
	log.Logger().V(1).Info("Starting sweeper", "interval", s.interval)

	every(ctx, s.clock, s.interval, func(ctx context.Context) {
		refresh(ctx, s.refresher, s.errorProcessing)
	})

	log.Logger().V(1).Info("Sweeper stopped")

	return nil
}

// every runs fn immediately, then on each tick until ctx is done.
func every(ctx context.Context, clock clockwork.Clock, interval time.Duration, fn func(context.Context)) {
	ticker := clock.NewTicker(interval)
	defer ticker.Stop()

	fn(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			fn(ctx)
		}
	}
}

func refresh(ctx context.Context, refresher Refresher, errorProcessing pipeline.ErrorProcessing) {
	err := refresher.Refresh(ctx)
	if err != nil {
		processError(ctx, errorProcessing, pipeline.AsProcessingError(err))
	}
}

func processError(ctx context.Context, errorProcessing pipeline.ErrorProcessing, pErr pipeline.ErrProcessingError) {
	if ctx.Err() != nil {
		log.Logger().V(1).Info("Not processing error, context has been cancelled")

		return
	}

	err := errorProcessing.Process(ctx, pErr)
	if err != nil {
		log.Logger().Error(err, "Error pipeline failed", "category", pErr.Category, "additionalInputs", pErr.AdditionalInputs)
	}
}
