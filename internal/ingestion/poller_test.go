package ingestion_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openshift-assisted/machine-monitor/internal/domain/entity"
	"github.com/openshift-assisted/machine-monitor/internal/ingestion"
	"github.com/openshift-assisted/machine-monitor/internal/processing"
	"github.com/openshift-assisted/machine-monitor/pkg/pipeline"
)

type recorder struct {
	mu sync.Mutex

	processed []string
	errors    []pipeline.ErrProcessingError
	refreshes int
}

func (r *recorder) Process(_ context.Context, in entity.InboundSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.processed = append(r.processed, in.ID)

	if in.ID == "bad" {
		return pipeline.NewErrProcessingError(errors.New("bad snapshot"), processing.CategoryInvalidSnapshot, nil)
	}

	return nil
}

func (r *recorder) Refresh(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.refreshes++

	return nil
}

func (r *recorder) errorProcessing() pipeline.ErrorProcessing {
	return pipeline.ProcessingFunc[pipeline.ErrProcessingError](func(_ context.Context, pErr pipeline.ErrProcessingError) error {
		r.mu.Lock()
		defer r.mu.Unlock()

		r.errors = append(r.errors, pErr)

		return nil
	})
}

func (r *recorder) snapshot() ([]string, []pipeline.ErrProcessingError, int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]string(nil), r.processed...), append([]pipeline.ErrProcessingError(nil), r.errors...), r.refreshes
}

type staticSource struct {
	snapshots []entity.InboundSnapshot
	err       error
}

func (s staticSource) Poll(context.Context) ([]entity.InboundSnapshot, error) {
	return s.snapshots, s.err
}

func TestPoller(t *testing.T) {
	clock := clockwork.NewFakeClockAt(start)
	rec := &recorder{}

	source := staticSource{snapshots: []entity.InboundSnapshot{{ID: "good"}, {ID: "bad"}}}
	poller := ingestion.NewPoller(source, processing.TransportUpstream, rec, rec.errorProcessing(), rec, clock, 5*time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)

	go func() {
		done <- poller.Start(ctx)
	}()

	assert.Eventually(t, func() bool {
		_, _, refreshes := rec.snapshot()

		return refreshes == 1
	}, time.Second, 10*time.Millisecond, "first tick runs immediately")

	clock.BlockUntil(1)
	clock.Advance(5 * time.Second)

	assert.Eventually(t, func() bool {
		_, _, refreshes := rec.snapshot()

		return refreshes == 2
	}, time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)

	processed, errs, _ := rec.snapshot()
	assert.Equal(t, []string{"good", "bad", "good", "bad"}, processed)
	require.Len(t, errs, 2)
	assert.Equal(t, processing.CategoryInvalidSnapshot, errs[0].Category)
	require.NotNil(t, errs[0].Origin)
	assert.Equal(t, processing.TransportUpstream, errs[0].Origin.Transport)
	assert.Equal(t, "bad", errs[0].Origin.Key)
}

func TestPollerSkipsFailedPoll(t *testing.T) {
	clock := clockwork.NewFakeClockAt(start)
	rec := &recorder{}

	source := staticSource{err: pipeline.NewErrRetryableError(errors.New("upstream down"))}
	poller := ingestion.NewPoller(source, processing.TransportUpstream, rec, rec.errorProcessing(), rec, clock, 5*time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)

	go func() {
		done <- poller.Start(ctx)
	}()

	assert.Eventually(t, func() bool {
		_, _, refreshes := rec.snapshot()

		return refreshes == 1
	}, time.Second, 10*time.Millisecond, "machines still age when the source is down")

	cancel()
	require.NoError(t, <-done)

	processed, errs, _ := rec.snapshot()
	assert.Empty(t, processed)
	assert.Empty(t, errs)
}

func TestPollerRoutesRejectedElements(t *testing.T) {
	clock := clockwork.NewFakeClockAt(start)
	rec := &recorder{}

	source := staticSource{
		snapshots: []entity.InboundSnapshot{{ID: "good"}},
		err: ingestion.RejectedSnapshots{
			{Payload: []byte(`{"id": 7}`), Err: errors.New("cannot unmarshal number")},
		},
	}
	poller := ingestion.NewPoller(source, processing.TransportUpstream, rec, rec.errorProcessing(), rec, clock, 5*time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)

	go func() {
		done <- poller.Start(ctx)
	}()

	assert.Eventually(t, func() bool {
		_, _, refreshes := rec.snapshot()

		return refreshes == 1
	}, time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)

	processed, errs, _ := rec.snapshot()
	assert.Equal(t, []string{"good"}, processed, "decoded machines are still processed")
	require.Len(t, errs, 1)
	assert.Equal(t, processing.CategoryInvalidSnapshot, errs[0].Category)
	require.NotNil(t, errs[0].Origin)
	assert.Equal(t, processing.TransportUpstream, errs[0].Origin.Transport)
	assert.Equal(t, []byte(`{"id": 7}`), errs[0].Origin.Payload)
	assert.Equal(t, start, errs[0].Origin.Received)
}

type failingRefresher struct{}

func (failingRefresher) Refresh(context.Context) error {
	return pipeline.NewErrProcessingError(errors.New("sink down"), "sink", nil)
}

func TestSweeper(t *testing.T) {
	clock := clockwork.NewFakeClockAt(start)
	rec := &recorder{}

	sweeper := ingestion.NewSweeper(failingRefresher{}, rec.errorProcessing(), clock, 30*time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)

	go func() {
		done <- sweeper.Start(ctx)
	}()

	clock.BlockUntil(1)
	clock.Advance(30 * time.Second)

	assert.Eventually(t, func() bool {
		_, errs, _ := rec.snapshot()

		return len(errs) == 2
	}, time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)

	_, errs, _ := rec.snapshot()
	assert.Equal(t, "sink", errs[0].Category)
	assert.Nil(t, errs[0].Origin)
}
