package collector

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/openshift-assisted/machine-monitor/internal/log"
)

type Agent struct {
	reader   Reader
	reporter Reporter
	clock    clockwork.Clock
	interval time.Duration
}

func NewAgent(reader Reader, reporter Reporter, clock clockwork.Clock, interval time.Duration) Agent {
	return Agent{
		reader:   reader,
		reporter: reporter,
		clock:    clock,
		interval: interval,
	}
}

// Start reports once, then every interval until ctx is done. A failed cycle is logged and skipped.
func (a Agent) Start(ctx context.Context) error {
	ticker := a.clock.NewTicker(a.interval)
	defer ticker.Stop()

	a.collect(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Logger().V(1).Info("Collector stopped")

			return nil
		case <-ticker.Chan():
			a.collect(ctx)
		}
	}
}

func (a Agent) collect(ctx context.Context) {
	logger := log.Logger()

	data, err := a.reader.Read(ctx)
	if err != nil {
		logger.Error(err, "Failed to read host")

		return
	}

	err = a.reporter.Report(ctx, data)
	if err != nil {
		logger.Error(err, "Failed to report snapshot")

		return
	}

	logger.V(2).Info("Snapshot reported", "diskVolume", data["disk_volume"])
}
