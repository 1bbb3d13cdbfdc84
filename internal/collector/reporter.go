package collector

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/avast/retry-go/v4"
	"github.com/jonboulle/clockwork"

	"github.com/openshift-assisted/machine-monitor/internal/config"
	"github.com/openshift-assisted/machine-monitor/internal/domain/entity"
	"github.com/openshift-assisted/machine-monitor/internal/log"
	"github.com/openshift-assisted/machine-monitor/pkg/pipeline"
)

var ErrRejected = errors.New("snapshot rejected by server")

// Reporter pushes snapshots to the status endpoint of the server.
type Reporter struct {
	client *http.Client
	clock  clockwork.Clock
	conf   config.Collector
}

func NewReporter(conf config.Collector, clock clockwork.Clock) Reporter {
	return Reporter{
		client: &http.Client{Timeout: conf.Timeout},
		clock:  clock,
		conf:   conf,
	}
}

type pushBody struct {
	Data      map[string]any `json:"data"`
	Timestamp string         `json:"timestamp"`
}

// Report sends data, retrying transport failures, server errors and throttling.
func (r Reporter) Report(ctx context.Context, data map[string]any) error {
	body, err := json.Marshal(pushBody{
		Data:      data,
		Timestamp: entity.FormatTimestamp(r.clock.Now()),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	endpoint := fmt.Sprintf("%s/api/machines/%s/status", strings.TrimRight(r.conf.ServerURL, "/"), url.PathEscape(r.conf.MachineID))

	attempts := r.conf.Attempts
	if attempts == 0 {
		attempts = 1
	}

	return retry.Do(
		func() error {
			return r.post(ctx, endpoint, body)
		},
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.RetryIf(func(err error) bool {
			return errors.Is(err, pipeline.ErrRetryableError)
		}),
		retry.OnRetry(func(n uint, err error) {
			log.Logger().V(1).Info("Retrying report", "attempt", n+1, "reason", err.Error())
		}),
		retry.Delay(r.conf.RetryDelay),
		retry.LastErrorOnly(true),
	)
}

func (r Reporter) post(ctx context.Context, endpoint string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "machine-monitor-collector/"+r.conf.MachineID)

	if r.conf.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+string(r.conf.APIKey))
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return pipeline.NewErrRetryableError(fmt.Errorf("failed to reach server: %w", err))
	}
	defer resp.Body.Close()

	_, _ = io.Copy(io.Discard, resp.Body)

	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusAccepted:
		return nil
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError:
		return pipeline.NewErrRetryableError(fmt.Errorf("server answered %d", resp.StatusCode))
	default:
		return fmt.Errorf("%w: status %d", ErrRejected, resp.StatusCode)
	}
}
