package ingestion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/openshift-assisted/machine-monitor/internal/config"
	"github.com/openshift-assisted/machine-monitor/internal/domain/entity"
	"github.com/openshift-assisted/machine-monitor/pkg/pipeline"
)

const maxUpstreamBody = 16 << 20

var ErrUnexpectedStatus = errors.New("unexpected upstream status")

// UpstreamSource reads the latest snapshots from the machines endpoint of an upstream API.
type UpstreamSource struct {
	client *http.Client
	conf   config.Upstream
}

func NewUpstreamSource(conf config.Upstream) UpstreamSource {
	return UpstreamSource{
		client: &http.Client{Timeout: conf.Timeout},
		conf:   conf,
	}
}

type machinesEnvelope struct {
	Machines []json.RawMessage `json:"machines"`
}

func (u UpstreamSource) Poll(ctx context.Context) ([]entity.InboundSnapshot, error) {
	url := strings.TrimRight(u.conf.BaseURL, "/") + "/machines"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create upstream request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	if u.conf.UserAgent != "" {
		req.Header.Set("User-Agent", u.conf.UserAgent)
	}

	if u.conf.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+string(u.conf.APIKey))
	}

	resp, err := u.client.Do(req)
	if err != nil {
		return nil, pipeline.NewErrRetryableError(fmt.Errorf("failed to reach upstream: %w", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxUpstreamBody))
	if err != nil {
		return nil, pipeline.NewErrRetryableError(fmt.Errorf("failed to read upstream response: %w", err))
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, pipeline.NewErrRetryableError(fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode))
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	return decodeMachines(body)
}

// decodeMachines accepts a bare array or an object wrapping it under "machines".
// Elements that cannot be decoded are returned as a RejectedSnapshots error next to the decoded ones.
func decodeMachines(body []byte) ([]entity.InboundSnapshot, error) {
	trimmed := bytes.TrimSpace(body)

	elements := make([]json.RawMessage, 0)

	if bytes.HasPrefix(trimmed, []byte("[")) {
		err := json.Unmarshal(trimmed, &elements)
		if err != nil {
			return nil, fmt.Errorf("failed to decode upstream machines: %w", err)
		}
	} else {
		envelope := machinesEnvelope{}

		err := json.Unmarshal(trimmed, &envelope)
		if err != nil {
			return nil, fmt.Errorf("failed to decode upstream machines: %w", err)
		}

		elements = envelope.Machines
	}

	ret := make([]entity.InboundSnapshot, 0, len(elements))
	rejected := make(RejectedSnapshots, 0)

	for _, element := range elements {
		snapshot := entity.InboundSnapshot{}

		err := json.Unmarshal(element, &snapshot)
		if err != nil {
			rejected = append(rejected, RejectedSnapshot{Payload: element, Err: err})

			continue
		}

		ret = append(ret, snapshot)
	}

	if len(rejected) > 0 {
		return ret, rejected
	}

	return ret, nil
}
