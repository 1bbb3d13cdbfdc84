package changeevent

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/nats-io/nats.go"

	"github.com/openshift-assisted/machine-monitor/internal/common"
	"github.com/openshift-assisted/machine-monitor/internal/domain/entity"
)

const categoryNatsError = "nats_publish"

var errNotConnected = errors.New("nats not connected")

// NatsPublisher publishes change events in their outbound JSON shape.
type NatsPublisher struct {
	nc      *nats.Conn
	subject string
}

func NewNatsPublisher(nc *nats.Conn, subject string) NatsPublisher {
	return NatsPublisher{
		nc:      nc,
		subject: subject,
	}
}

func (p NatsPublisher) PublishChangeEvent(_ context.Context, event entity.ChangeEvent) error {
	if p.nc == nil || p.nc.IsClosed() {
		return common.NewErrProcessingError(errNotConnected, categoryNatsError, nil, "failed to publish change of %s", event.MachineID)
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return common.NewErrProcessingError(err, categoryNatsError, nil, "failed to marshal change of %s", event.MachineID)
	}

	msg := nats.NewMsg(p.subject)
	msg.Data = payload
	msg.Header.Set("Machine-Id", event.MachineID)
	msg.Header.Set("Machine-Status", string(event.Status))

	err = p.nc.PublishMsg(msg)
	if err != nil {
		return common.NewRetryableErrProcessingError(err, categoryNatsError, nil, "failed to publish change of %s", event.MachineID)
	}

	return nil
}
