package factory

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/openshift-assisted/machine-monitor/internal/common"
	"github.com/openshift-assisted/machine-monitor/internal/config"
	"github.com/openshift-assisted/machine-monitor/internal/log"
)

func CreateNatsConnection(conf config.Nats) (*nats.Conn, common.CloseFunc, error) {
	logger := log.Logger()

	opts := []nats.Option{
		nats.Name("machine-monitor"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Error(err, "Nats disconnected")
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("Nats reconnected", "url", nc.ConnectedUrl())
		}),
	}

	nc, err := nats.Connect(conf.URL, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to nats: %w", err)
	}

	shutdown := func(context.Context) error {
		err := nc.Drain()
		if err != nil {
			nc.Close()

			return fmt.Errorf("failed to drain nats connection: %w", err)
		}

		return nil
	}

	return nc, shutdown, nil
}
