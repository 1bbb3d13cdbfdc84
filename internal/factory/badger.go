package factory

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/go-logr/logr"

	"github.com/openshift-assisted/machine-monitor/internal/common"
	"github.com/openshift-assisted/machine-monitor/internal/config"
	"github.com/openshift-assisted/machine-monitor/internal/log"
)

func CreateBadgerDB(conf config.Badger) (*badger.DB, common.CloseFunc, error) {
	opts := badger.DefaultOptions(filepath.Clean(conf.Path))
	opts.Logger = BadgerLogger{log.Logger()}
	opts = opts.WithValueLogFileSize(1 << 24)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open badger at %s: %w", conf.Path, err)
	}

	shutdown := func(context.Context) error {
		return db.Close()
	}

	return db, shutdown, nil
}

type BadgerLogger struct {
	logger logr.Logger
}

func (b BadgerLogger) Errorf(format string, v ...interface{}) {
	b.logger.Error(nil, b.format(format, v...))
}

func (b BadgerLogger) Warningf(format string, v ...interface{}) {
	b.logger.Info(b.format(format, v...))
}

func (b BadgerLogger) Infof(format string, v ...interface{}) {
	b.logger.V(2).Info(b.format(format, v...))
}

func (b BadgerLogger) Debugf(format string, v ...interface{}) {
	b.logger.V(3).Info(b.format(format, v...))
}

func (b BadgerLogger) format(format string, v ...interface{}) string {
	return strings.TrimSpace(fmt.Sprintf(format, v...))
}
