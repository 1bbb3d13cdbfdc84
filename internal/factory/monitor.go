package factory

import (
	"context"
	"fmt"

	"github.com/jonboulle/clockwork"

	"github.com/openshift-assisted/machine-monitor/internal/common"
	"github.com/openshift-assisted/machine-monitor/internal/config"
	"github.com/openshift-assisted/machine-monitor/internal/domain/entity"
	"github.com/openshift-assisted/machine-monitor/internal/domain/repo"
	"github.com/openshift-assisted/machine-monitor/internal/domain/repo/machine"
	"github.com/openshift-assisted/machine-monitor/internal/ingestion"
	"github.com/openshift-assisted/machine-monitor/internal/processing"
	"github.com/openshift-assisted/machine-monitor/internal/status"
)

func CreateCriteria(conf config.Thresholds) (*status.Criteria, error) {
	ret, err := status.NewCriteria(status.Thresholds{
		Temperature: status.Band{Warning: conf.Temperature.Warning, Critical: conf.Temperature.Critical},
		Pressure:    status.Band{Warning: conf.Pressure.Warning, Critical: conf.Pressure.Critical},
		DiskVolume:  status.Band{Warning: conf.DiskVolume.Warning, Critical: conf.DiskVolume.Critical},
		Speed: status.SpeedBand{
			WarningLow:   conf.Speed.WarningLow,
			WarningHigh:  conf.Speed.WarningHigh,
			CriticalLow:  conf.Speed.CriticalLow,
			CriticalHigh: conf.Speed.CriticalHigh,
		},
		StaleTimeout:   conf.StaleTimeout,
		OfflineTimeout: conf.OfflineTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create criteria: %w", err)
	}

	return ret, nil
}

func CreateInventory(conf []config.Machine) []entity.MachineInfo {
	ret := make([]entity.MachineInfo, 0, len(conf))

	for _, m := range conf {
		ret = append(ret, entity.MachineInfo{
			ID:         m.ID,
			Name:       m.Name,
			Location:   m.Location,
			SystemType: m.SystemType,
			Latitude:   m.Latitude,
			Longitude:  m.Longitude,
		})
	}

	return ret
}

// CreateMachineStore returns a nil repository when no backend is configured.
func CreateMachineStore(ctx context.Context, conf config.Store) (repo.MachineState, common.CloseFunc, error) {
	switch conf.Backend {
	case config.StoreBackendValkey:
		client, closeFunc, err := CreateValkeyClient(ctx, conf.Valkey)
		if err != nil {
			return nil, nil, err
		}

		return machine.NewValkeyRepo(client, conf.Valkey.Key, conf.Expiration), closeFunc, nil
	case config.StoreBackendBadger:
		db, closeFunc, err := CreateBadgerDB(conf.Badger)
		if err != nil {
			return nil, nil, err
		}

		return machine.NewBadgerRepo(db, conf.Expiration), closeFunc, nil
	case config.StoreBackendNone, "":
		return nil, nil, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", config.ErrInvalidBackend, conf.Backend)
	}
}

// CreateSource returns the polled source of the ingestion mode and its transport name.
// The none mode has no source.
func CreateSource(conf config.Ingestion, ids []string, clock clockwork.Clock) (ingestion.Source, string, error) {
	switch conf.Mode {
	case config.IngestionModeSimulated:
		rnd := ingestion.NewRand(conf.Simulation.Seed, clock)

		return ingestion.NewSimulator(ids, conf.Simulation, clock, rnd), processing.TransportSimulator, nil
	case config.IngestionModeUpstream:
		return ingestion.NewUpstreamSource(conf.Upstream), processing.TransportUpstream, nil
	case config.IngestionModeNone:
		return nil, "", nil
	default:
		return nil, "", fmt.Errorf("%w: %q", config.ErrInvalidMode, conf.Mode)
	}
}
