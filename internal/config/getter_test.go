package config_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openshift-assisted/machine-monitor/internal/config"
)

func TestParseDefaults(t *testing.T) {
	conf, err := config.Parse("")
	require.NoError(t, err)

	assert.Equal(t, config.IngestionModeSimulated, conf.Ingestion.Mode)
	assert.Equal(t, 15*time.Second, conf.Ingestion.Simulation.UpdateInterval)
	assert.Equal(t, 30*time.Minute, conf.Thresholds.OfflineTimeout)
	assert.Equal(t, 5*time.Minute, conf.Thresholds.StaleTimeout)
	assert.InDelta(t, 80.0, conf.Thresholds.Temperature.Critical, 0.001)
	assert.InDelta(t, 2500.0, conf.Thresholds.Speed.CriticalHigh, 0.001)
	assert.Equal(t, config.StoreBackendNone, conf.Store.Backend)
	assert.Equal(t, []string{"http://localhost:3000", "http://127.0.0.1:3000"}, conf.Server.AllowedOrigins)
	assert.Equal(t, 35*time.Minute, conf.Ingestion.Simulation.SilenceInterval)
	require.Len(t, conf.Inventory, 50)
	assert.Equal(t, "Volvo (AS4000)", findMachine(t, conf.Inventory, "volvo_sweden").Name)
	assert.Equal(t, "Mini-System 4000", findMachine(t, conf.Inventory, "ford_usa").SystemType)
	assert.NoError(t, conf.Validate())
}

func findMachine(t *testing.T, inventory []config.Machine, id string) config.Machine {
	t.Helper()

	for _, m := range inventory {
		if m.ID == id {
			return m
		}
	}

	require.Failf(t, "machine not found", "id %s", id)

	return config.Machine{}
}

func TestParseEnvOverride(t *testing.T) {
	t.Setenv("MACHINEMONITOR_INGESTION_MODE", "upstream")
	t.Setenv("MACHINEMONITOR_INGESTION_UPSTREAM_BASEURL", "http://upstream:8080/api")
	t.Setenv("MACHINEMONITOR_THRESHOLDS_OFFLINETIMEOUT", "10m")
	t.Setenv("MACHINEMONITOR_SERVER_APIKEY", "super-secret")

	conf, err := config.Parse("")
	require.NoError(t, err)

	assert.Equal(t, config.IngestionModeUpstream, conf.Ingestion.Mode)
	assert.Equal(t, "http://upstream:8080/api", conf.Ingestion.Upstream.BaseURL)
	assert.Equal(t, 10*time.Minute, conf.Thresholds.OfflineTimeout)
	assert.NoError(t, conf.Validate())

	dump := fmt.Sprintf("%+v", conf.Server)
	assert.NotContains(t, dump, "super-secret", "secrets must not be dumped")
}

func TestParseFile(t *testing.T) {
	content := `
ingestion:
  mode: none
store:
  backend: badger
  badger:
    path: /tmp/monitor
inventory:
  - id: line_1
    name: Line 1
    location: Sweden
    systemType: Mini-System 4000
    latitude: 57.7
    longitude: 14.1
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	conf, err := config.Parse(path)
	require.NoError(t, err)

	assert.Equal(t, config.IngestionModeNone, conf.Ingestion.Mode)
	assert.Equal(t, config.StoreBackendBadger, conf.Store.Backend)
	assert.Equal(t, "/tmp/monitor", conf.Store.Badger.Path)
	require.Len(t, conf.Inventory, 1)
	assert.Equal(t, config.Machine{
		ID:         "line_1",
		Name:       "Line 1",
		Location:   "Sweden",
		SystemType: "Mini-System 4000",
		Latitude:   57.7,
		Longitude:  14.1,
	}, conf.Inventory[0])
}

func TestParseMissingFile(t *testing.T) {
	_, err := config.Parse(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid, err := config.Parse("")
	require.NoError(t, err)

	cases := []struct {
		name   string
		mutate func(c *config.Config)
		err    error
	}{
		{
			name:   "unknown mode",
			mutate: func(c *config.Config) { c.Ingestion.Mode = "replay" },
			err:    config.ErrInvalidMode,
		},
		{
			name:   "upstream without url",
			mutate: func(c *config.Config) { c.Ingestion.Mode = config.IngestionModeUpstream },
			err:    config.ErrMissingUpstream,
		},
		{
			name:   "unknown backend",
			mutate: func(c *config.Config) { c.Store.Backend = "postgres" },
			err:    config.ErrInvalidBackend,
		},
		{
			name:   "zero poll interval",
			mutate: func(c *config.Config) { c.Ingestion.PollInterval = 0 },
			err:    config.ErrInvalidInterval,
		},
		{
			name:   "silence shorter than offline timeout",
			mutate: func(c *config.Config) { c.Ingestion.Simulation.SilenceInterval = 30 * time.Minute },
			err:    config.ErrShortSilence,
		},
		{
			name:   "zero burst with a rate limit",
			mutate: func(c *config.Config) { c.Server.RateLimit.Burst = 0 },
			err:    config.ErrInvalidRateLimit,
		},
		{
			name: "duplicated machine",
			mutate: func(c *config.Config) {
				c.Inventory = []config.Machine{{ID: "a"}, {ID: "a"}}
			},
			err: config.ErrDuplicatedMachine,
		},
	}

	t.Run("zero burst without a rate limit", func(t *testing.T) {
		conf := *valid
		conf.Server.RateLimit = config.RateLimit{}

		assert.NoError(t, conf.Validate())
	})

	for i := range cases {
		c := cases[i]

		t.Run(c.name, func(t *testing.T) {
			conf := *valid
			conf.Inventory = append([]config.Machine(nil), valid.Inventory...)
			c.mutate(&conf)

			assert.ErrorIs(t, conf.Validate(), c.err)
		})
	}
}
