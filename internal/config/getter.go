package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const prefix = "MACHINEMONITOR"

var (
	ErrInvalidMode       = errors.New("invalid ingestion mode")
	ErrInvalidBackend    = errors.New("invalid store backend")
	ErrInvalidInterval   = errors.New("interval must be positive")
	ErrMissingUpstream   = errors.New("upstream base url is required in upstream mode")
	ErrDuplicatedMachine = errors.New("duplicated machine id in inventory")
	ErrMissingMachineID  = errors.New("collector machine id is required")
	ErrShortSilence      = errors.New("simulated silence must outlast the offline timeout")
	ErrInvalidRateLimit  = errors.New("rate limit burst must be positive")
)

// Parse reads the configuration file given as parameter, environment variables override it.
func Parse(confFile string) (*Config, error) {
	conf := Config{}

	v := viper.New()

	setDefault(v)

	v.SetEnvPrefix(prefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv() // read in environment variables that match

	if len(confFile) > 0 {
		v.SetConfigFile(confFile)

		err := v.ReadInConfig()
		if err != nil {
			return &conf, fmt.Errorf("failed to read config file %v: %w", confFile, err)
		}
	}

	err := v.Unmarshal(&conf)
	if err != nil {
		return &conf, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &conf, nil
}

// Validate checks the settings the serve command depends on.
func (c Config) Validate() error {
	switch c.Ingestion.Mode {
	case IngestionModeNone:
	case IngestionModeSimulated:
		if c.Ingestion.Simulation.SilenceInterval <= c.Thresholds.OfflineTimeout {
			return fmt.Errorf("%w: %v, offline timeout %v", ErrShortSilence, c.Ingestion.Simulation.SilenceInterval, c.Thresholds.OfflineTimeout)
		}
	case IngestionModeUpstream:
		if c.Ingestion.Upstream.BaseURL == "" {
			return ErrMissingUpstream
		}
	default:
		return fmt.Errorf("%w: %q", ErrInvalidMode, c.Ingestion.Mode)
	}

	switch c.Store.Backend {
	case StoreBackendNone, StoreBackendValkey, StoreBackendBadger:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidBackend, c.Store.Backend)
	}

	if c.Ingestion.PollInterval <= 0 || c.Ingestion.SweepInterval <= 0 {
		return ErrInvalidInterval
	}

	if c.Server.RateLimit.RequestsPerSecond > 0 && c.Server.RateLimit.Burst <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidRateLimit, c.Server.RateLimit.Burst)
	}

	seen := make(map[string]struct{}, len(c.Inventory))

	for _, machine := range c.Inventory {
		_, found := seen[machine.ID]
		if found {
			return fmt.Errorf("%w: %s", ErrDuplicatedMachine, machine.ID)
		}

		seen[machine.ID] = struct{}{}
	}

	return nil
}

// Validate checks the settings the collect command depends on.
func (c Collector) Validate() error {
	if c.MachineID == "" {
		return ErrMissingMachineID
	}

	if c.Interval <= 0 {
		return ErrInvalidInterval
	}

	return nil
}

func setDefault(v *viper.Viper) {
	v.SetDefault("gracefulDuration", 10*time.Second)

	v.SetDefault("logs.level", 0)
	v.SetDefault("logs.encoder", EncoderTypeConsole)
	v.SetDefault("metrics.port", 7777)
	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.serviceName", "machine-monitor")

	// Server
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.allowedOrigins", []string{"http://localhost:3000", "http://127.0.0.1:3000"})
	v.SetDefault("server.apiKey", "")
	v.SetDefault("server.rateLimit.requestsPerSecond", 5)
	v.SetDefault("server.rateLimit.burst", 20)
	v.SetDefault("server.hub.sendQueueSize", 64)
	v.SetDefault("server.hub.writeTimeout", 10*time.Second)
	v.SetDefault("server.hub.pongTimeout", 60*time.Second)
	v.SetDefault("server.hub.maxMessageSize", 4096)

	// Ingestion
	v.SetDefault("ingestion.mode", IngestionModeSimulated)
	v.SetDefault("ingestion.pollInterval", 5*time.Second)
	v.SetDefault("ingestion.sweepInterval", 30*time.Second)
	v.SetDefault("ingestion.simulation.updateInterval", 15*time.Second)
	v.SetDefault("ingestion.simulation.recoveryInterval", 30*time.Second)
	v.SetDefault("ingestion.simulation.silenceInterval", 35*time.Minute)
	v.SetDefault("ingestion.simulation.seed", 0)
	v.SetDefault("ingestion.upstream.baseURL", "")
	v.SetDefault("ingestion.upstream.apiKey", "")
	v.SetDefault("ingestion.upstream.timeout", 30*time.Second)
	v.SetDefault("ingestion.upstream.userAgent", "machine-monitor/1.0")
	v.SetDefault("ingestion.kafka.enabled", false)
	v.SetDefault("ingestion.kafka.broker.urls", "localhost:9092")
	v.SetDefault("ingestion.kafka.broker.version", "3.6.0")
	v.SetDefault("ingestion.kafka.broker.creds.mechanism", "SCRAM-SHA-512")
	v.SetDefault("ingestion.kafka.consumer.topic", "machine-snapshots")
	v.SetDefault("ingestion.kafka.consumer.group", "machine-monitor")

	// Classification
	v.SetDefault("thresholds.temperature.warning", 60)
	v.SetDefault("thresholds.temperature.critical", 80)
	v.SetDefault("thresholds.pressure.warning", 3.0)
	v.SetDefault("thresholds.pressure.critical", 5.0)
	v.SetDefault("thresholds.diskVolume.warning", 85)
	v.SetDefault("thresholds.diskVolume.critical", 95)
	v.SetDefault("thresholds.speed.warningLow", 500)
	v.SetDefault("thresholds.speed.warningHigh", 2000)
	v.SetDefault("thresholds.speed.criticalLow", 200)
	v.SetDefault("thresholds.speed.criticalHigh", 2500)
	v.SetDefault("thresholds.staleTimeout", 5*time.Minute)
	v.SetDefault("thresholds.offlineTimeout", 30*time.Minute)

	v.SetDefault("inventory", defaultInventory)

	// Storage and sinks
	v.SetDefault("store.backend", StoreBackendNone)
	v.SetDefault("store.expiration", 7*24*time.Hour)
	v.SetDefault("store.valkey.url", "localhost:6379")
	v.SetDefault("store.valkey.key", "machine-monitor:machines")
	v.SetDefault("store.badger.path", "./data/badger")
	v.SetDefault("nats.url", "")
	v.SetDefault("nats.subject", "machines.events")
	v.SetDefault("deadLetterQueue.bucket", "")
	v.SetDefault("deadLetterQueue.keyPrefix", "dlq")
	v.SetDefault("deadLetterQueue.region", "us-east-1")
	v.SetDefault("history.size", 100)
	v.SetDefault("history.archive.bucket", "")
	v.SetDefault("history.archive.keyPrefix", "history")
	v.SetDefault("history.archive.region", "us-east-1")

	// Collector
	v.SetDefault("collector.serverURL", "http://localhost:8000")
	v.SetDefault("collector.interval", 30*time.Second)
	v.SetDefault("collector.timeout", 30*time.Second)
	v.SetDefault("collector.attempts", 3)
	v.SetDefault("collector.retryDelay", time.Second)
	v.SetDefault("collector.diskPath", "/")
}
