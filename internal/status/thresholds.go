package status

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"
)

var ErrInvalidThresholds = errors.New("invalid thresholds")

// Band is an upper bound metric: values strictly above Warning or Critical trigger.
type Band struct {
	Warning  float64 `json:"warning" validate:"gte=0"`
	Critical float64 `json:"critical" validate:"gte=0"`
}

// SpeedBand triggers when speed leaves the [low, high] interval.
type SpeedBand struct {
	WarningLow   float64 `json:"warning_low" validate:"gte=0"`
	WarningHigh  float64 `json:"warning_high" validate:"gte=0"`
	CriticalLow  float64 `json:"critical_low" validate:"gte=0"`
	CriticalHigh float64 `json:"critical_high" validate:"gte=0"`
}

// Thresholds is the single source of truth for classification.
type Thresholds struct {
	Temperature    Band          `json:"temperature"`
	Pressure       Band          `json:"pressure"`
	DiskVolume     Band          `json:"disk_volume"`
	Speed          SpeedBand     `json:"speed"`
	StaleTimeout   time.Duration `json:"-"`
	OfflineTimeout time.Duration `json:"-"`
}

// DefaultThresholds mirrors the criteria used by the installed base.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Temperature: Band{Warning: 60, Critical: 80},
		Pressure:    Band{Warning: 3.0, Critical: 5.0},
		DiskVolume:  Band{Warning: 85, Critical: 95},
		Speed: SpeedBand{
			WarningLow:   500,
			WarningHigh:  2000,
			CriticalLow:  200,
			CriticalHigh: 2500,
		},
		StaleTimeout:   5 * time.Minute,
		OfflineTimeout: 30 * time.Minute,
	}
}

func (t Thresholds) Validate() error {
	for name, band := range map[string]Band{
		"temperature": t.Temperature,
		"pressure":    t.Pressure,
		"disk_volume": t.DiskVolume,
	} {
		if band.Warning > band.Critical {
			return fmt.Errorf("%w: %s warning %v above critical %v", ErrInvalidThresholds, name, band.Warning, band.Critical)
		}
	}

	if t.Speed.CriticalLow > t.Speed.WarningLow || t.Speed.WarningLow > t.Speed.WarningHigh || t.Speed.WarningHigh > t.Speed.CriticalHigh {
		return fmt.Errorf("%w: speed bands must satisfy critical_low <= warning_low <= warning_high <= critical_high", ErrInvalidThresholds)
	}

	if t.StaleTimeout <= 0 || t.OfflineTimeout <= 0 {
		return fmt.Errorf("%w: timeouts must be positive", ErrInvalidThresholds)
	}

	if t.StaleTimeout > t.OfflineTimeout {
		return fmt.Errorf("%w: stale timeout %v above offline timeout %v", ErrInvalidThresholds, t.StaleTimeout, t.OfflineTimeout)
	}

	return nil
}

// Criteria holds the thresholds currently in effect. Safe for concurrent use.
type Criteria struct {
	current atomic.Pointer[Thresholds]
}

func NewCriteria(initial Thresholds) (*Criteria, error) {
	err := initial.Validate()
	if err != nil {
		return nil, err
	}

	ret := &Criteria{}
	ret.current.Store(&initial)

	return ret, nil
}

func (c *Criteria) Get() Thresholds {
	return *c.current.Load()
}

func (c *Criteria) Set(t Thresholds) error {
	err := t.Validate()
	if err != nil {
		return err
	}

	c.current.Store(&t)

	return nil
}
