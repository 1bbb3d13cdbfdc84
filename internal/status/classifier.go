// Package status derives the health status of a machine from its latest readings.
package status

import (
	"time"

	"github.com/openshift-assisted/machine-monitor/internal/domain/entity"
)

// Classify is pure: the same inputs always give the same status.
//
// hasData tells whether the machine ever reported; elapsed is the time since its last contact
// (or since registration when it never reported).
func Classify(snapshot entity.SensorSnapshot, hasData bool, elapsed time.Duration, t Thresholds) entity.Status {
	switch {
	case elapsed > t.OfflineTimeout:
		return entity.StatusNotAccessible
	case !hasData && elapsed > t.StaleTimeout:
		return entity.StatusNotConnected
	case critical(snapshot.Readings, t):
		return entity.StatusCritical
	case warning(snapshot.Readings, t):
		return entity.StatusWarning
	default:
		return entity.StatusHealthy
	}
}

func critical(r entity.Readings, t Thresholds) bool {
	return above(r.Temperature, t.Temperature.Critical) ||
		above(r.Pressure, t.Pressure.Critical) ||
		above(r.DiskVolume, t.DiskVolume.Critical) ||
		outside(r.Speed, t.Speed.CriticalLow, t.Speed.CriticalHigh)
}

func warning(r entity.Readings, t Thresholds) bool {
	return above(r.Temperature, t.Temperature.Warning) ||
		above(r.Pressure, t.Pressure.Warning) ||
		above(r.DiskVolume, t.DiskVolume.Warning) ||
		outside(r.Speed, t.Speed.WarningLow, t.Speed.WarningHigh)
}

func above(value *float64, limit float64) bool {
	return value != nil && *value > limit
}

func outside(value *float64, low, high float64) bool {
	return value != nil && (*value < low || *value > high)
}
