package entity

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"time"
)

// Known sensor fields of the data object.
const (
	FieldTemperature = "temperature"
	FieldPressure    = "pressure"
	FieldSpeed       = "speed"
	FieldDiskVolume  = "disk_volume"
)

var ErrInvalidReading = errors.New("invalid reading")

// Readings holds the numeric sensor values. A nil value means no signal.
type Readings struct {
	Temperature *float64
	Pressure    *float64
	Speed       *float64
	DiskVolume  *float64
}

// Empty reports whether no reading is set.
func (r Readings) Empty() bool {
	return r.Temperature == nil && r.Pressure == nil && r.Speed == nil && r.DiskVolume == nil
}

// SensorSnapshot is one point in time bundle of readings plus opaque auxiliary fields.
type SensorSnapshot struct {
	Readings
	Aux map[string]any
}

// NewSnapshot splits a data object into known readings and auxiliary fields.
// Known fields must be JSON numbers (or null).
func NewSnapshot(data map[string]any) (SensorSnapshot, error) {
	ret := SensorSnapshot{}

	for key, value := range data {
		var target **float64

		switch key {
		case FieldTemperature:
			target = &ret.Temperature
		case FieldPressure:
			target = &ret.Pressure
		case FieldSpeed:
			target = &ret.Speed
		case FieldDiskVolume:
			target = &ret.DiskVolume
		default:
			if ret.Aux == nil {
				ret.Aux = make(map[string]any)
			}

			ret.Aux[key] = value

			continue
		}

		reading, err := toReading(value)
		if err != nil {
			return SensorSnapshot{}, fmt.Errorf("%w: %s: %w", ErrInvalidReading, key, err)
		}

		*target = reading
	}

	return ret, nil
}

func toReading(value any) (*float64, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case float64:
		return &v, nil
	case float32:
		f := float64(v)
		return &f, nil
	case int:
		f := float64(v)
		return &f, nil
	case int64:
		f := float64(v)
		return &f, nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return nil, err
		}

		return &f, nil
	default:
		return nil, fmt.Errorf("expected a number, got %T", value)
	}
}

// Data merges readings and auxiliary fields back into a data object.
func (s SensorSnapshot) Data() map[string]any {
	ret := make(map[string]any, len(s.Aux)+4)

	maps.Copy(ret, s.Aux)

	setReading(ret, FieldTemperature, s.Temperature)
	setReading(ret, FieldPressure, s.Pressure)
	setReading(ret, FieldSpeed, s.Speed)
	setReading(ret, FieldDiskVolume, s.DiskVolume)

	return ret
}

func setReading(data map[string]any, key string, value *float64) {
	if value == nil {
		return
	}

	data[key] = *value
}

// Clone returns a copy that shares nothing mutable with s at the first level.
func (s SensorSnapshot) Clone() SensorSnapshot {
	ret := SensorSnapshot{
		Readings: Readings{
			Temperature: clonePtr(s.Temperature),
			Pressure:    clonePtr(s.Pressure),
			Speed:       clonePtr(s.Speed),
			DiskVolume:  clonePtr(s.DiskVolume),
		},
	}

	if s.Aux != nil {
		ret.Aux = maps.Clone(s.Aux)
	}

	return ret
}

func clonePtr(v *float64) *float64 {
	if v == nil {
		return nil
	}

	ret := *v

	return &ret
}

func (s SensorSnapshot) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Data())
}

func (s *SensorSnapshot) UnmarshalJSON(b []byte) error {
	data := map[string]any{}

	err := json.Unmarshal(b, &data)
	if err != nil {
		return err
	}

	snapshot, err := NewSnapshot(data)
	if err != nil {
		return err
	}

	*s = snapshot

	return nil
}

// Float returns a pointer to v, handy to build readings.
func Float(v float64) *float64 {
	return &v
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// ParseTimestamp parses an ISO-8601 timestamp. Timestamps without zone are read as UTC.
func ParseTimestamp(value string) (time.Time, error) {
	var lastErr error

	for _, layout := range timestampLayouts {
		ts, err := time.Parse(layout, value)
		if err == nil {
			return ts.UTC(), nil
		}

		lastErr = err
	}

	return time.Time{}, fmt.Errorf("failed to parse timestamp %q: %w", value, lastErr)
}

// FormatTimestamp formats t the way outbound messages carry it.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
