package processing

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/openshift-assisted/machine-monitor/internal/common"
	"github.com/openshift-assisted/machine-monitor/internal/domain/entity"
)

const CategoryInvalidSnapshot = "invalid_snapshot"

var errOutOfRange = errors.New("reading out of range")

// Normalized is an inbound snapshot once validated and converted to the canonical shape.
type Normalized struct {
	MachineID      string
	ReportedStatus entity.Status
	Snapshot       entity.SensorSnapshot
	SampledAt      time.Time
}

type readingRange struct {
	field    string
	min, max float64
	value    func(entity.Readings) *float64
}

var plausibleRanges = []readingRange{
	{field: entity.FieldTemperature, min: -273.15, max: 10_000, value: func(r entity.Readings) *float64 { return r.Temperature }},
	{field: entity.FieldPressure, min: 0, max: 10_000, value: func(r entity.Readings) *float64 { return r.Pressure }},
	{field: entity.FieldSpeed, min: 0, max: 1_000_000, value: func(r entity.Readings) *float64 { return r.Speed }},
	{field: entity.FieldDiskVolume, min: 0, max: 100, value: func(r entity.Readings) *float64 { return r.DiskVolume }},
}

// Normalizer rejects malformed inbound snapshots before they reach the registry.
type Normalizer struct {
	validate *validator.Validate
}

func NewNormalizer() (Normalizer, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	err := validate.RegisterValidation("machine_status", func(fl validator.FieldLevel) bool {
		_, err := entity.ParseStatus(fl.Field().String())

		return err == nil
	})
	if err != nil {
		return Normalizer{}, fmt.Errorf("failed to register machine_status validation: %w", err)
	}

	err = validate.RegisterValidation("iso8601", func(fl validator.FieldLevel) bool {
		_, err := entity.ParseTimestamp(fl.Field().String())

		return err == nil
	})
	if err != nil {
		return Normalizer{}, fmt.Errorf("failed to register iso8601 validation: %w", err)
	}

	return Normalizer{validate: validate}, nil
}

// Validator exposes the configured validator so that other boundaries share the same rules.
func (n Normalizer) Validator() *validator.Validate {
	return n.validate
}

func (n Normalizer) Normalize(in entity.InboundSnapshot) (Normalized, error) {
	err := n.validate.Struct(in)
	if err != nil {
		return Normalized{}, common.NewErrProcessingError(err, CategoryInvalidSnapshot, nil, "invalid snapshot for %q", in.ID)
	}

	ret := Normalized{
		MachineID: in.ID,
	}

	if in.Status != "" {
		// Already validated
		ret.ReportedStatus, _ = entity.ParseStatus(in.Status)
	}

	ret.SampledAt, _ = entity.ParseTimestamp(in.Timestamp)

	ret.Snapshot, err = entity.NewSnapshot(in.Data)
	if err != nil {
		return Normalized{}, common.NewErrProcessingError(err, CategoryInvalidSnapshot, nil, "invalid data for %s", in.ID)
	}

	for _, r := range plausibleRanges {
		value := r.value(ret.Snapshot.Readings)
		if value == nil {
			continue
		}

		if *value < r.min || *value > r.max {
			err := fmt.Errorf("%w: %s=%v not in [%v, %v]", errOutOfRange, r.field, *value, r.min, r.max)

			return Normalized{}, common.NewErrProcessingError(err, CategoryInvalidSnapshot, nil, "invalid data for %s", in.ID)
		}
	}

	return ret, nil
}
