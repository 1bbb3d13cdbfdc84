package pipeline

import (
	"errors"
	"fmt"
	"time"
)

// ErrProcessingError

type ErrProcessingError struct {
	error
	Category         string
	Origin           *Origin
	AdditionalInputs []Input
}

// Origin describes where the failing payload came from.
type Origin struct {
	Transport string
	Key       string
	Payload   []byte
	Received  time.Time

	// Kafka only
	Topic     string
	Partition int32
	Offset    int64
}

type Input struct {
	Source string
	Key    string
	Value  []byte
}

const (
	UnknownCategory        = "unknown"
	UnmarshalErrorCategory = "unmarshal"
	PanicCategory          = "panic"
)

func NewErrProcessingError(err error, category string, additionalInputs []Input) ErrProcessingError {
	return ErrProcessingError{
		error:            err,
		Category:         category,
		AdditionalInputs: additionalInputs,
	}
}

func (e ErrProcessingError) Unwrap() error {
	return e.error
}

// WithOrigin returns a copy of the error attached to the given origin.
// An origin already set is kept.
func (e ErrProcessingError) WithOrigin(origin Origin) ErrProcessingError {
	if e.Origin != nil {
		return e
	}

	e.Origin = &origin

	return e
}

// ErrRetryableError

var ErrRetryableError = errors.New("retryable error")

func NewErrRetryableError(err error) error {
	return fmt.Errorf("%w: %w", ErrRetryableError, err)
}

func NewRetryableErrProcessingError(err error, category string, additionalInputs []Input) ErrProcessingError {
	return NewErrProcessingError(NewErrRetryableError(err), category, additionalInputs)
}

// AsProcessingError extracts the ErrProcessingError wrapped in err, or wraps err with the unknown category.
func AsProcessingError(err error) ErrProcessingError {
	ret := ErrProcessingError{}
	if errors.As(err, &ret) {
		return ret
	}

	return NewErrProcessingError(err, UnknownCategory, nil)
}
