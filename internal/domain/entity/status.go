package entity

import (
	"errors"
	"fmt"
	"strings"
)

// Status is the health classification of a machine, serialized as its color label.
type Status string

const (
	StatusNotConnected  Status = "grey"
	StatusNotAccessible Status = "black"
	StatusHealthy       Status = "green"
	StatusWarning       Status = "yellow"
	StatusCritical      Status = "red"
)

var ErrUnknownStatus = errors.New("unknown status")

// Statuses lists every status, worst first.
var Statuses = []Status{
	StatusNotAccessible,
	StatusNotConnected,
	StatusCritical,
	StatusWarning,
	StatusHealthy,
}

var legacyAliases = map[string]Status{
	"online":  StatusHealthy,
	"warning": StatusWarning,
	"offline": StatusNotAccessible,
	"error":   StatusCritical,
}

// ParseStatus accepts color labels and legacy aliases (online, warning, offline, error).
func ParseStatus(value string) (Status, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))

	status := Status(normalized)
	if status.Valid() {
		return status, nil
	}

	alias, found := legacyAliases[normalized]
	if found {
		return alias, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownStatus, value)
}

func (s Status) Valid() bool {
	switch s {
	case StatusNotConnected, StatusNotAccessible, StatusHealthy, StatusWarning, StatusCritical:
		return true
	default:
		return false
	}
}

// Name returns the human readable name of the status.
func (s Status) Name() string {
	switch s {
	case StatusNotConnected:
		return "NotConnected"
	case StatusNotAccessible:
		return "NotAccessible"
	case StatusHealthy:
		return "Healthy"
	case StatusWarning:
		return "Warning"
	case StatusCritical:
		return "Critical"
	default:
		return "Unknown"
	}
}

func (s *Status) UnmarshalText(text []byte) error {
	status, err := ParseStatus(string(text))
	if err != nil {
		return err
	}

	*s = status

	return nil
}
