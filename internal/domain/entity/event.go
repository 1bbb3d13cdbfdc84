package entity

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

const EventTypeMachineUpdate = "machine_update"

var ErrUnexpectedEventType = errors.New("unexpected event type")

// ChangeEvent is emitted once per detected status or data change of a machine.
type ChangeEvent struct {
	MachineID string
	Status    Status
	Snapshot  SensorSnapshot
	Timestamp time.Time
}

type changeEventJSON struct {
	Type      string         `json:"type"`
	MachineID string         `json:"machine_id"`
	Status    Status         `json:"status"`
	Data      SensorSnapshot `json:"data"`
	Timestamp string         `json:"timestamp"`
}

func (e ChangeEvent) MarshalJSON() ([]byte, error) {
	return json.Marshal(changeEventJSON{
		Type:      EventTypeMachineUpdate,
		MachineID: e.MachineID,
		Status:    e.Status,
		Data:      e.Snapshot,
		Timestamp: FormatTimestamp(e.Timestamp),
	})
}

func (e *ChangeEvent) UnmarshalJSON(b []byte) error {
	raw := changeEventJSON{}

	err := json.Unmarshal(b, &raw)
	if err != nil {
		return err
	}

	if raw.Type != EventTypeMachineUpdate {
		return fmt.Errorf("%w: %q", ErrUnexpectedEventType, raw.Type)
	}

	ts, err := ParseTimestamp(raw.Timestamp)
	if err != nil {
		return err
	}

	*e = ChangeEvent{
		MachineID: raw.MachineID,
		Status:    raw.Status,
		Snapshot:  raw.Data,
		Timestamp: ts,
	}

	return nil
}
