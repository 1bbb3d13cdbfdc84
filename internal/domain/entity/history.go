package entity

import (
	"encoding/json"
	"time"
)

// StatusTransition records a machine moving from one status to another.
type StatusTransition struct {
	MachineID string
	From      Status
	To        Status
	Timestamp time.Time
}

type statusTransitionJSON struct {
	MachineID string `json:"machine_id"`
	OldStatus Status `json:"old_status,omitempty"`
	NewStatus Status `json:"new_status"`
	Timestamp string `json:"timestamp"`
}

func (t StatusTransition) MarshalJSON() ([]byte, error) {
	return json.Marshal(statusTransitionJSON{
		MachineID: t.MachineID,
		OldStatus: t.From,
		NewStatus: t.To,
		Timestamp: FormatTimestamp(t.Timestamp),
	})
}

func (t *StatusTransition) UnmarshalJSON(b []byte) error {
	raw := statusTransitionJSON{}

	err := json.Unmarshal(b, &raw)
	if err != nil {
		return err
	}

	ts, err := ParseTimestamp(raw.Timestamp)
	if err != nil {
		return err
	}

	*t = StatusTransition{
		MachineID: raw.MachineID,
		From:      raw.OldStatus,
		To:        raw.NewStatus,
		Timestamp: ts,
	}

	return nil
}
