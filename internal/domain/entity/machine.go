package entity

import (
	"encoding/json"
	"time"
)

// MachineInfo is the static description of a machine, immutable once registered.
type MachineInfo struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Location   string  `json:"location"`
	SystemType string  `json:"system_type"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
}

// MachineState is the latest known state of one machine.
type MachineState struct {
	Info         MachineInfo
	Status       Status
	Snapshot     SensorSnapshot
	HasData      bool
	LastSeen     time.Time
	RegisteredAt time.Time
}

type machineStateJSON struct {
	MachineID  string         `json:"machine_id"`
	Status     Status         `json:"status"`
	Data       SensorSnapshot `json:"data"`
	Timestamp  *string        `json:"timestamp"`
	Name       string         `json:"name"`
	Location   string         `json:"location"`
	SystemType string         `json:"system_type"`
	Latitude   float64        `json:"latitude"`
	Longitude  float64        `json:"longitude"`
	LastSeen   *string        `json:"last_seen"`
}

// MarshalJSON renders the state with the fields of an outbound event plus the static metadata.
func (m MachineState) MarshalJSON() ([]byte, error) {
	ret := machineStateJSON{
		MachineID:  m.Info.ID,
		Status:     m.Status,
		Data:       m.Snapshot,
		Name:       m.Info.Name,
		Location:   m.Info.Location,
		SystemType: m.Info.SystemType,
		Latitude:   m.Info.Latitude,
		Longitude:  m.Info.Longitude,
	}

	if m.HasData {
		ts := FormatTimestamp(m.LastSeen)
		ret.Timestamp = &ts
		ret.LastSeen = &ts
	}

	return json.Marshal(ret)
}
