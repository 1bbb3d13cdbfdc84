package entity_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openshift-assisted/machine-monitor/internal/domain/entity"
)

func TestChangeEventRoundTrip(t *testing.T) {
	event := entity.ChangeEvent{
		MachineID: "volvo_sweden",
		Status:    entity.StatusWarning,
		Snapshot: entity.SensorSnapshot{
			Readings: entity.Readings{
				Temperature: entity.Float(65),
				Pressure:    entity.Float(1.0),
				DiskVolume:  entity.Float(10),
			},
			Aux: map[string]any{
				"uptime":      "3 days",
				"system_info": map[string]any{"os": "linux"},
			},
		},
		Timestamp: time.Date(2025, 3, 3, 15, 9, 54, 123000000, time.UTC),
	}

	b, err := json.Marshal(event)
	require.NoError(t, err)

	parsed := entity.ChangeEvent{}
	require.NoError(t, json.Unmarshal(b, &parsed))

	assert.Equal(t, event.MachineID, parsed.MachineID)
	assert.Equal(t, event.Status, parsed.Status)
	assert.Equal(t, event.Snapshot, parsed.Snapshot)
	assert.True(t, event.Timestamp.Equal(parsed.Timestamp), "timestamp %v != %v", event.Timestamp, parsed.Timestamp)
}

func TestChangeEventOutboundShape(t *testing.T) {
	event := entity.ChangeEvent{
		MachineID: "asimco_china",
		Status:    entity.StatusCritical,
		Snapshot:  entity.SensorSnapshot{Readings: entity.Readings{Temperature: entity.Float(85)}},
		Timestamp: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	b, err := json.Marshal(event)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"type": "machine_update",
		"machine_id": "asimco_china",
		"status": "red",
		"data": {"temperature": 85},
		"timestamp": "2025-01-02T03:04:05Z"
	}`, string(b))
}

func TestChangeEventLegacyAlias(t *testing.T) {
	payload := `{"type":"machine_update","machine_id":"m1","status":"offline","data":{},"timestamp":"2025-01-02T03:04:05"}`

	parsed := entity.ChangeEvent{}
	require.NoError(t, json.Unmarshal([]byte(payload), &parsed))

	assert.Equal(t, entity.StatusNotAccessible, parsed.Status)
	assert.Equal(t, time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC), parsed.Timestamp)
}

func TestChangeEventInvalid(t *testing.T) {
	cases := map[string]string{
		"wrong type":     `{"type":"other","machine_id":"m1","status":"green","data":{},"timestamp":"2025-01-02T03:04:05Z"}`,
		"unknown status": `{"type":"machine_update","machine_id":"m1","status":"blue","data":{},"timestamp":"2025-01-02T03:04:05Z"}`,
		"bad timestamp":  `{"type":"machine_update","machine_id":"m1","status":"green","data":{},"timestamp":"yesterday"}`,
		"bad reading":    `{"type":"machine_update","machine_id":"m1","status":"green","data":{"speed":"fast"},"timestamp":"2025-01-02T03:04:05Z"}`,
	}

	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			parsed := entity.ChangeEvent{}
			assert.Error(t, json.Unmarshal([]byte(payload), &parsed))
		})
	}
}

func TestMachineStateJSON(t *testing.T) {
	state := entity.MachineState{
		Info: entity.MachineInfo{
			ID:         "volvo_sweden",
			Name:       "Volvo",
			Location:   "Sweden",
			SystemType: "Automated System 4000",
			Latitude:   57.7089,
			Longitude:  11.9746,
		},
		Status:   entity.StatusHealthy,
		Snapshot: entity.SensorSnapshot{Readings: entity.Readings{Speed: entity.Float(1500)}},
		HasData:  true,
		LastSeen: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	b, err := json.Marshal(state)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"machine_id": "volvo_sweden",
		"status": "green",
		"data": {"speed": 1500},
		"timestamp": "2025-01-02T03:04:05Z",
		"name": "Volvo",
		"location": "Sweden",
		"system_type": "Automated System 4000",
		"latitude": 57.7089,
		"longitude": 11.9746,
		"last_seen": "2025-01-02T03:04:05Z"
	}`, string(b))

	state.HasData = false

	b, err = json.Marshal(state)
	require.NoError(t, err)

	decoded := map[string]any{}
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Nil(t, decoded["timestamp"])
	assert.Nil(t, decoded["last_seen"])
}
