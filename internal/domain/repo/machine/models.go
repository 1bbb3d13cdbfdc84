package machine

import (
	"time"

	"github.com/openshift-assisted/machine-monitor/internal/domain/entity"
)

// State is the persisted form of a machine state.
type State struct {
	Name         string         `json:"name"`
	Location     string         `json:"location"`
	SystemType   string         `json:"system_type"`
	Latitude     float64        `json:"latitude"`
	Longitude    float64        `json:"longitude"`
	Status       entity.Status  `json:"status"`
	Data         map[string]any `json:"data,omitempty"`
	HasData      bool           `json:"has_data"`
	LastSeen     time.Time      `json:"last_seen"`
	RegisteredAt time.Time      `json:"registered_at"`
}

func mapToModels(state entity.MachineState) State {
	ret := State{
		Name:         state.Info.Name,
		Location:     state.Info.Location,
		SystemType:   state.Info.SystemType,
		Latitude:     state.Info.Latitude,
		Longitude:    state.Info.Longitude,
		Status:       state.Status,
		HasData:      state.HasData,
		LastSeen:     state.LastSeen.UTC(),
		RegisteredAt: state.RegisteredAt.UTC(),
	}

	if state.HasData {
		ret.Data = state.Snapshot.Data()
	}

	return ret
}

func mapToEntity(id string, state State) (entity.MachineState, error) {
	snapshot, err := entity.NewSnapshot(state.Data)
	if err != nil {
		return entity.MachineState{}, err
	}

	return entity.MachineState{
		Info: entity.MachineInfo{
			ID:         id,
			Name:       state.Name,
			Location:   state.Location,
			SystemType: state.SystemType,
			Latitude:   state.Latitude,
			Longitude:  state.Longitude,
		},
		Status:       state.Status,
		Snapshot:     snapshot,
		HasData:      state.HasData,
		LastSeen:     state.LastSeen,
		RegisteredAt: state.RegisteredAt,
	}, nil
}
