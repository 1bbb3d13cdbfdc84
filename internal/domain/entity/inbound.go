package entity

// InboundSnapshot is the wire shape of one machine reading, from the upstream API,
// the simulator, kafka or the push endpoint.
type InboundSnapshot struct {
	ID        string         `json:"id" validate:"required,max=128,printascii"`
	Status    string         `json:"status,omitempty" validate:"omitempty,machine_status"`
	Data      map[string]any `json:"data" validate:"required"`
	Timestamp string         `json:"timestamp" validate:"required,iso8601"`
}
