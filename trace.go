package faker

import (
	"encoding/json"
)

// Provenance roles.
const (
	RoleActive   = "active"
	RoleFallback = "fallback"
)

// Trace captures which locales a lookup consulted and what each contributed.
type Trace struct {
	Category Category     `json:"category"`
	Property string       `json:"property"`
	Layers   []Provenance `json:"layers"`
}

// Provenance details how one locale contributed to a traced lookup. Value is
// only set on the layer that supplied the result.
type Provenance struct {
	Locale string `json:"locale"`
	Role   string `json:"role"`
	Loaded bool   `json:"loaded"`
	Found  bool   `json:"found"`
	Value  any    `json:"value,omitempty"`
}

// Winner returns the layer that supplied the value, if any.
func (t Trace) Winner() (Provenance, bool) {
	for _, layer := range t.Layers {
		if layer.Found {
			return layer, true
		}
	}
	return Provenance{}, false
}

// ToJSON serialises the trace into JSON for logging or transport helpers.
func (t Trace) ToJSON() ([]byte, error) {
	type alias Trace
	return json.Marshal(alias(t))
}

// TraceFromJSON deserialises a JSON payload that was previously generated via
// ToJSON.
func TraceFromJSON(payload []byte) (Trace, error) {
	type alias Trace
	var trace alias
	if err := json.Unmarshal(payload, &trace); err != nil {
		return Trace{}, err
	}
	return Trace(trace), nil
}
