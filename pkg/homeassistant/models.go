package homeassistant

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// State is an entity state object as returned by /api/states and /api/history.
type State struct {
	EntityID    string         `json:"entity_id"`
	State       string         `json:"state"`
	Attributes  map[string]any `json:"attributes"`
	LastChanged string         `json:"last_changed"`
	LastUpdated string         `json:"last_updated"`
}

// Domain returns the part of the entity id before the first dot.
func (s State) Domain() string {
	domain, _, _ := strings.Cut(s.EntityID, ".")
	return domain
}

// StringAttribute returns a string attribute, or "" when absent or not a string.
func (s State) StringAttribute(name string) string {
	v, ok := s.Attributes[name].(string)
	if !ok {
		return ""
	}
	return v
}

// FloatAttribute returns a finite numeric attribute. Numeric strings are accepted,
// NaN and infinities are not.
func (s State) FloatAttribute(name string) (float64, bool) {
	raw, ok := s.Attributes[name]
	if !ok {
		return 0, false
	}

	var f float64
	switch v := raw.(type) {
	case float64:
		f = v
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// errorBody is the JSON error envelope Home Assistant uses.
type errorBody struct {
	Message string `json:"message"`
}
