package models

// Person is a person entity that can be tracked through its source device tracker.
type Person struct {
	EntityID     string         `json:"entity_id"`
	FriendlyName string         `json:"friendly_name,omitempty"`
	Source       string         `json:"source,omitempty"`
	State        string         `json:"state"`
	Attributes   map[string]any `json:"attributes,omitempty"`
}

// DisplayName returns the label shown to the operator when choosing a person.
func (p Person) DisplayName() string {
	if p.FriendlyName == "" {
		return p.EntityID
	}
	return p.EntityID + " (" + p.FriendlyName + ")"
}
