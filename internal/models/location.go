package models

import (
	"time"
)

// LocationSample is a single position reported by a device tracker
type LocationSample struct {
	Timestamp string  `json:"timestamp"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// LocationSeries is the ordered history of one entity over a bounded window.
// Samples keep the order returned by the history API.
type LocationSeries struct {
	EntityID string           `json:"entity_id"`
	Start    time.Time        `json:"start"`
	End      time.Time        `json:"end"`
	Samples  []LocationSample `json:"samples"`
}

// Len returns the number of samples in the series.
func (s LocationSeries) Len() int {
	return len(s.Samples)
}

// IsEmpty reports whether the series holds no samples.
func (s LocationSeries) IsEmpty() bool {
	return len(s.Samples) == 0
}
