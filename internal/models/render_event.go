package models

import (
	"time"

	"github.com/google/uuid"
)

// RenderEvent is published after a map has been rendered.
type RenderEvent struct {
	DocumentID  uuid.UUID `json:"document_id"`
	EntityID    string    `json:"entity_id"`
	SampleCount int       `json:"sample_count"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	WindowStart time.Time `json:"window_start"`
	WindowEnd   time.Time `json:"window_end"`
	File        string    `json:"file"`
	URL         string    `json:"url,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}
