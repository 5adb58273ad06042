package models

import (
	"time"

	"github.com/google/uuid"
)

// LatLng is a coordinate pair. It marshals as [lat, lng], the form Leaflet expects.
type LatLng [2]float64

// TileLayer describes a raster tile source.
type TileLayer struct {
	URL         string   `json:"url"`
	Attribution string   `json:"attribution"`
	Subdomains  []string `json:"subdomains,omitempty"`
	MaxZoom     int      `json:"maxZoom,omitempty"`
}

// PathStyle holds the AntPath options used for the trail.
type PathStyle struct {
	Color               string  `json:"color"`
	PulseColor          string  `json:"pulseColor"`
	Weight              int     `json:"weight"`
	Opacity             float64 `json:"opacity"`
	Delay               int     `json:"delay"`
	DashArray           []int   `json:"dashArray"`
	HardwareAccelerated bool    `json:"hardwareAccelerated"`
}

// MarkerStyle holds the circle marker options used for each sample.
type MarkerStyle struct {
	Radius      float64 `json:"radius"`
	Color       string  `json:"color"`
	Fill        bool    `json:"fill"`
	FillColor   string  `json:"fillColor"`
	FillOpacity float64 `json:"fillOpacity"`
	Stroke      bool    `json:"stroke"`
}

// Marker is a point annotation carrying the sample timestamp as its popup.
type Marker struct {
	Position LatLng `json:"position"`
	Popup    string `json:"popup"`
}

// MapView is the renderer independent description of a map.
type MapView struct {
	Title       string      `json:"title"`
	Center      LatLng      `json:"center"`
	Zoom        int         `json:"zoom"`
	Tiles       TileLayer   `json:"tiles"`
	Path        []LatLng    `json:"path"`
	PathStyle   PathStyle   `json:"pathStyle"`
	Markers     []Marker    `json:"markers"`
	MarkerStyle MarkerStyle `json:"markerStyle"`
}

// MapDocument is a handle to a rendered map written to disk.
type MapDocument struct {
	ID          uuid.UUID `json:"id"`
	Path        string    `json:"path"`
	Title       string    `json:"title"`
	EntityID    string    `json:"entity_id"`
	Center      LatLng    `json:"center"`
	Zoom        int       `json:"zoom"`
	SampleCount int       `json:"sample_count"`
	Size        int64     `json:"size"`
	RenderedAt  time.Time `json:"rendered_at"`
	URL         string    `json:"url,omitempty"` // presigned URL once uploaded
}
