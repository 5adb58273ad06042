package services

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"html/template"
	"time"

	"github.com/benmeehan/trailmap/internal/constants"
	"github.com/benmeehan/trailmap/internal/models"
	"github.com/benmeehan/trailmap/internal/utils"
	"github.com/benmeehan/trailmap/pkg/file"
	"github.com/benmeehan/trailmap/pkg/location"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

//go:embed templates/map.html.tmpl
var mapTemplateSource string

var mapTemplate = template.Must(template.New("map").Parse(mapTemplateSource))

var defaultSubdomains = []string{"a", "b", "c"}

const defaultMaxZoom = 18

// MapRenderer turns a location series into a Leaflet map document.
type MapRenderer struct {
	fileClient file.FileOperations
	placeNamer location.PlaceNamer // optional
	zoom       int
	logger     zerolog.Logger
	now        func() time.Time
}

// NewMapRenderer creates a new MapRenderer. placeNamer may be nil.
func NewMapRenderer(fileClient file.FileOperations, placeNamer location.PlaceNamer, zoom int, logger zerolog.Logger) *MapRenderer {
	if zoom <= 0 {
		zoom = constants.DefaultZoom
	}
	return &MapRenderer{
		fileClient: fileClient,
		placeNamer: placeNamer,
		zoom:       zoom,
		logger:     logger,
		now:        time.Now,
	}
}

// BuildMap describes the map for series: centered on the mean coordinate, one
// path through the samples in series order and one marker per sample.
func (m *MapRenderer) BuildMap(series models.LocationSeries, tiles utils.TileConfig) (models.MapView, error) {
	if series.IsEmpty() {
		return models.MapView{}, &models.InvalidInputError{
			Input:  series.EntityID,
			Reason: "no location samples to render",
		}
	}

	points := make([]location.Location, 0, series.Len())
	path := make([]models.LatLng, 0, series.Len())
	markers := make([]models.Marker, 0, series.Len())
	for _, sample := range series.Samples {
		pos := models.LatLng{sample.Latitude, sample.Longitude}
		points = append(points, location.Location{Latitude: sample.Latitude, Longitude: sample.Longitude})
		path = append(path, pos)
		markers = append(markers, models.Marker{Position: pos, Popup: sample.Timestamp})
	}

	center, err := location.Mean(points)
	if err != nil {
		return models.MapView{}, &models.InvalidInputError{Input: series.EntityID, Reason: err.Error()}
	}

	subdomains := tiles.Subdomains
	if len(subdomains) == 0 {
		subdomains = defaultSubdomains
	}
	maxZoom := tiles.MaxZoom
	if maxZoom == 0 {
		maxZoom = defaultMaxZoom
	}

	return models.MapView{
		Title:  mapTitle(series),
		Center: models.LatLng{center.Latitude, center.Longitude},
		Zoom:   m.zoom,
		Tiles: models.TileLayer{
			URL:         tiles.URL(),
			Attribution: tiles.Attribution,
			Subdomains:  subdomains,
			MaxZoom:     maxZoom,
		},
		Path: path,
		PathStyle: models.PathStyle{
			Color:               constants.TrailColor,
			PulseColor:          constants.TrailColor,
			Weight:              constants.TrailWeight,
			Opacity:             constants.TrailOpacity,
			Delay:               constants.TrailDelay,
			DashArray:           constants.TrailDashArray,
			HardwareAccelerated: true,
		},
		Markers: markers,
		MarkerStyle: models.MarkerStyle{
			Radius:      constants.MarkerRadius,
			Color:       constants.TrailColor,
			Fill:        true,
			FillColor:   constants.TrailColor,
			FillOpacity: constants.MarkerFillOpaque,
			Stroke:      false,
		},
	}, nil
}

func mapTitle(series models.LocationSeries) string {
	noun := "points"
	if series.Len() == 1 {
		noun = "point"
	}
	return fmt.Sprintf("Location history of %s (%d %s)", series.EntityID, series.Len(), noun)
}

// RenderHTML executes the map template for view.
func (m *MapRenderer) RenderHTML(view models.MapView) ([]byte, error) {
	var buf bytes.Buffer
	if err := mapTemplate.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("failed to render map template: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderMap builds the map for series, writes it to outputPath, replacing any
// existing file, and returns a handle to the document.
func (m *MapRenderer) RenderMap(ctx context.Context, series models.LocationSeries, tiles utils.TileConfig, outputPath string) (*models.MapDocument, error) {
	view, err := m.BuildMap(series, tiles)
	if err != nil {
		return nil, err
	}

	if m.placeNamer != nil {
		center := location.Location{Latitude: view.Center[0], Longitude: view.Center[1]}
		place, err := m.placeNamer.PlaceName(ctx, center)
		if err != nil {
			m.logger.Warn().Err(err).Msg("Failed to name map center, keeping default title")
		} else if place != "" {
			view.Title += " near " + place
		}
	}

	html, err := m.RenderHTML(view)
	if err != nil {
		return nil, err
	}

	if err := m.fileClient.WriteFileRaw(outputPath, html); err != nil {
		m.logger.Error().Err(err).Str("path", outputPath).Msg("Failed to write map document")
		return nil, fmt.Errorf("failed to write map to %s: %w", outputPath, err)
	}

	doc := &models.MapDocument{
		ID:          uuid.New(),
		Path:        outputPath,
		Title:       view.Title,
		EntityID:    series.EntityID,
		Center:      view.Center,
		Zoom:        view.Zoom,
		SampleCount: series.Len(),
		Size:        int64(len(html)),
		RenderedAt:  m.now(),
	}

	m.logger.Info().
		Str("path", doc.Path).
		Str("document_id", doc.ID.String()).
		Int("samples", doc.SampleCount).
		Float64("center_lat", doc.Center[0]).
		Float64("center_lng", doc.Center[1]).
		Msg("Map rendered")
	return doc, nil
}
