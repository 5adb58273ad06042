package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/benmeehan/trailmap/internal/constants"
	"github.com/benmeehan/trailmap/internal/mocks"
	"github.com/benmeehan/trailmap/internal/models"
	"github.com/benmeehan/trailmap/internal/services"
	"github.com/benmeehan/trailmap/internal/utils"
	"github.com/benmeehan/trailmap/pkg/location"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testTiles() utils.TileConfig {
	return utils.TileConfig{
		APIKey:      "tile-key",
		URLTemplate: constants.DefaultTileURLTemplate,
		Attribution: constants.DefaultTileAttribution,
	}
}

func twoPointSeries() models.LocationSeries {
	return models.LocationSeries{
		EntityID: "device_tracker.alice_phone",
		Samples: []models.LocationSample{
			{Timestamp: "2024-05-08T09:00:00+00:00", Latitude: 51.5, Longitude: -0.12},
			{Timestamp: "2024-05-08T10:00:00+00:00", Latitude: 48.85, Longitude: 2.35},
		},
	}
}

func TestMapRenderer_BuildMap_SinglePointCenter(t *testing.T) {
	renderer := services.NewMapRenderer(nil, nil, 0, zerolog.Nop())
	series := models.LocationSeries{
		EntityID: "device_tracker.alice_phone",
		Samples:  []models.LocationSample{{Timestamp: "t1", Latitude: 40.7128, Longitude: -74.006}},
	}

	view, err := renderer.BuildMap(series, testTiles())

	require.NoError(t, err)
	assert.Equal(t, models.LatLng{40.7128, -74.006}, view.Center)
	assert.Equal(t, constants.DefaultZoom, view.Zoom)
}

func TestMapRenderer_BuildMap_EmptySeries(t *testing.T) {
	renderer := services.NewMapRenderer(nil, nil, 0, zerolog.Nop())

	_, err := renderer.BuildMap(models.LocationSeries{EntityID: "device_tracker.alice_phone"}, testTiles())

	var invalid *models.InvalidInputError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "device_tracker.alice_phone", invalid.Input)
}

func TestMapRenderer_BuildMap_PathFollowsSeriesOrder(t *testing.T) {
	renderer := services.NewMapRenderer(nil, nil, 12, zerolog.Nop())

	view, err := renderer.BuildMap(twoPointSeries(), testTiles())

	require.NoError(t, err)
	// the first point has the larger latitude, sorting would swap them
	assert.Equal(t, []models.LatLng{{51.5, -0.12}, {48.85, 2.35}}, view.Path)
	assert.Equal(t, 12, view.Zoom)
	assert.InDelta(t, 50.175, view.Center[0], 1e-9)
	assert.InDelta(t, 1.115, view.Center[1], 1e-9)
}

func TestMapRenderer_BuildMap_Styling(t *testing.T) {
	renderer := services.NewMapRenderer(nil, nil, 0, zerolog.Nop())

	view, err := renderer.BuildMap(twoPointSeries(), testTiles())

	require.NoError(t, err)
	assert.Equal(t, "https://{s}.tile.thunderforest.com/pioneer/{z}/{x}/{y}.png?apikey=tile-key", view.Tiles.URL)
	assert.Equal(t, constants.DefaultTileAttribution, view.Tiles.Attribution)
	assert.Equal(t, []string{"a", "b", "c"}, view.Tiles.Subdomains)

	assert.Equal(t, "#8B4513", view.PathStyle.Color)
	assert.Equal(t, "#8B4513", view.PathStyle.PulseColor)
	assert.Equal(t, 4, view.PathStyle.Weight)
	assert.Equal(t, 1.0, view.PathStyle.Opacity)
	assert.Equal(t, []int{0, 100}, view.PathStyle.DashArray)
	assert.True(t, view.PathStyle.HardwareAccelerated)

	require.Len(t, view.Markers, 2)
	assert.Equal(t, "2024-05-08T09:00:00+00:00", view.Markers[0].Popup)
	assert.Equal(t, models.LatLng{48.85, 2.35}, view.Markers[1].Position)
	assert.True(t, view.MarkerStyle.Fill)
	assert.False(t, view.MarkerStyle.Stroke)
	assert.Equal(t, 1.0, view.MarkerStyle.Radius)
}

func TestMapRenderer_RenderMap_WritesDocument(t *testing.T) {
	fileClient := new(mocks.MockFileOperations)
	var written []byte
	fileClient.On("WriteFileRaw", "out/map.html", mock.Anything).Run(func(args mock.Arguments) {
		written = args.Get(1).([]byte)
	}).Return(nil)

	renderer := services.NewMapRenderer(fileClient, nil, 0, zerolog.Nop())
	doc, err := renderer.RenderMap(context.Background(), twoPointSeries(), testTiles(), "out/map.html")

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, doc.ID)
	assert.Equal(t, "out/map.html", doc.Path)
	assert.Equal(t, 2, doc.SampleCount)
	assert.Equal(t, int64(len(written)), doc.Size)
	assert.Equal(t, "device_tracker.alice_phone", doc.EntityID)

	html := string(written)
	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, "L.polyline.antPath(view.path, view.pathStyle)")
	assert.Contains(t, html, "[[51.5,-0.12],[48.85,2.35]]")
	assert.Contains(t, html, "2024-05-08T10:00:00+00:00")
	assert.Contains(t, html, "<title>Location history of device_tracker.alice_phone (2 points)</title>")
	assert.NotContains(t, html, "<a href=\"http://www.thunderforest.com/\">", "attribution must be escaped inside the script")
	fileClient.AssertExpectations(t)
}

func TestMapRenderer_RenderMap_PlaceNameInTitle(t *testing.T) {
	fileClient := new(mocks.MockFileOperations)
	fileClient.On("WriteFileRaw", mock.Anything, mock.Anything).Return(nil)
	namer := new(mocks.MockPlaceNamer)
	namer.On("PlaceName", mock.Anything, location.Location{Latitude: 51.5, Longitude: -0.12}).Return("London", nil)

	series := models.LocationSeries{
		EntityID: "device_tracker.alice_phone",
		Samples:  []models.LocationSample{{Timestamp: "t1", Latitude: 51.5, Longitude: -0.12}},
	}
	renderer := services.NewMapRenderer(fileClient, namer, 0, zerolog.Nop())
	doc, err := renderer.RenderMap(context.Background(), series, testTiles(), "map.html")

	require.NoError(t, err)
	assert.Equal(t, "Location history of device_tracker.alice_phone (1 point) near London", doc.Title)
	namer.AssertExpectations(t)
}

func TestMapRenderer_RenderMap_PlaceNameFailureIsNotFatal(t *testing.T) {
	fileClient := new(mocks.MockFileOperations)
	fileClient.On("WriteFileRaw", mock.Anything, mock.Anything).Return(nil)
	namer := new(mocks.MockPlaceNamer)
	namer.On("PlaceName", mock.Anything, mock.Anything).Return("", errors.New("REQUEST_DENIED"))

	renderer := services.NewMapRenderer(fileClient, namer, 0, zerolog.Nop())
	doc, err := renderer.RenderMap(context.Background(), twoPointSeries(), testTiles(), "map.html")

	require.NoError(t, err)
	assert.Equal(t, "Location history of device_tracker.alice_phone (2 points)", doc.Title)
}

func TestMapRenderer_RenderMap_WriteError(t *testing.T) {
	fileClient := new(mocks.MockFileOperations)
	fileClient.On("WriteFileRaw", mock.Anything, mock.Anything).Return(errors.New("read-only file system"))

	renderer := services.NewMapRenderer(fileClient, nil, 0, zerolog.Nop())
	_, err := renderer.RenderMap(context.Background(), twoPointSeries(), testTiles(), "map.html")

	assert.ErrorContains(t, err, "failed to write map to map.html")
}
