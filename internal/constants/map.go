package constants

const (
	// DefaultOutputFile is the map document written to the working directory.
	DefaultOutputFile = "old_timey_location_map.html"

	// DefaultZoom is the initial zoom level of the rendered map.
	DefaultZoom = 10

	// DefaultTileURLTemplate is the Thunderforest "pioneer" style. {apikey} is replaced with the configured key.
	DefaultTileURLTemplate = "https://{s}.tile.thunderforest.com/pioneer/{z}/{x}/{y}.png?apikey={apikey}"

	// DefaultTileAttribution credits the tile provider and map data.
	DefaultTileAttribution = `&copy; <a href="http://www.thunderforest.com/">Thunderforest</a>, &copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors`

	// TileAPIKeyPlaceholder is substituted in tile URL templates.
	TileAPIKeyPlaceholder = "{apikey}"
)

// Trail styling
const (
	TrailColor       = "#8B4513"
	TrailWeight      = 4
	TrailOpacity     = 1.0
	TrailDelay       = 0
	MarkerRadius     = 1.0
	MarkerFillOpaque = 1.0
)

// TrailDashArray renders as a visually continuous line.
var TrailDashArray = []int{0, 100}
