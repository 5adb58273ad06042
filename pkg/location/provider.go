package location

import "context"

// PlaceNamer interface defines the methods for turning a coordinate into a human readable place name
type PlaceNamer interface {
	PlaceName(ctx context.Context, loc Location) (string, error)
}
