package location

import "errors"

// ErrNoLocations is returned when an aggregate is requested over zero locations.
var ErrNoLocations = errors.New("no locations to aggregate")

// Mean returns the arithmetic mean of the latitudes and longitudes.
// No outlier handling is done, so widely dispersed points yield a center between clusters.
func Mean(locs []Location) (Location, error) {
	if len(locs) == 0 {
		return Location{}, ErrNoLocations
	}

	var latSum, lngSum float64
	for _, l := range locs {
		latSum += l.Latitude
		lngSum += l.Longitude
	}

	n := float64(len(locs))
	return Location{
		Latitude:  latSum / n,
		Longitude: lngSum / n,
	}, nil
}
