package location

import (
	"context"
	"errors"
	"time"

	"googlemaps.github.io/maps"
)

// reverseGeocoder is the subset of maps.Client used by GooglePlaceNamer.
type reverseGeocoder interface {
	ReverseGeocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error)
}

// GooglePlaceNamer uses the Google Maps Geocoding API to name a coordinate.
type GooglePlaceNamer struct {
	client  reverseGeocoder // Maps API client for making reverse geocoding requests
	timeout time.Duration
}

// NewGooglePlaceNamer creates a new GooglePlaceNamer instance.
func NewGooglePlaceNamer(apiKey string, timeout time.Duration) (*GooglePlaceNamer, error) {
	c, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	return newGooglePlaceNamer(c, timeout), nil
}

func newGooglePlaceNamer(client reverseGeocoder, timeout time.Duration) *GooglePlaceNamer {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &GooglePlaceNamer{
		client:  client,
		timeout: timeout,
	}
}

// PlaceName returns the locality containing loc, or the formatted address of the best match.
func (g *GooglePlaceNamer) PlaceName(ctx context.Context, loc Location) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	req := &maps.GeocodingRequest{
		LatLng: &maps.LatLng{Lat: loc.Latitude, Lng: loc.Longitude},
	}

	results, err := g.client.ReverseGeocode(ctx, req)
	if err != nil {
		return "", err
	}
	if len(results) == 0 {
		return "", errors.New("no geocoding results")
	}

	for _, result := range results {
		for _, component := range result.AddressComponents {
			if hasType(component.Types, "locality") {
				return component.LongName, nil
			}
		}
	}

	return results[0].FormattedAddress, nil
}

func hasType(types []string, want string) bool {
	for _, t := range types {
		if t == want {
			return true
		}
	}
	return false
}
