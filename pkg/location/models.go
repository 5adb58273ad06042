package location

// Location represents a geographical coordinate
type Location struct {
	Latitude  float64
	Longitude float64
}
