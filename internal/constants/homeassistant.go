package constants

const (
	// PersonDomain is the domain of person entities.
	PersonDomain = "person"

	// SourceAttribute is the person attribute naming the backing device tracker.
	SourceAttribute = "source"

	// FriendlyNameAttribute is the human readable entity name.
	FriendlyNameAttribute = "friendly_name"

	// LatitudeAttribute and LongitudeAttribute carry a tracker position.
	LatitudeAttribute  = "latitude"
	LongitudeAttribute = "longitude"
)
