package homeassistant

import "fmt"

// UpstreamError is returned when Home Assistant answers with a non-success status.
type UpstreamError struct {
	Endpoint   string
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("request to %s failed: HTTP %d. Error: %s", e.Endpoint, e.StatusCode, e.Message)
}
