package homeassistant

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	statesPath  = "/api/states"
	historyPath = "/api/history/period/"

	// maxErrorBody caps how much of an error response is kept as the message.
	maxErrorBody = 4 << 10
)

// StateReader reads the current state snapshot.
type StateReader interface {
	GetStates(ctx context.Context) ([]State, error)
}

// HistoryReader reads state changes over a time window.
type HistoryReader interface {
	GetHistory(ctx context.Context, entityIDs []string, start, end time.Time) ([][]State, error)
}

// Client talks to the Home Assistant REST API using a long-lived access token.
type Client struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewClient creates a new Client. A zero timeout leaves the http.Client default.
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// GetStates returns every entity state known to Home Assistant.
func (c *Client) GetStates(ctx context.Context) ([]State, error) {
	var states []State
	if err := c.get(ctx, statesPath, nil, &states); err != nil {
		return nil, err
	}
	return states, nil
}

// GetHistory returns one array of state changes per entity between start and end.
func (c *Client) GetHistory(ctx context.Context, entityIDs []string, start, end time.Time) ([][]State, error) {
	query := url.Values{}
	query.Set("filter_entity_id", strings.Join(entityIDs, ","))
	query.Set("end_time", end.Format(time.RFC3339))

	var history [][]State
	path := historyPath + url.PathEscape(start.Format(time.RFC3339))
	if err := c.get(ctx, path, query, &history); err != nil {
		return nil, err
	}
	return history, nil
}

// get issues an authenticated GET and decodes the JSON response into v.
func (c *Client) get(ctx context.Context, path string, query url.Values, v any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build request for %s: %w", path, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &UpstreamError{
			Endpoint:   path,
			StatusCode: resp.StatusCode,
			Message:    readErrorMessage(resp.Body),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}
	return nil
}

// readErrorMessage extracts the "message" field of an error body, falling back to the raw text.
func readErrorMessage(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, maxErrorBody))
	if err != nil || len(strings.TrimSpace(string(raw))) == 0 {
		return "No error message provided"
	}

	var envelope errorBody
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Message != "" {
		return envelope.Message
	}
	return strings.TrimSpace(string(raw))
}
