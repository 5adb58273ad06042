package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/benmeehan/trailmap/internal/constants"
	"github.com/benmeehan/trailmap/internal/models"
	"github.com/benmeehan/trailmap/pkg/homeassistant"
	"github.com/rs/zerolog"
)

// HistoryService fetches the location history of a device tracker.
type HistoryService struct {
	client homeassistant.HistoryReader
	logger zerolog.Logger
	now    func() time.Time
}

// NewHistoryService creates a new HistoryService instance.
func NewHistoryService(client homeassistant.HistoryReader, logger zerolog.Logger) *HistoryService {
	return &HistoryService{
		client: client,
		logger: logger,
		now:    time.Now,
	}
}

// WithClock replaces the wall clock used to compute the history window.
func (h *HistoryService) WithClock(now func() time.Time) *HistoryService {
	h.now = now
	return h
}

// FetchHistory returns the location samples of entityID over the last windowDays days.
// A window with no location-bearing records yields an empty series, not an error.
func (h *HistoryService) FetchHistory(ctx context.Context, entityID string, windowDays int) (models.LocationSeries, error) {
	if entityID == "" {
		return models.LocationSeries{}, &models.InvalidInputError{Reason: "entity id is empty"}
	}
	if windowDays < 0 {
		return models.LocationSeries{}, &models.InvalidInputError{
			Input:  strconv.Itoa(windowDays),
			Reason: "number of days must not be negative",
		}
	}

	// Both bounds come from a single clock reading.
	end := h.now()
	start := end.Add(-time.Duration(windowDays) * 24 * time.Hour)

	history, err := h.client.GetHistory(ctx, []string{entityID}, start, end)
	if err != nil {
		h.logger.Error().Err(err).Str("entity_id", entityID).Msg("Failed to fetch history")
		return models.LocationSeries{}, fmt.Errorf("failed to fetch history for %s: %w", entityID, err)
	}

	states := h.selectEntityStates(entityID, history)
	samples := ExtractSamples(states)

	h.logger.Info().
		Str("entity_id", entityID).
		Time("start", start).
		Time("end", end).
		Int("records", len(states)).
		Int("samples", len(samples)).
		Msg("History fetched")

	return models.LocationSeries{
		EntityID: entityID,
		Start:    start,
		End:      end,
		Samples:  samples,
	}, nil
}

// selectEntityStates picks the state array recorded for entityID. Home Assistant
// returns one array per entity; when none is tagged with entityID the first is used.
func (h *HistoryService) selectEntityStates(entityID string, history [][]homeassistant.State) []homeassistant.State {
	if len(history) == 0 {
		return nil
	}

	selected := -1
	for i, states := range history {
		if len(states) > 0 && states[0].EntityID == entityID {
			selected = i
			break
		}
	}
	if selected < 0 {
		selected = 0
	}

	if len(history) > 1 {
		h.logger.Warn().
			Str("entity_id", entityID).
			Int("arrays", len(history)).
			Int("selected", selected).
			Msg("History response holds more than one entity, ignoring the others")
	}
	return history[selected]
}

// ExtractSamples keeps the records exposing both a latitude and a longitude,
// in input order, stamped with their last_updated time.
func ExtractSamples(states []homeassistant.State) []models.LocationSample {
	samples := make([]models.LocationSample, 0, len(states))
	for _, state := range states {
		lat, ok := state.FloatAttribute(constants.LatitudeAttribute)
		if !ok {
			continue
		}
		lng, ok := state.FloatAttribute(constants.LongitudeAttribute)
		if !ok {
			continue
		}
		samples = append(samples, models.LocationSample{
			Timestamp: state.LastUpdated,
			Latitude:  lat,
			Longitude: lng,
		})
	}
	return samples
}
