package services

import (
	"context"
	"fmt"

	"github.com/benmeehan/trailmap/internal/constants"
	"github.com/benmeehan/trailmap/internal/models"
	"github.com/benmeehan/trailmap/pkg/homeassistant"
	"github.com/rs/zerolog"
)

// EntitySelector picks one of the listed persons and returns its zero based index.
type EntitySelector interface {
	ChooseEntity(persons []models.Person) (int, error)
}

// EntityResolver finds trackable persons and resolves the device tracker behind one of them.
type EntityResolver struct {
	client homeassistant.StateReader
	logger zerolog.Logger
}

// NewEntityResolver creates a new EntityResolver instance.
func NewEntityResolver(client homeassistant.StateReader, logger zerolog.Logger) *EntityResolver {
	return &EntityResolver{
		client: client,
		logger: logger,
	}
}

// ListTrackablePersons returns every person entity in state snapshot order.
func (r *EntityResolver) ListTrackablePersons(ctx context.Context) ([]models.Person, error) {
	states, err := r.client.GetStates(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("Failed to fetch person entities")
		return nil, fmt.Errorf("failed to fetch person entities: %w", err)
	}

	persons := make([]models.Person, 0)
	for _, state := range states {
		if state.Domain() != constants.PersonDomain {
			continue
		}
		persons = append(persons, models.Person{
			EntityID:     state.EntityID,
			FriendlyName: state.StringAttribute(constants.FriendlyNameAttribute),
			Source:       state.StringAttribute(constants.SourceAttribute),
			State:        state.State,
			Attributes:   state.Attributes,
		})
	}

	r.logger.Debug().
		Int("entities", len(states)).
		Int("persons", len(persons)).
		Msg("Listed trackable persons")
	return persons, nil
}

// SelectEntity returns the source device tracker of the person at index.
// The person's own id is never returned: history is recorded against the tracker.
func (r *EntityResolver) SelectEntity(index int, persons []models.Person) (string, error) {
	if index < 0 || index >= len(persons) {
		return "", &models.OutOfRangeError{Input: index, Min: 0, Max: len(persons) - 1}
	}

	person := persons[index]
	if person.Source == "" {
		return "", &models.InvalidInputError{
			Input:  person.EntityID,
			Reason: "person has no source device tracker",
		}
	}

	r.logger.Info().
		Str("person", person.EntityID).
		Str("entity_id", person.Source).
		Msg("Resolved person to device tracker")
	return person.Source, nil
}

// Resolve lists persons, asks the selector for one and returns its source entity id.
func (r *EntityResolver) Resolve(ctx context.Context, selector EntitySelector) (string, error) {
	persons, err := r.ListTrackablePersons(ctx)
	if err != nil {
		return "", err
	}
	if len(persons) == 0 {
		return "", &models.InvalidInputError{Reason: "no person entities found"}
	}

	index, err := selector.ChooseEntity(persons)
	if err != nil {
		return "", err
	}

	return r.SelectEntity(index, persons)
}
