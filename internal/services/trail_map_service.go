package services

import (
	"context"
	"fmt"

	"github.com/benmeehan/trailmap/internal/models"
	"github.com/benmeehan/trailmap/internal/utils"
	"github.com/rs/zerolog"
)

// DaysSource supplies the length of the history window in days.
type DaysSource interface {
	HistoryDays() (int, error)
}

// RunRequest holds the per-run inputs of TrailMapService.
type RunRequest struct {
	EntityID   string         // device tracker to map; when empty Selector is asked
	Selector   EntitySelector // used when EntityID is empty
	Days       DaysSource
	Tiles      utils.TileConfig
	OutputPath string
}

// TrailMapService runs the resolve, fetch, render and publish steps in order.
type TrailMapService struct {
	resolver   *EntityResolver
	history    *HistoryService
	renderer   *MapRenderer
	publishers []Publisher
	logger     zerolog.Logger
}

// NewTrailMapService creates a new TrailMapService instance.
func NewTrailMapService(resolver *EntityResolver, history *HistoryService, renderer *MapRenderer,
	logger zerolog.Logger, publishers ...Publisher) *TrailMapService {
	return &TrailMapService{
		resolver:   resolver,
		history:    history,
		renderer:   renderer,
		publishers: publishers,
		logger:     logger,
	}
}

// Run produces one map document. The first failing step aborts the run.
// A publisher failure still returns the written document alongside the error.
func (s *TrailMapService) Run(ctx context.Context, req RunRequest) (*models.MapDocument, error) {
	entityID := req.EntityID
	if entityID == "" {
		if req.Selector == nil {
			return nil, &models.InvalidInputError{Reason: "no entity id and no selector given"}
		}
		resolved, err := s.resolver.Resolve(ctx, req.Selector)
		if err != nil {
			return nil, err
		}
		entityID = resolved
	}

	days, err := req.Days.HistoryDays()
	if err != nil {
		return nil, err
	}

	series, err := s.history.FetchHistory(ctx, entityID, days)
	if err != nil {
		return nil, err
	}

	doc, err := s.renderer.RenderMap(ctx, series, req.Tiles, req.OutputPath)
	if err != nil {
		return nil, err
	}

	for _, publisher := range s.publishers {
		if err := publisher.Publish(ctx, doc, series); err != nil {
			return doc, fmt.Errorf("%s publisher failed: %w", publisher.Name(), err)
		}
	}

	return doc, nil
}
