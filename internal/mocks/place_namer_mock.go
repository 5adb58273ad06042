package mocks

import (
	"context"

	"github.com/benmeehan/trailmap/pkg/location"
	"github.com/stretchr/testify/mock"
)

// MockPlaceNamer is a mock implementation of the PlaceNamer interface
type MockPlaceNamer struct {
	mock.Mock
}

func (m *MockPlaceNamer) PlaceName(ctx context.Context, loc location.Location) (string, error) {
	args := m.Called(ctx, loc)
	return args.String(0), args.Error(1)
}
