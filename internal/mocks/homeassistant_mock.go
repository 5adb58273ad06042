package mocks

import (
	"context"
	"time"

	"github.com/benmeehan/trailmap/pkg/homeassistant"
	"github.com/stretchr/testify/mock"
)

// MockHomeAssistant is a mock implementation of the StateReader and HistoryReader interfaces
type MockHomeAssistant struct {
	mock.Mock
}

func (m *MockHomeAssistant) GetStates(ctx context.Context) ([]homeassistant.State, error) {
	args := m.Called(ctx)
	states, _ := args.Get(0).([]homeassistant.State)
	return states, args.Error(1)
}

func (m *MockHomeAssistant) GetHistory(ctx context.Context, entityIDs []string, start, end time.Time) ([][]homeassistant.State, error) {
	args := m.Called(ctx, entityIDs, start, end)
	history, _ := args.Get(0).([][]homeassistant.State)
	return history, args.Error(1)
}
