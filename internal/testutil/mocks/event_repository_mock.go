package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/probuilds/sc2coach/internal/models"
)

// MockEventRepository is a mock implementation of repository.EventRepository
type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) Upcoming(ctx context.Context, from time.Time, limit int) ([]models.CoachingEvent, error) {
	args := m.Called(ctx, from, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CoachingEvent), args.Error(1)
}

func (m *MockEventRepository) Insert(ctx context.Context, ev models.CoachingEvent) (int64, error) {
	args := m.Called(ctx, ev)
	return args.Get(0).(int64), args.Error(1)
}
