package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/probuilds/sc2coach/internal/models"
)

// MockReplayRepository is a mock implementation of repository.ReplayRepository
type MockReplayRepository struct {
	mock.Mock
}

func (m *MockReplayRepository) Get(ctx context.Context, id string) (*models.Replay, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Replay), args.Error(1)
}

func (m *MockReplayRepository) List(ctx context.Context, filter models.ReplayFilter) ([]models.Replay, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Replay), args.Error(1)
}

func (m *MockReplayRepository) Count(ctx context.Context, filter models.ReplayFilter) (int, error) {
	args := m.Called(ctx, filter)
	return args.Int(0), args.Error(1)
}

func (m *MockReplayRepository) Insert(ctx context.Context, replay models.Replay) error {
	args := m.Called(ctx, replay)
	return args.Error(0)
}

func (m *MockReplayRepository) UpdateStatus(ctx context.Context, id string, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockReplayRepository) UpdateFingerprint(ctx context.Context, id string, replay models.Replay) error {
	args := m.Called(ctx, id, replay)
	return args.Error(0)
}

func (m *MockReplayRepository) Delete(ctx context.Context, id string, userID int64) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}
