package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/probuilds/sc2coach/internal/models"
)

// MockBuildOrderRepository is a mock implementation of repository.BuildOrderRepository
type MockBuildOrderRepository struct {
	mock.Mock
}

func (m *MockBuildOrderRepository) Get(ctx context.Context, id int64) (*models.BuildOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BuildOrder), args.Error(1)
}

func (m *MockBuildOrderRepository) GetByName(ctx context.Context, name string) (*models.BuildOrder, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BuildOrder), args.Error(1)
}

func (m *MockBuildOrderRepository) List(ctx context.Context, filter models.BuildOrderFilter) ([]models.BuildOrder, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.BuildOrder), args.Error(1)
}

func (m *MockBuildOrderRepository) Insert(ctx context.Context, bo models.BuildOrder) (int64, error) {
	args := m.Called(ctx, bo)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBuildOrderRepository) InsertBatch(ctx context.Context, orders []models.BuildOrder) (int, error) {
	args := m.Called(ctx, orders)
	return args.Int(0), args.Error(1)
}
