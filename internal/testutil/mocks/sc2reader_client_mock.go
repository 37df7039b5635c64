package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/probuilds/sc2coach/internal/models"
)

// MockSC2ReaderClient is a mock implementation of sc2reader.ClientInterface
type MockSC2ReaderClient struct {
	mock.Mock
}

func (m *MockSC2ReaderClient) ParseReplay(ctx context.Context, filename string, data []byte) (*models.ReplayFingerprint, error) {
	args := m.Called(ctx, filename, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReplayFingerprint), args.Error(1)
}
