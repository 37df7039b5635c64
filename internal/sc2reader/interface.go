package sc2reader

import (
	"context"

	"github.com/probuilds/sc2coach/internal/models"
)

// ClientInterface defines the interface for the sc2reader parsing sidecar.
// This interface enables testability by allowing mock implementations.
type ClientInterface interface {
	ParseReplay(ctx context.Context, filename string, data []byte) (*models.ReplayFingerprint, error)
}

// Ensure Client implements the interface
var _ ClientInterface = (*Client)(nil)
