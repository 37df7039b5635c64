package repository

import (
	"context"
	"time"

	"github.com/probuilds/sc2coach/internal/models"
)

// ReplayRepository handles replay data access
type ReplayRepository interface {
	Get(ctx context.Context, id string) (*models.Replay, error)
	List(ctx context.Context, filter models.ReplayFilter) ([]models.Replay, error)
	Count(ctx context.Context, filter models.ReplayFilter) (int, error)
	Insert(ctx context.Context, replay models.Replay) error
	UpdateStatus(ctx context.Context, id string, status string) error
	UpdateFingerprint(ctx context.Context, id string, replay models.Replay) error
	Delete(ctx context.Context, id string, userID int64) error
}

// BuildOrderRepository handles build-order benchmark data access
type BuildOrderRepository interface {
	Get(ctx context.Context, id int64) (*models.BuildOrder, error)
	GetByName(ctx context.Context, name string) (*models.BuildOrder, error)
	List(ctx context.Context, filter models.BuildOrderFilter) ([]models.BuildOrder, error)
	Insert(ctx context.Context, bo models.BuildOrder) (int64, error)
	InsertBatch(ctx context.Context, orders []models.BuildOrder) (int, error)
}

// ContentRepository handles coaching content data access
type ContentRepository interface {
	Get(ctx context.Context, id int64) (*models.Content, error)
	List(ctx context.Context, filter models.ContentFilter) ([]models.Content, error)
	Count(ctx context.Context, filter models.ContentFilter) (int, error)
	Search(ctx context.Context, query string, limit int) ([]models.Content, error)
}

// UserRepository handles user data access
type UserRepository interface {
	Get(ctx context.Context, id int64) (*models.User, error)
	GetByDiscordID(ctx context.Context, discordID string) (*models.User, error)
	Upsert(ctx context.Context, discordID, username string, subscriber bool) (*models.User, error)
	TouchLastSeen(ctx context.Context, id int64, t time.Time) error
}

// EventRepository handles coaching-calendar data access
type EventRepository interface {
	Upcoming(ctx context.Context, from time.Time, limit int) ([]models.CoachingEvent, error)
	Insert(ctx context.Context, ev models.CoachingEvent) (int64, error)
}
