package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/probuilds/sc2coach/internal/logger"
	"github.com/probuilds/sc2coach/internal/models"
	"github.com/probuilds/sc2coach/internal/repository"
)

type eventRepository struct {
	db *sql.DB
}

// NewEventRepository creates a new EventRepository implementation
func NewEventRepository(db *sql.DB) repository.EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Upcoming(ctx context.Context, from time.Time, limit int) ([]models.CoachingEvent, error) {
	log := logger.FromContext(ctx).WithPrefix("event_repo")
	log.Debug("listing upcoming events from %s", from.Format(time.RFC3339))

	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, `
SELECT id, title, coach, starts_at, duration_minutes, premium
FROM coaching_events
WHERE starts_at >= ?
ORDER BY starts_at ASC
LIMIT ?
`, from, limit)
	if err != nil {
		log.Error("failed to list upcoming events: %v", err)
		return nil, err
	}
	defer rows.Close()

	var events []models.CoachingEvent
	for rows.Next() {
		var ev models.CoachingEvent
		if err := rows.Scan(&ev.ID, &ev.Title, &ev.Coach, &ev.StartsAt, &ev.DurationMinutes, &ev.Premium); err != nil {
			log.Error("failed to scan event row: %v", err)
			return nil, err
		}
		events = append(events, ev)
	}
	log.Debug("found %d upcoming events", len(events))
	return events, rows.Err()
}

func (r *eventRepository) Insert(ctx context.Context, ev models.CoachingEvent) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("event_repo")
	log.Debug("inserting event: title=%s", ev.Title)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO coaching_events (title, coach, starts_at, duration_minutes, premium)
VALUES (?, ?, ?, ?, ?)
`, ev.Title, ev.Coach, ev.StartsAt, ev.DurationMinutes, ev.Premium)
	if err != nil {
		log.Error("failed to insert event: %v", err)
		return 0, err
	}
	return res.LastInsertId()
}
