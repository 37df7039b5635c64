package services

import (
	"context"
	"time"

	"github.com/probuilds/sc2coach/internal/errors"
	"github.com/probuilds/sc2coach/internal/logger"
	"github.com/probuilds/sc2coach/internal/models"
	"github.com/probuilds/sc2coach/internal/repository"
)

// EventService handles the coaching-session calendar
type EventService interface {
	Upcoming(ctx context.Context, from time.Time, limit int) ([]models.CoachingEvent, error)
}

type eventService struct {
	eventRepo repository.EventRepository
}

// NewEventService creates a new EventService
func NewEventService(eventRepo repository.EventRepository) EventService {
	return &eventService{eventRepo: eventRepo}
}

func (s *eventService) Upcoming(ctx context.Context, from time.Time, limit int) ([]models.CoachingEvent, error) {
	log := logger.FromContext(ctx)

	if limit <= 0 {
		limit = 50
	}
	events, err := s.eventRepo.Upcoming(ctx, from, limit)
	if err != nil {
		log.Error("failed to list upcoming events: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return events, nil
}
