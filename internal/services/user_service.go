package services

import (
	"context"
	"time"

	"github.com/probuilds/sc2coach/internal/errors"
	"github.com/probuilds/sc2coach/internal/logger"
	"github.com/probuilds/sc2coach/internal/models"
	"github.com/probuilds/sc2coach/internal/repository"
)

// UserService resolves authenticated token claims into a stored user
type UserService interface {
	Authenticate(ctx context.Context, discordID, username string, subscriber bool) (*models.User, error)
}

type userService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// Authenticate upserts the user from verified token claims. The subscriber
// flag always follows the token, so a lapsed subscription takes effect on
// the next request.
func (s *userService) Authenticate(ctx context.Context, discordID, username string, subscriber bool) (*models.User, error) {
	log := logger.FromContext(ctx)

	if discordID == "" {
		return nil, errors.NewUnauthorizedError("token has no subject")
	}

	user, err := s.userRepo.Upsert(ctx, discordID, username, subscriber)
	if err != nil {
		log.Error("failed to upsert user: %v", err)
		return nil, errors.NewInternalError(err)
	}

	if err := s.userRepo.TouchLastSeen(ctx, user.ID, time.Now().UTC()); err != nil {
		log.Warn("failed to update last seen for user %d: %v", user.ID, err)
	}
	return user, nil
}
