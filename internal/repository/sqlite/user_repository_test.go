package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/probuilds/sc2coach/internal/db"
	"github.com/probuilds/sc2coach/internal/repository"
	"github.com/probuilds/sc2coach/internal/repository/sqlite"
	"github.com/probuilds/sc2coach/internal/testutil"
)

type UserRepositorySuite struct {
	suite.Suite
	db   *db.DB
	repo repository.UserRepository
}

func (s *UserRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewUserRepository(s.db.DB)
}

func (s *UserRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *UserRepositorySuite) TestUpsert_CreatesThenUpdates() {
	ctx := context.Background()

	created, err := s.repo.Upsert(ctx, "d1", "player", false)
	s.Require().NoError(err)
	s.Require().NotNil(created)
	s.Assert().False(created.Subscriber)

	// A second upsert for the same discord id updates in place.
	updated, err := s.repo.Upsert(ctx, "d1", "player-renamed", true)
	s.Require().NoError(err)
	s.Assert().Equal(created.ID, updated.ID)
	s.Assert().Equal("player-renamed", updated.Username)
	s.Assert().True(updated.Subscriber)
}

func (s *UserRepositorySuite) TestGetByDiscordID_MissingReturnsNil() {
	ctx := context.Background()
	user, err := s.repo.GetByDiscordID(ctx, "unknown")
	s.Require().NoError(err)
	s.Assert().Nil(user)
}

func (s *UserRepositorySuite) TestTouchLastSeen() {
	ctx := context.Background()

	user, err := s.repo.Upsert(ctx, "d1", "player", false)
	s.Require().NoError(err)
	s.Assert().Nil(user.LastSeenAt)

	seen := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)
	s.Require().NoError(s.repo.TouchLastSeen(ctx, user.ID, seen))

	reloaded, err := s.repo.Get(ctx, user.ID)
	s.Require().NoError(err)
	s.Require().NotNil(reloaded.LastSeenAt)
	s.Assert().True(reloaded.LastSeenAt.Equal(seen))
}

func TestUserRepositorySuite(t *testing.T) {
	suite.Run(t, new(UserRepositorySuite))
}
