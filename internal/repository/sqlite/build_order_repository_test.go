package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/probuilds/sc2coach/internal/db"
	"github.com/probuilds/sc2coach/internal/models"
	"github.com/probuilds/sc2coach/internal/repository"
	"github.com/probuilds/sc2coach/internal/repository/sqlite"
	"github.com/probuilds/sc2coach/internal/testutil"
)

type BuildOrderRepositorySuite struct {
	suite.Suite
	db   *db.DB
	repo repository.BuildOrderRepository
}

func (s *BuildOrderRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewBuildOrderRepository(s.db.DB)
}

func (s *BuildOrderRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func buildOrderFixture(name, race, matchup string) models.BuildOrder {
	return models.BuildOrder{
		Name:          name,
		Race:          race,
		Matchup:       matchup,
		Difficulty:    "standard",
		BenchmarkJSON: `{"name":"` + name + `","timings":{"barracks":45}}`,
	}
}

func (s *BuildOrderRepositorySuite) TestInsertAndGet() {
	ctx := context.Background()

	id, err := s.repo.Insert(ctx, buildOrderFixture("TvZ 2-1-1", "terran", "TvZ"))
	s.Require().NoError(err)
	s.Assert().Greater(id, int64(0))

	bo, err := s.repo.Get(ctx, id)
	s.Require().NoError(err)
	s.Assert().Equal("TvZ 2-1-1", bo.Name)
	s.Assert().Contains(bo.BenchmarkJSON, `"barracks":45`)
}

func (s *BuildOrderRepositorySuite) TestGetByName_MissingReturnsNil() {
	ctx := context.Background()
	bo, err := s.repo.GetByName(ctx, "does not exist")
	s.Require().NoError(err)
	s.Assert().Nil(bo)
}

func (s *BuildOrderRepositorySuite) TestInsertBatch_SkipsExisting() {
	ctx := context.Background()

	_, err := s.repo.Insert(ctx, buildOrderFixture("TvZ 2-1-1", "terran", "TvZ"))
	s.Require().NoError(err)

	inserted, err := s.repo.InsertBatch(ctx, []models.BuildOrder{
		buildOrderFixture("TvZ 2-1-1", "terran", "TvZ"),
		buildOrderFixture("PvT Blink", "protoss", "PvT"),
	})
	s.Require().NoError(err)
	s.Assert().Equal(1, inserted)

	existing, err := s.repo.GetByName(ctx, "PvT Blink")
	s.Require().NoError(err)
	s.Require().NotNil(existing)
}

func (s *BuildOrderRepositorySuite) TestList_FilterByRace() {
	ctx := context.Background()

	_, err := s.repo.Insert(ctx, buildOrderFixture("TvZ 2-1-1", "terran", "TvZ"))
	s.Require().NoError(err)
	_, err = s.repo.Insert(ctx, buildOrderFixture("ZvT Ling Bane", "zerg", "ZvT"))
	s.Require().NoError(err)

	terran, err := s.repo.List(ctx, models.BuildOrderFilter{Race: "terran"})
	s.Require().NoError(err)
	s.Require().Len(terran, 1)
	s.Assert().Equal("TvZ 2-1-1", terran[0].Name)
}

func TestBuildOrderRepositorySuite(t *testing.T) {
	suite.Run(t, new(BuildOrderRepositorySuite))
}
