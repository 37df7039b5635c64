package services

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/probuilds/sc2coach/internal/errors"
	"github.com/probuilds/sc2coach/internal/logger"
	"github.com/probuilds/sc2coach/internal/models"
	"github.com/probuilds/sc2coach/internal/repository"
)

// BuildOrderService handles the build-order benchmark library
type BuildOrderService interface {
	Get(ctx context.Context, id int64) (*models.BuildOrder, error)
	List(ctx context.Context, filter models.BuildOrderFilter) ([]models.BuildOrder, error)
	Benchmark(ctx context.Context, id int64, subscriber bool) (*models.BuildOrderBenchmark, error)
}

type buildOrderService struct {
	buildOrderRepo repository.BuildOrderRepository
}

// NewBuildOrderService creates a new BuildOrderService
func NewBuildOrderService(buildOrderRepo repository.BuildOrderRepository) BuildOrderService {
	return &buildOrderService{buildOrderRepo: buildOrderRepo}
}

// Get returns build-order metadata. Premium builds stay listable; only the
// benchmark payload itself is gated.
func (s *buildOrderService) Get(ctx context.Context, id int64) (*models.BuildOrder, error) {
	log := logger.FromContext(ctx)

	bo, err := s.buildOrderRepo.Get(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("build order", id)
		}
		log.Error("failed to get build order: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return bo, nil
}

func (s *buildOrderService) List(ctx context.Context, filter models.BuildOrderFilter) ([]models.BuildOrder, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing build orders: race=%s, matchup=%s", filter.Race, filter.Matchup)

	orders, err := s.buildOrderRepo.List(ctx, filter)
	if err != nil {
		log.Error("failed to list build orders: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return orders, nil
}

// Benchmark decodes the stored benchmark for a build order. Premium
// benchmarks require an active subscription.
func (s *buildOrderService) Benchmark(ctx context.Context, id int64, subscriber bool) (*models.BuildOrderBenchmark, error) {
	bo, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if bo.Premium && !subscriber {
		return nil, errors.NewSubscriptionRequiredError()
	}

	var bench models.BuildOrderBenchmark
	if err := json.Unmarshal([]byte(bo.BenchmarkJSON), &bench); err != nil {
		logger.FromContext(ctx).Error("failed to unmarshal benchmark for build order %d: %v", id, err)
		return nil, errors.NewInternalError(err)
	}
	return &bench, nil
}
