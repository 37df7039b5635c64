package services

import (
	"context"

	"github.com/probuilds/sc2coach/internal/analysis"
	"github.com/probuilds/sc2coach/internal/logger"
	"github.com/probuilds/sc2coach/internal/models"
)

// AnalysisReport bundles everything the coaching UI shows for one replay.
// Comparison is nil when no target build was requested; Issues is always
// present, possibly empty.
type AnalysisReport struct {
	Replay      *models.Replay            `json:"replay"`
	Fingerprint *models.ReplayFingerprint `json:"fingerprint"`
	Comparison  *models.ComparisonResult  `json:"comparison,omitempty"`
	Issues      []models.Issue            `json:"issues"`
}

// AnalysisService orchestrates the pure scoring core over stored replays.
// Results are computed fresh on every call and never persisted, so scoring
// changes apply retroactively to old replays.
type AnalysisService interface {
	AnalyzeReplay(ctx context.Context, replayID string, userID int64, subscriber bool, targetBuildID int64, maxIssues int) (*AnalysisReport, error)
}

type analysisService struct {
	replays     ReplayService
	buildOrders BuildOrderService
}

// NewAnalysisService creates a new AnalysisService
func NewAnalysisService(replays ReplayService, buildOrders BuildOrderService) AnalysisService {
	return &analysisService{
		replays:     replays,
		buildOrders: buildOrders,
	}
}

func (s *analysisService) AnalyzeReplay(ctx context.Context, replayID string, userID int64, subscriber bool, targetBuildID int64, maxIssues int) (*AnalysisReport, error) {
	log := logger.FromContext(ctx).WithField("replay_id", replayID)

	replay, err := s.replays.Get(ctx, replayID, userID)
	if err != nil {
		return nil, err
	}

	fp, err := s.replays.Fingerprint(ctx, replay)
	if err != nil {
		return nil, err
	}

	report := &AnalysisReport{
		Replay:      replay,
		Fingerprint: fp,
	}

	var result *models.ComparisonResult
	if targetBuildID != 0 {
		bench, err := s.buildOrders.Benchmark(ctx, targetBuildID, subscriber)
		if err != nil {
			return nil, err
		}
		result = analysis.Compare(fp, bench)
		report.Comparison = result
		log.Debug("compared against build order %d: tier=%s", targetBuildID, result.Tier)
	}

	report.Issues = analysis.RankIssues(fp, result, maxIssues)
	log.Info("analysis complete: %d issues", len(report.Issues))
	return report, nil
}
