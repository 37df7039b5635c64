package analysis_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/probuilds/sc2coach/internal/analysis"
	"github.com/probuilds/sc2coach/internal/models"
)

func TestRankIssues_WorkerDeficitOnly(t *testing.T) {
	fp := &models.ReplayFingerprint{
		Economy: &models.EconomyMetrics{
			Workers3Min: intPtr(6),
		},
	}

	issues := analysis.RankIssues(fp, nil, 0)
	require.Len(t, issues, 1)
	assert.Equal(t, 18, issues[0].PointsLost) // deficit 6 x 3 points
	assert.Equal(t, models.SeverityCritical, issues[0].Severity)
	assert.Contains(t, issues[0].Description, "6 workers at 3:00")
}

func TestRankIssues_CleanGameHasNoIssues(t *testing.T) {
	fp := &models.ReplayFingerprint{
		Economy: &models.EconomyMetrics{
			Workers3Min:          intPtr(13),
			Workers5Min:          intPtr(30),
			Workers7Min:          intPtr(48),
			SupplyBlockCount:     intPtr(0),
			TotalSupplyBlockTime: floatPtr(0),
			AvgMineralFloat5Min:  floatPtr(600),
			AvgGasFloat5Min:      floatPtr(200),
		},
	}
	bench := &models.BuildOrderBenchmark{
		Timings: map[string]float64{"barracks": 45},
	}
	result := analysis.Compare(&models.ReplayFingerprint{
		Timings: map[string]*float64{"barracks": floatPtr(46)},
		Economy: fp.Economy,
	}, bench)

	issues := analysis.RankIssues(fp, result, 0)
	assert.NotNil(t, issues)
	assert.Empty(t, issues)
}

func TestRankIssues_SupplyBuckets(t *testing.T) {
	tests := []struct {
		name           string
		count          int
		totalTime      float64
		expectIssue    bool
		expectPoints   int
		expectSeverity models.IssueSeverity
	}{
		{
			name:           "30s and over is a problem",
			count:          2,
			totalTime:      40,
			expectIssue:    true,
			expectPoints:   38, // round(2*15 + 40/5)
			expectSeverity: models.SeverityCritical,
		},
		{
			name:           "10-30s is a warning",
			count:          1,
			totalTime:      15,
			expectIssue:    true,
			expectPoints:   10, // round(1*8 + 15/10)
			expectSeverity: models.SeverityWarning,
		},
		{
			name:        "under 10s stays informational",
			count:       1,
			totalTime:   6,
			expectIssue: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fp := &models.ReplayFingerprint{
				Economy: &models.EconomyMetrics{
					SupplyBlockCount:     intPtr(tt.count),
					TotalSupplyBlockTime: floatPtr(tt.totalTime),
				},
			}
			issues := analysis.RankIssues(fp, nil, 0)
			if !tt.expectIssue {
				assert.Empty(t, issues)
				return
			}
			require.Len(t, issues, 1)
			assert.Equal(t, tt.expectPoints, issues[0].PointsLost)
			assert.Equal(t, tt.expectSeverity, issues[0].Severity)
		})
	}
}

func TestRankIssues_LateTimings(t *testing.T) {
	deviation20 := 20.0
	deviation40 := 40.0
	deviation12 := 12.0
	result := &models.ComparisonResult{
		TimingComparison: map[string]models.TimingComparison{
			"factory":  {Deviation: &deviation20, Status: models.TimingLate},
			"starport": {Deviation: &deviation40, Status: models.TimingLate},
			"barracks": {Deviation: &deviation12, Status: models.TimingLate},
		},
	}

	issues := analysis.RankIssues(&models.ReplayFingerprint{}, result, 0)
	require.Len(t, issues, 2) // 12s is within the 15s grace window

	// Sorted by points lost: starport (20) before factory (10).
	assert.Contains(t, issues[0].Description, "starport")
	assert.Equal(t, 20, issues[0].PointsLost)
	assert.Equal(t, models.SeverityCritical, issues[0].Severity)

	assert.Contains(t, issues[1].Description, "factory")
	assert.Equal(t, 10, issues[1].PointsLost)
	assert.Equal(t, models.SeverityWarning, issues[1].Severity)
}

func TestRankIssues_ResourceFloat(t *testing.T) {
	fp := &models.ReplayFingerprint{
		Economy: &models.EconomyMetrics{
			AvgMineralFloat5Min: floatPtr(2200),
			AvgGasFloat5Min:     floatPtr(800),
		},
	}

	issues := analysis.RankIssues(fp, nil, 0)
	require.Len(t, issues, 1)
	assert.Equal(t, 5, issues[0].PointsLost) // round((3000-2000)/200)
	assert.Equal(t, models.SeverityWarning, issues[0].Severity)
}

func TestRankIssues_TopThreeByPointsLost(t *testing.T) {
	// Five candidates with distinct point losses:
	// supply 38, workers 6/8/4, float 5.
	fp := &models.ReplayFingerprint{
		Economy: &models.EconomyMetrics{
			SupplyBlockCount:     intPtr(2),
			TotalSupplyBlockTime: floatPtr(40),
			Workers3Min:          intPtr(10), // deficit 2 -> 6
			Workers5Min:          intPtr(25), // deficit 4 -> 8
			Workers7Min:          intPtr(44), // deficit 4 -> 4
			AvgMineralFloat5Min:  floatPtr(2400),
			AvgGasFloat5Min:      floatPtr(600), // combined 3000 -> 5
		},
	}

	issues := analysis.RankIssues(fp, nil, 0)
	require.Len(t, issues, 3)
	assert.Equal(t, []int{38, 8, 6}, []int{issues[0].PointsLost, issues[1].PointsLost, issues[2].PointsLost})
}

func TestRankIssues_StableTies(t *testing.T) {
	// Deficit 2 at 3:00 and deficit 6 at 7:00 both cost 6 points. Ties
	// keep generation order, so the 3:00 issue must stay first.
	fp := &models.ReplayFingerprint{
		Economy: &models.EconomyMetrics{
			Workers3Min: intPtr(10),
			Workers7Min: intPtr(42),
		},
	}

	issues := analysis.RankIssues(fp, nil, 0)
	require.Len(t, issues, 2)
	assert.Equal(t, 6, issues[0].PointsLost)
	assert.Contains(t, issues[0].Description, "3:00")
	assert.Equal(t, 6, issues[1].PointsLost)
	assert.Contains(t, issues[1].Description, "7:00")
}

func TestRankIssues_Deterministic(t *testing.T) {
	devA := 22.0
	devB := 35.0
	result := &models.ComparisonResult{
		TimingComparison: map[string]models.TimingComparison{
			"lair":          {Deviation: &devA, Status: models.TimingLate},
			"spawning_pool": {Deviation: &devB, Status: models.TimingLate},
		},
	}
	fp := &models.ReplayFingerprint{
		Economy: &models.EconomyMetrics{
			SupplyBlockCount:     intPtr(1),
			TotalSupplyBlockTime: floatPtr(35),
		},
	}

	first := analysis.RankIssues(fp, result, 5)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, analysis.RankIssues(fp, result, 5))
	}
}
