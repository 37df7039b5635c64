package analysis

import (
	"math"

	"github.com/probuilds/sc2coach/internal/models"
)

// Timing status thresholds, in seconds. Both boundaries are inclusive:
// a deviation of exactly 5 is on_time, exactly 10 is acceptable.
const (
	onTimeThreshold     = 5.0
	acceptableThreshold = 10.0
)

// Per-second penalty applied to absolute timing deviations when folding
// them into the timing sub-score.
const timingDeviationPenalty = 4.0

// Worker-count benchmarks at the 3/5/7 minute checkpoints and the penalty
// per missing worker applied to the macro sub-score. These weights drive
// the headline score only; the issue ranker keeps its own table.
var workerBenchmarks = []struct {
	Minute  int
	Target  int
	Penalty float64
}{
	{3, 12, 2.0},
	{5, 29, 1.5},
	{7, 48, 1.0},
}

// Resource-float penalty: one point per full 100 minerals+gas banked above
// this threshold at the 5 minute mark.
const floatPenaltyThreshold = 2000.0

// A production benchmark counts as hit when the built count is within
// this many units of the target.
const productionTolerance = 2

// Sub-score weights for the execution-score aggregate. Components with no
// underlying data are dropped and the remaining weights renormalized.
const (
	timingWeight     = 0.40
	macroWeight      = 0.30
	productionWeight = 0.20
	resourceWeight   = 0.10
)

// Compare aligns a replay fingerprint against a build-order benchmark and
// produces per-category deviations plus the aggregate execution score and
// tier. The benchmark is read-only; the result is computed fresh on every
// call and never cached.
func Compare(fp *models.ReplayFingerprint, bench *models.BuildOrderBenchmark) *models.ComparisonResult {
	result := &models.ComparisonResult{
		TimingComparison:      compareTimings(fp, bench),
		CompositionComparison: compareUnits(fp, bench.Composition),
		ProductionComparison:  compareUnits(fp, bench.Production),
	}

	if comparableEntries(bench) == 0 {
		// Nothing to compare against: "no data" must stay distinct from
		// a score of zero.
		return result
	}

	score := executionScore(fp, result)
	if score != nil {
		result.ExecutionScore = score
		result.Tier = TierFor(*score)
	}
	return result
}

func comparableEntries(bench *models.BuildOrderBenchmark) int {
	n := len(bench.Timings)
	for _, units := range bench.Composition {
		n += len(units)
	}
	for _, units := range bench.Production {
		n += len(units)
	}
	return n
}

func compareTimings(fp *models.ReplayFingerprint, bench *models.BuildOrderBenchmark) map[string]models.TimingComparison {
	out := make(map[string]models.TimingComparison, len(bench.Timings))
	for key, target := range bench.Timings {
		actual := fp.Timings[key]
		if actual == nil {
			out[key] = models.TimingComparison{Target: target, Status: models.TimingMissing}
			continue
		}
		deviation := *actual - target
		out[key] = models.TimingComparison{
			Actual:    actual,
			Target:    target,
			Deviation: &deviation,
			Status:    classifyDeviation(deviation),
		}
	}
	return out
}

func classifyDeviation(d float64) models.TimingStatus {
	abs := math.Abs(d)
	switch {
	case abs <= onTimeThreshold:
		return models.TimingOnTime
	case abs <= acceptableThreshold:
		return models.TimingAcceptable
	case d > 0:
		return models.TimingLate
	default:
		return models.TimingEarly
	}
}

func compareUnits(fp *models.ReplayFingerprint, target map[string]map[string]int) map[string]map[string]models.UnitComparison {
	if len(target) == 0 {
		return nil
	}
	out := make(map[string]map[string]models.UnitComparison, len(target))
	for bucket, units := range target {
		bucketOut := make(map[string]models.UnitComparison, len(units))
		for unit, want := range units {
			// Absent production data means the unit was not built, not
			// that it went unmeasured.
			actual := 0
			if fp.ProductionTimeline != nil {
				actual = fp.ProductionTimeline[bucket][unit]
			}
			bucketOut[unit] = models.UnitComparison{
				Actual:     actual,
				Target:     want,
				Difference: actual - want,
			}
		}
		out[bucket] = bucketOut
	}
	return out
}

// executionScore combines the timing, macro, production and resource
// sub-scores into one weighted 0-100 aggregate. It returns nil when no
// sub-score had data to work with.
func executionScore(fp *models.ReplayFingerprint, result *models.ComparisonResult) *float64 {
	var totalWeight, weighted float64

	if len(result.TimingComparison) > 0 {
		weighted += timingWeight * timingScore(result.TimingComparison)
		totalWeight += timingWeight
	}
	if macro, ok := macroScore(fp.Economy); ok {
		weighted += macroWeight * macro
		totalWeight += macroWeight
	}
	if prod, ok := productionScore(result.ProductionComparison); ok {
		weighted += productionWeight * prod
		totalWeight += productionWeight
	}
	if res, ok := resourceScore(fp.Economy); ok {
		weighted += resourceWeight * res
		totalWeight += resourceWeight
	}

	if totalWeight == 0 {
		return nil
	}
	score := clamp(weighted/totalWeight, 0, 100)
	return &score
}

// timingScore is the mean of max(0, 100 - 4*|deviation|) across all timing
// comparisons. A benchmark timing the player never hit scores zero.
func timingScore(timings map[string]models.TimingComparison) float64 {
	var sum float64
	for _, tc := range timings {
		if tc.Deviation == nil {
			continue
		}
		sum += math.Max(0, 100-timingDeviationPenalty*math.Abs(*tc.Deviation))
	}
	return sum / float64(len(timings))
}

// macroScore starts from the supply score and subtracts worker-count
// deficits against the fixed 12/29/48 checkpoints.
func macroScore(econ *models.EconomyMetrics) (float64, bool) {
	supply := ScoreSupply(econ)

	var penalty float64
	haveWorkers := false
	if econ != nil {
		counts := []*int{econ.Workers3Min, econ.Workers5Min, econ.Workers7Min}
		for i, wb := range workerBenchmarks {
			if counts[i] == nil {
				continue
			}
			haveWorkers = true
			if deficit := wb.Target - *counts[i]; deficit > 0 {
				penalty += wb.Penalty * float64(deficit)
			}
		}
	}

	if supply == nil && !haveWorkers {
		return 0, false
	}
	base := 100.0
	if supply != nil {
		base = *supply
	}
	return clamp(base-penalty, 0, 100), true
}

func productionScore(prod map[string]map[string]models.UnitComparison) (float64, bool) {
	total, hits := 0, 0
	for _, units := range prod {
		for _, uc := range units {
			total++
			if uc.Difference >= -productionTolerance && uc.Difference <= productionTolerance {
				hits++
			}
		}
	}
	if total == 0 {
		return 0, false
	}
	return 100 * float64(hits) / float64(total), true
}

func resourceScore(econ *models.EconomyMetrics) (float64, bool) {
	if econ == nil || (econ.AvgMineralFloat5Min == nil && econ.AvgGasFloat5Min == nil) {
		return 0, false
	}
	combined := 0.0
	if econ.AvgMineralFloat5Min != nil {
		combined += *econ.AvgMineralFloat5Min
	}
	if econ.AvgGasFloat5Min != nil {
		combined += *econ.AvgGasFloat5Min
	}
	penalty := 0.0
	if combined > floatPenaltyThreshold {
		penalty = math.Floor((combined - floatPenaltyThreshold) / 100)
	}
	return clamp(100-penalty, 0, 100), true
}
