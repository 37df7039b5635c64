package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/probuilds/sc2coach/internal/models"
)

// DefaultMaxIssues caps how many coaching issues are surfaced per replay.
const DefaultMaxIssues = 3

// Supply-block severity buckets, by total blocked time in seconds. Blocks
// totalling under the warning threshold are informational only and never
// surfaced as an issue.
const (
	supplyProblemThreshold = 30.0
	supplyWarningThreshold = 10.0
)

// Late-timing issue thresholds, in seconds past the benchmark.
const (
	lateTimingThreshold   = 15.0
	criticalTimingOverrun = 30.0
)

// Resource-float issue threshold for combined average mineral+gas bank.
const floatIssueThreshold = 2500.0

// Worker-deficit checkpoints for coaching issues. These point weights are
// deliberately independent of the comparator's macro penalties: one table
// tunes the headline score, this one tunes coaching priority.
var workerIssueBenchmarks = []struct {
	Label    string
	Target   int
	Points   int
	Severity models.IssueSeverity
}{
	{"3:00", 12, 3, models.SeverityCritical},
	{"5:00", 29, 2, models.SeverityWarning},
	{"7:00", 48, 1, models.SeverityWarning},
}

// RankIssues turns a fingerprint (and optionally a comparison result) into
// at most max human-readable coaching issues, sorted by estimated points
// lost. Every candidate is computed independently before ranking, so the
// output is deterministic for identical input. Pass max <= 0 for the
// default cap.
func RankIssues(fp *models.ReplayFingerprint, result *models.ComparisonResult, max int) []models.Issue {
	if max <= 0 {
		max = DefaultMaxIssues
	}

	issues := []models.Issue{}
	issues = append(issues, supplyIssues(fp)...)
	issues = append(issues, workerIssues(fp)...)
	issues = append(issues, timingIssues(result)...)
	issues = append(issues, floatIssues(fp)...)

	// Stable: ties keep generation order (supply, workers, timings, float).
	sort.SliceStable(issues, func(i, j int) bool {
		return issues[i].PointsLost > issues[j].PointsLost
	})
	if len(issues) > max {
		issues = issues[:max]
	}
	return issues
}

func supplyIssues(fp *models.ReplayFingerprint) []models.Issue {
	econ := economy(fp)
	if econ == nil || econ.TotalSupplyBlockTime == nil {
		return nil
	}
	totalTime := *econ.TotalSupplyBlockTime
	count := 0
	if econ.SupplyBlockCount != nil {
		count = *econ.SupplyBlockCount
	}

	switch {
	case totalTime >= supplyProblemThreshold:
		return []models.Issue{{
			Description: fmt.Sprintf("Supply blocked %d times for %.0f seconds total", count, totalTime),
			PointsLost:  round(float64(count)*15 + totalTime/5),
			Tip:         "Build supply when you hit two-thirds of your cap, not when you reach it.",
			Severity:    models.SeverityCritical,
		}}
	case totalTime >= supplyWarningThreshold:
		return []models.Issue{{
			Description: fmt.Sprintf("Brief supply blocks: %d blocks, %.0f seconds total", count, totalTime),
			PointsLost:  round(float64(count)*8 + totalTime/10),
			Tip:         "Queue your next supply structure one production cycle earlier.",
			Severity:    models.SeverityWarning,
		}}
	default:
		return nil
	}
}

func workerIssues(fp *models.ReplayFingerprint) []models.Issue {
	econ := economy(fp)
	if econ == nil {
		return nil
	}
	counts := []*int{econ.Workers3Min, econ.Workers5Min, econ.Workers7Min}

	var issues []models.Issue
	for i, wb := range workerIssueBenchmarks {
		if counts[i] == nil {
			continue
		}
		deficit := wb.Target - *counts[i]
		if deficit <= 0 {
			continue
		}
		issues = append(issues, models.Issue{
			Description: fmt.Sprintf("Only %d workers at %s (target %d)", *counts[i], wb.Label, wb.Target),
			PointsLost:  deficit * wb.Points,
			Tip:         "Never stop worker production before you are on three bases.",
			Severity:    wb.Severity,
		})
	}
	return issues
}

func timingIssues(result *models.ComparisonResult) []models.Issue {
	if result == nil || len(result.TimingComparison) == 0 {
		return nil
	}

	// Map order is randomized; sort keys so identical input always yields
	// identical issue order.
	keys := make([]string, 0, len(result.TimingComparison))
	for key := range result.TimingComparison {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var issues []models.Issue
	for _, key := range keys {
		tc := result.TimingComparison[key]
		if tc.Deviation == nil || *tc.Deviation <= lateTimingThreshold {
			continue
		}
		severity := models.SeverityWarning
		if *tc.Deviation > criticalTimingOverrun {
			severity = models.SeverityCritical
		}
		issues = append(issues, models.Issue{
			Description: fmt.Sprintf("%s completed %.0f seconds behind the target build", key, *tc.Deviation),
			PointsLost:  round(*tc.Deviation / 2),
			Tip:         fmt.Sprintf("Rehearse the opening until %s lands within 10 seconds of the benchmark.", key),
			Severity:    severity,
		})
	}
	return issues
}

func floatIssues(fp *models.ReplayFingerprint) []models.Issue {
	econ := economy(fp)
	if econ == nil || (econ.AvgMineralFloat5Min == nil && econ.AvgGasFloat5Min == nil) {
		return nil
	}
	combined := 0.0
	if econ.AvgMineralFloat5Min != nil {
		combined += *econ.AvgMineralFloat5Min
	}
	if econ.AvgGasFloat5Min != nil {
		combined += *econ.AvgGasFloat5Min
	}
	if combined <= floatIssueThreshold {
		return nil
	}
	return []models.Issue{{
		Description: fmt.Sprintf("Averaging %.0f unspent resources after 5:00", combined),
		PointsLost:  round((combined - floatPenaltyThreshold) / 200),
		Tip:         "Add production structures or expand when your bank climbs past 1000.",
		Severity:    models.SeverityWarning,
	}}
}

func economy(fp *models.ReplayFingerprint) *models.EconomyMetrics {
	if fp == nil {
		return nil
	}
	return fp.Economy
}

func round(v float64) int {
	return int(math.Round(v))
}
