package models

// TimingStatus classifies a single timing deviation.
type TimingStatus string

const (
	TimingMissing    TimingStatus = "missing"
	TimingOnTime     TimingStatus = "on_time"
	TimingAcceptable TimingStatus = "acceptable"
	TimingEarly      TimingStatus = "early"
	TimingLate       TimingStatus = "late"
)

// TimingComparison is one benchmark timing checked against the observed
// fingerprint. Actual and Deviation are nil when the timing was never
// measured, which is distinct from being early or late.
type TimingComparison struct {
	Actual    *float64     `json:"actual"`
	Target    float64      `json:"target"`
	Deviation *float64     `json:"deviation"`
	Status    TimingStatus `json:"status"`
}

// UnitComparison is one (time-bucket, unit) count checked against the
// benchmark. A unit absent from the fingerprint counts as zero built,
// unlike timings where absence means "not measured".
type UnitComparison struct {
	Actual     int `json:"actual"`
	Target     int `json:"target"`
	Difference int `json:"difference"`
}

// ComparisonResult is the output of comparing one fingerprint against one
// benchmark. ExecutionScore is nil when the benchmark had nothing to
// compare against; a nil score is "no data", never zero.
type ComparisonResult struct {
	ExecutionScore        *float64                             `json:"execution_score"`
	Tier                  string                               `json:"tier"`
	TimingComparison      map[string]TimingComparison          `json:"timing_comparison"`
	CompositionComparison map[string]map[string]UnitComparison `json:"composition_comparison"`
	ProductionComparison  map[string]map[string]UnitComparison `json:"production_comparison"`
}

// IssueSeverity classifies a coaching issue.
type IssueSeverity string

const (
	SeverityCritical IssueSeverity = "critical"
	SeverityWarning  IssueSeverity = "warning"
	SeverityInfo     IssueSeverity = "info"
)

// Issue is a single coaching finding. Issues are derived, not stored, and
// are regenerated whenever the active fingerprint changes.
type Issue struct {
	Description string        `json:"description"`
	PointsLost  int           `json:"pointsLost"`
	Tip         string        `json:"tip"`
	Severity    IssueSeverity `json:"severity"`
}
