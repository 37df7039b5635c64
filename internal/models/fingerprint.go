package models

// ReplayFingerprint is the per-game metric profile for one player's
// performance in one match, as produced by the external sc2reader sidecar.
// All "per-minute" and "per-timing" numeric fields are pointers: absence
// means "not observed", never zero.
type ReplayFingerprint struct {
	Matchup    string              `json:"matchup"`
	Race       string              `json:"race"`
	PlayerName string              `json:"player_name"`
	Metadata   Metadata            `json:"metadata"`
	Economy    *EconomyMetrics     `json:"economy"`
	Timings    map[string]*float64 `json:"timings"`
	Sequences  Sequences           `json:"sequences"`

	// ProductionTimeline maps minute-bucket ("3", "5", ...) to cumulative
	// unit counts at that point in the game.
	ProductionTimeline map[string]map[string]int `json:"production_timeline"`

	Tactical    *TacticalMetrics    `json:"tactical"`
	Micro       *MicroMetrics       `json:"micro"`
	Positioning *PositioningMetrics `json:"positioning"`
}

type Metadata struct {
	Map          string  `json:"map"`
	Duration     float64 `json:"duration"`
	Result       string  `json:"result"`
	OpponentRace string  `json:"opponent_race"`
	GameDate     string  `json:"game_date"`
}

type EconomyMetrics struct {
	Workers3Min          *int                `json:"workers_3min"`
	Workers5Min          *int                `json:"workers_5min"`
	Workers7Min          *int                `json:"workers_7min"`
	SupplyBlockCount     *int                `json:"supply_block_count"`
	TotalSupplyBlockTime *float64            `json:"total_supply_block_time"`
	SupplyBlockPeriods   []SupplyBlockPeriod `json:"supply_block_periods"`
	AvgMineralFloat5Min  *float64            `json:"avg_mineral_float_5min"`
	AvgGasFloat5Min      *float64            `json:"avg_gas_float_5min"`
	MaxMineralFloat      *float64            `json:"max_mineral_float"`
	MaxGasFloat          *float64            `json:"max_gas_float"`
}

// SupplyBlockPeriod is one interval during which production was halted
// because supply capacity was exhausted. Times are seconds from game start.
type SupplyBlockPeriod struct {
	Start    float64 `json:"start"`
	End      float64 `json:"end"`
	Duration float64 `json:"duration"`
	Severity string  `json:"severity"`
}

type Sequences struct {
	TechSequence    []string `json:"tech_sequence"`
	BuildSequence   []string `json:"build_sequence"`
	UpgradeSequence []string `json:"upgrade_sequence"`
}

type TacticalMetrics struct {
	MoveoutTimes    []float64 `json:"moveout_times"`
	HarassCount     *int      `json:"harass_count"`
	EngagementCount *int      `json:"engagement_count"`
}

type MicroMetrics struct {
	SelectionsPerMinute  *float64 `json:"selections_per_minute"`
	CameraMovesPerMinute *float64 `json:"camera_moves_per_minute"`
	ControlGroupsUsed    *int     `json:"control_groups_used"`
}

type PositioningMetrics struct {
	ProxyBuildings              *int     `json:"proxy_buildings"`
	AvgBuildingDistanceFromMain *float64 `json:"avg_building_distance_from_main"`
}

// BuildOrderBenchmark is a named reference profile used as the right-hand
// side of comparisons. It is never mutated by the comparator.
type BuildOrderBenchmark struct {
	Name    string `json:"name"`
	Race    string `json:"race"`
	Matchup string `json:"matchup"`

	// Timings maps building/tech name to the expected timestamp in seconds.
	Timings map[string]float64 `json:"timings"`

	// Composition and Production map time-bucket to expected unit counts.
	Composition map[string]map[string]int `json:"composition"`
	Production  map[string]map[string]int `json:"production"`
}
