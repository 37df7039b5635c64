package analysis

import "github.com/probuilds/sc2coach/internal/models"

const (
	supplyBlockCountPenalty = 10.0
	supplyBlockTimePenalty  = 2.0

	// Blocks starting before 5 minutes stall worker production when it
	// hurts most, so their duration is charged a second time on top of
	// the aggregate time penalty.
	earlyBlockCutoff = 300.0
)

// ScoreSupply computes a 0-100 economy score from supply-block data.
// It returns nil when neither the block count nor the total block time was
// observed: no data must not look like a perfect 100.
func ScoreSupply(econ *models.EconomyMetrics) *float64 {
	if econ == nil {
		return nil
	}
	if econ.SupplyBlockCount == nil && econ.TotalSupplyBlockTime == nil {
		return nil
	}

	score := 100.0
	if econ.SupplyBlockCount != nil {
		score -= supplyBlockCountPenalty * float64(*econ.SupplyBlockCount)
	}
	if econ.TotalSupplyBlockTime != nil {
		score -= supplyBlockTimePenalty * *econ.TotalSupplyBlockTime
	}
	for _, p := range econ.SupplyBlockPeriods {
		if p.Start < earlyBlockCutoff {
			score -= p.Duration
		}
	}

	score = clamp(score, 0, 100)
	return &score
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
