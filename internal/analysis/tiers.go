package analysis

// tierTable maps execution-score cutoffs to letter tiers. The table is
// ordered highest cutoff first and partitions [0,100] with no gaps; treat
// it as a versioned constant, not something to re-derive per call site.
var tierTable = []struct {
	Min  float64
	Tier string
}{
	{90, "S"},
	{80, "A"},
	{70, "B"},
	{60, "C"},
	{0, "D"},
}

// TierFor returns the letter tier for an execution score.
func TierFor(score float64) string {
	for _, t := range tierTable {
		if score >= t.Min {
			return t.Tier
		}
	}
	return "D"
}
