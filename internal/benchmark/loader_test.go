package benchmark_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/probuilds/sc2coach/internal/benchmark"
	"github.com/probuilds/sc2coach/internal/models"
)

func TestLoad(t *testing.T) {
	orders, err := benchmark.Load()
	require.NoError(t, err)
	require.NotEmpty(t, orders)

	for _, bo := range orders {
		assert.NotEmpty(t, bo.Name)
		assert.NotEmpty(t, bo.Race)
		assert.NotEmpty(t, bo.Matchup)
		assert.NotEmpty(t, bo.Difficulty)

		var bench models.BuildOrderBenchmark
		require.NoError(t, json.Unmarshal([]byte(bo.BenchmarkJSON), &bench), "seed %s", bo.Name)
		assert.Equal(t, bo.Name, bench.Name)
		assert.NotEmpty(t, bench.Timings, "seed %s must have benchmark timings", bo.Name)
	}
}

func TestLoad_KnownSeedTimings(t *testing.T) {
	orders, err := benchmark.Load()
	require.NoError(t, err)

	var tvz *models.BuildOrder
	for i := range orders {
		if orders[i].Name == "TvZ 2-1-1 Marine Medivac" {
			tvz = &orders[i]
			break
		}
	}
	require.NotNil(t, tvz, "stock TvZ seed missing")

	var bench models.BuildOrderBenchmark
	require.NoError(t, json.Unmarshal([]byte(tvz.BenchmarkJSON), &bench))
	assert.Equal(t, 45.0, bench.Timings["barracks"])
	assert.Equal(t, 12, bench.Production["5"]["marine"])
}
