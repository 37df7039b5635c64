package benchmark

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/probuilds/sc2coach/internal/logger"
	"github.com/probuilds/sc2coach/internal/models"
	"github.com/probuilds/sc2coach/internal/repository"
)

//go:embed seeds/*.yaml
var seedsFS embed.FS

// seedFile is the on-disk YAML shape coaches author new target builds in.
type seedFile struct {
	Name        string `yaml:"name"`
	Race        string `yaml:"race"`
	Matchup     string `yaml:"matchup"`
	Difficulty  string `yaml:"difficulty"`
	Description string `yaml:"description"`
	Premium     bool   `yaml:"premium"`
	Benchmark   struct {
		Timings     map[string]float64        `yaml:"timings"`
		Composition map[string]map[string]int `yaml:"composition"`
		Production  map[string]map[string]int `yaml:"production"`
	} `yaml:"benchmark"`
}

// Load parses every embedded seed file into storable build orders.
func Load() ([]models.BuildOrder, error) {
	entries, err := seedsFS.ReadDir("seeds")
	if err != nil {
		return nil, err
	}

	var orders []models.BuildOrder
	for _, entry := range entries {
		raw, err := seedsFS.ReadFile("seeds/" + entry.Name())
		if err != nil {
			return nil, err
		}
		var sf seedFile
		if err := yaml.Unmarshal(raw, &sf); err != nil {
			return nil, fmt.Errorf("parse seed %s: %w", entry.Name(), err)
		}
		if sf.Name == "" {
			return nil, fmt.Errorf("seed %s: missing name", entry.Name())
		}

		bench := models.BuildOrderBenchmark{
			Name:        sf.Name,
			Race:        sf.Race,
			Matchup:     sf.Matchup,
			Timings:     sf.Benchmark.Timings,
			Composition: sf.Benchmark.Composition,
			Production:  sf.Benchmark.Production,
		}
		benchJSON, err := json.Marshal(bench)
		if err != nil {
			return nil, fmt.Errorf("marshal seed %s: %w", entry.Name(), err)
		}

		difficulty := sf.Difficulty
		if difficulty == "" {
			difficulty = "standard"
		}
		orders = append(orders, models.BuildOrder{
			Name:          sf.Name,
			Race:          sf.Race,
			Matchup:       sf.Matchup,
			Difficulty:    difficulty,
			Description:   sf.Description,
			BenchmarkJSON: string(benchJSON),
			Premium:       sf.Premium,
		})
	}
	return orders, nil
}

// Seed imports the embedded build orders into the store, skipping any that
// already exist by name.
func Seed(ctx context.Context, repo repository.BuildOrderRepository) error {
	log := logger.FromContext(ctx).WithPrefix("benchmark")

	orders, err := Load()
	if err != nil {
		log.Error("failed to load seed build orders: %v", err)
		return err
	}
	inserted, err := repo.InsertBatch(ctx, orders)
	if err != nil {
		log.Error("failed to seed build orders: %v", err)
		return err
	}
	log.Info("build order seeds: %d loaded, %d newly imported", len(orders), inserted)
	return nil
}
