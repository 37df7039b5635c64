package worker

import (
	"context"

	"github.com/probuilds/sc2coach/internal/benchmark"
	"github.com/probuilds/sc2coach/internal/repository"
)

// ReplayParser is the slice of the replay service jobs need. Declared here
// instead of importing the services package to avoid an import cycle.
type ReplayParser interface {
	Parse(ctx context.Context, replayID string, data []byte) error
}

// ParseReplayJob runs the sidecar parse for an already-created replay row.
// Used by the async upload path so the HTTP response does not wait on the
// parser.
type ParseReplayJob struct {
	Parser   ReplayParser
	ReplayID string
	Data     []byte
}

func (j *ParseReplayJob) Name() string { return "parse_replay" }

func (j *ParseReplayJob) Run(ctx context.Context) error {
	return j.Parser.Parse(ctx, j.ReplayID, j.Data)
}

// SeedBuildOrdersJob imports the embedded benchmark seeds at startup.
type SeedBuildOrdersJob struct {
	Repo repository.BuildOrderRepository
}

func (j *SeedBuildOrdersJob) Name() string { return "seed_build_orders" }

func (j *SeedBuildOrdersJob) Run(ctx context.Context) error {
	return benchmark.Seed(ctx, j.Repo)
}
