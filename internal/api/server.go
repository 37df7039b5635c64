package api

import (
	"github.com/probuilds/sc2coach/internal/services"
	"github.com/probuilds/sc2coach/internal/worker"
)

// Server holds the HTTP layer's dependencies. Handlers stay thin; business
// rules live in the services.
type Server struct {
	Replays     services.ReplayService
	Analysis    services.AnalysisService
	BuildOrders services.BuildOrderService
	Content     services.ContentService
	Users       services.UserService
	Events      services.EventService

	ParsePool *worker.Pool

	AuthSecret     string
	MaxUploadBytes int64
	MaxIssues      int
}
