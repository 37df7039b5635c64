package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Get("/api/health", s.handleHealth)
	// Calendar apps fetch ICS feeds without auth headers.
	r.Get("/api/calendar.ics", s.handleCalendar)

	r.Group(func(r chi.Router) {
		r.Use(s.authMiddleware)

		r.Post("/api/replays", s.handleUploadReplay)
		r.Get("/api/replays", s.handleListReplays)
		r.Get("/api/my-replays", s.handleListReplays)
		r.Get("/api/replays/{id}", s.handleGetReplay)
		r.Delete("/api/replays/{id}", s.handleDeleteReplay)
		r.Get("/api/replays/{id}/analysis", s.handleReplayAnalysis)

		r.Get("/api/build-orders", s.handleListBuildOrders)
		r.Get("/api/build-orders/{id}", s.handleGetBuildOrder)

		r.Get("/api/content", s.handleListContent)
		r.Get("/api/content/search", s.handleSearchContent)
		r.Get("/api/content/{id}", s.handleGetContent)
	})

	return r
}
