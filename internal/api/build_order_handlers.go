package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/probuilds/sc2coach/internal/errors"
	"github.com/probuilds/sc2coach/internal/models"
)

func (s *Server) handleListBuildOrders(w http.ResponseWriter, r *http.Request) {
	_, perPage, offset := parsePagination(r)

	filter := models.BuildOrderFilter{
		Race:       r.URL.Query().Get("race"),
		Matchup:    r.URL.Query().Get("matchup"),
		Difficulty: r.URL.Query().Get("difficulty"),
		Limit:      perPage,
		Offset:     offset,
	}

	orders, err := s.BuildOrders.List(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"build_orders": orders})
}

// handleGetBuildOrder returns metadata plus the benchmark payload. Premium
// benchmarks come back locked (metadata only) for non-subscribers instead
// of erroring, so the library stays browsable.
func (s *Server) handleGetBuildOrder(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid build order ID"))
		return
	}

	bo, err := s.BuildOrders.Get(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}

	resp := map[string]any{"build_order": bo}
	bench, err := s.BuildOrders.Benchmark(r.Context(), id, user.Subscriber)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok && appErr.Code == errors.ErrCodePaymentRequired {
			resp["locked"] = true
		} else {
			handleError(w, r, err)
			return
		}
	} else {
		resp["benchmark"] = bench
	}
	respondJSON(w, r, http.StatusOK, resp)
}
