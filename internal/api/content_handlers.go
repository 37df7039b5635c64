package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/probuilds/sc2coach/internal/errors"
	"github.com/probuilds/sc2coach/internal/models"
)

func (s *Server) handleListContent(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	page, perPage, offset := parsePagination(r)
	filter := models.ContentFilter{
		Kind:    r.URL.Query().Get("kind"),
		Race:    r.URL.Query().Get("race"),
		Matchup: r.URL.Query().Get("matchup"),
		Tag:     r.URL.Query().Get("tag"),
		Limit:   perPage,
		Offset:  offset,
	}

	items, totalCount, err := s.Content.List(r.Context(), filter, user.Subscriber)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, map[string]any{
		"content":     items,
		"page":        page,
		"per_page":    perPage,
		"total_pages": totalPages(totalCount, perPage),
		"total_count": totalCount,
	})
}

func (s *Server) handleSearchContent(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	_, perPage, _ := parsePagination(r)
	items, err := s.Content.Search(r.Context(), r.URL.Query().Get("q"), perPage, user.Subscriber)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"content": items})
}

func (s *Server) handleGetContent(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid content ID"))
		return
	}

	item, err := s.Content.Get(r.Context(), id, user.Subscriber)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"content": item})
}
