package api

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/probuilds/sc2coach/internal/errors"
	"github.com/probuilds/sc2coach/internal/logger"
	"github.com/probuilds/sc2coach/internal/models"
	"github.com/probuilds/sc2coach/internal/worker"
)

func (s *Server) handleUploadReplay(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	user := userFromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, s.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.MaxUploadBytes); err != nil {
		log.Warn("rejected upload: %v", err)
		handleError(w, r, errors.NewBadRequestError("invalid or oversized multipart upload"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		handleError(w, r, errors.NewValidationError("file", "replay file is required"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		log.Error("failed to read upload: %v", err)
		handleError(w, r, errors.NewInternalError(err))
		return
	}

	log = log.WithField("filename", header.Filename)
	log.Info("received replay upload (%d bytes)", len(data))

	targetBuildID, err := optionalInt64(r.FormValue("target_build_id"))
	if err != nil {
		handleError(w, r, errors.NewValidationError("target_build_id", "must be an integer"))
		return
	}

	if isAsync(r.FormValue("async")) {
		replay, err := s.Replays.Create(r.Context(), user.ID, header.Filename)
		if err != nil {
			handleError(w, r, err)
			return
		}
		s.ParsePool.Submit(&worker.ParseReplayJob{
			Parser:   s.Replays,
			ReplayID: replay.ID,
			Data:     data,
		})
		log.Info("replay queued for background parsing: id=%s", replay.ID)
		respondJSON(w, r, http.StatusAccepted, map[string]any{"replay": replay})
		return
	}

	replay, err := s.Replays.Upload(r.Context(), user.ID, header.Filename, data)
	if err != nil {
		handleError(w, r, err)
		return
	}

	report, err := s.Analysis.AnalyzeReplay(r.Context(), replay.ID, user.ID, user.Subscriber, targetBuildID, s.MaxIssues)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, report)
}

func (s *Server) handleListReplays(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	user := userFromContext(r.Context())

	page, perPage, offset := parsePagination(r)
	orderBy := r.URL.Query().Get("order_by")
	orderDir := strings.ToUpper(r.URL.Query().Get("order_dir"))

	filter := models.ReplayFilter{
		UserID:   user.ID,
		Matchup:  r.URL.Query().Get("matchup"),
		Race:     r.URL.Query().Get("race"),
		Result:   r.URL.Query().Get("result"),
		Limit:    perPage,
		Offset:   offset,
		OrderBy:  orderBy,
		OrderDir: orderDir,
	}

	replays, totalCount, err := s.Replays.List(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}

	log.Debug("found %d replays", len(replays))
	respondJSON(w, r, http.StatusOK, map[string]any{
		"replays":     replays,
		"page":        page,
		"per_page":    perPage,
		"total_pages": totalPages(totalCount, perPage),
		"total_count": totalCount,
	})
}

func (s *Server) handleGetReplay(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	replay, err := s.Replays.Get(r.Context(), chi.URLParam(r, "id"), user.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"replay": replay})
}

func (s *Server) handleDeleteReplay(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	if err := s.Replays.Delete(r.Context(), chi.URLParam(r, "id"), user.ID); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleReplayAnalysis recomputes the analysis for a stored replay. Nothing
// is cached, so scoring updates apply to old replays immediately.
func (s *Server) handleReplayAnalysis(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	targetBuildID, err := optionalInt64(r.URL.Query().Get("target_build_id"))
	if err != nil {
		handleError(w, r, errors.NewValidationError("target_build_id", "must be an integer"))
		return
	}

	maxIssues := s.MaxIssues
	if v := r.URL.Query().Get("max_issues"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			maxIssues = n
		}
	}

	report, err := s.Analysis.AnalyzeReplay(r.Context(), chi.URLParam(r, "id"), user.ID, user.Subscriber, targetBuildID, maxIssues)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, report)
}

func optionalInt64(v string) (int64, error) {
	if v == "" {
		return 0, nil
	}
	return strconv.ParseInt(v, 10, 64)
}

func isAsync(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}
