package api

import "net/http"

// handleHealth is a liveness probe; it only indicates the process is up.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
