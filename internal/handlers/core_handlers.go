package handlers

import (
	"net/http"
	"time"
)

// HandleHealth reports liveness and basic request counters.
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	snapshot := s.Metrics.Snapshot()

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"message":     "Supereddit API is running",
		"requests":    snapshot.Requests,
		"errors":      snapshot.Errors,
		"uptime":      snapshot.Uptime.String(),
		"server_time": time.Now(),
	})
}
