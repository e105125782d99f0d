package api

import (
	"net/http"
)

// GetDashboard returns aggregated statistics for one user within one
// organization. Both user_id and org_id query parameters are required.
func (s *Server) GetDashboard(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	orgID := r.URL.Query().Get("org_id")
	if userID == "" || orgID == "" {
		writeError(w, http.StatusBadRequest, codeBadRequest, "user_id and org_id query parameters are required")
		return
	}

	if s.metrics != nil {
		s.metrics.DashboardRequestsTotal.Inc()
	}

	stats, err := s.dashboard.Stats(r.Context(), userID, orgID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
