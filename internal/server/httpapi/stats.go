package httpapi

import "net/http"

func (s *Server) handleStackStatistics(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())

	stats, err := s.stats.StackStatistics(r.Context(), claims.UserID, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleUserStatistics(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())

	stats, err := s.stats.UserStatistics(r.Context(), claims.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
