package httpapi

import "net/http"

func (s *Server) handleGetScribblePad(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())

	pad, err := s.scribble.Get(r.Context(), claims.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, pad)
}

func (s *Server) handleSaveScribblePad(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())

	var req struct {
		Content string `json:"content"`
	}
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	pad, err := s.scribble.Save(r.Context(), claims.UserID, req.Content)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, pad)
}
