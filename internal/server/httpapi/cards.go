package httpapi

import "net/http"

func (s *Server) handleListCards(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())

	stackID := r.URL.Query().Get("stackId")
	if stackID == "" {
		writeError(w, http.StatusBadRequest, "stackId is required")
		return
	}

	cards, err := s.cards.List(r.Context(), claims.UserID, stackID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, cards)
}

func (s *Server) handleCreateCard(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())

	var req struct {
		StackID string `json:"stack_id"`
		Front   string `json:"front"`
		Back    string `json:"back"`
	}
	if err := readJSON(w, r, &req); err != nil || req.StackID == "" {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	card, err := s.cards.Create(r.Context(), claims.UserID, req.StackID, req.Front, req.Back)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, card)
}

func (s *Server) handleUpdateCard(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())

	var req struct {
		Front *string `json:"front"`
		Back  *string `json:"back"`
	}
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	card, err := s.cards.Update(r.Context(), claims.UserID, r.PathValue("id"), req.Front, req.Back)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, card)
}

func (s *Server) handleDeleteCard(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())

	if err := s.cards.Delete(r.Context(), claims.UserID, r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCardImage(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())

	key, uploadURL, err := s.cards.RequestImageUpload(r.Context(), claims.UserID, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"key": key, "upload_url": uploadURL})
}
