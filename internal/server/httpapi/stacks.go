package httpapi

import "net/http"

func (s *Server) handleListStacks(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())

	stacks, err := s.stacks.List(r.Context(), claims.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stacks)
}

func (s *Server) handleGetStack(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())

	stack, err := s.stacks.Get(r.Context(), claims.UserID, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stack)
}

func (s *Server) handleCreateStack(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())

	var req struct {
		Name     string `json:"name"`
		IsPublic bool   `json:"is_public"`
	}
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	stack, err := s.stacks.Create(r.Context(), claims.UserID, req.Name, req.IsPublic)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, stack)
}

func (s *Server) handleUpdateStack(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())

	var req struct {
		Name     *string `json:"name"`
		IsPublic *bool   `json:"is_public"`
	}
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	stack, err := s.stacks.Update(r.Context(), claims.UserID, r.PathValue("id"), req.Name, req.IsPublic)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stack)
}

func (s *Server) handleDeleteStack(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())

	if err := s.stacks.Delete(r.Context(), claims.UserID, r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListCollaborators(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())

	collaborators, err := s.stacks.ListCollaborators(r.Context(), claims.UserID, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, collaborators)
}

func (s *Server) handleAddCollaborator(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())

	var req struct {
		Username string `json:"username"`
		CanEdit  bool   `json:"can_edit"`
	}
	if err := readJSON(w, r, &req); err != nil || req.Username == "" {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	collaborator, err := s.stacks.AddCollaborator(r.Context(), claims.UserID, r.PathValue("id"), req.Username, req.CanEdit)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, collaborator)
}

func (s *Server) handleRemoveCollaborator(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())

	err := s.stacks.RemoveCollaborator(r.Context(), claims.UserID, r.PathValue("id"), r.PathValue("collabId"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
