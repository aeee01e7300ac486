package httpapi

import (
	"net/http"

	"github.com/cardcore/cardcore/internal/server/models"
)

// handleNextCard answers the study loop's poll. An exhausted stack is not an
// error: the body is JSON null so clients can tell "no card" from a failure.
func (s *Server) handleNextCard(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())

	card, err := s.study.NextCard(r.Context(), claims.UserID, r.PathValue("stackId"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, card)
}

func (s *Server) handleSubmitReview(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())

	var req struct {
		Rating string `json:"rating"`
	}
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	rating, err := models.ParseRating(req.Rating)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid rating")
		return
	}

	card, err := s.study.SubmitReview(r.Context(), claims.UserID,
		r.PathValue("stackId"), r.PathValue("cardId"), rating)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, card)
}
