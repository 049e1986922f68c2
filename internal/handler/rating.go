package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/promptnexus/promptnexus/internal/auth"
	"github.com/promptnexus/promptnexus/internal/service"
)

type RatingHandler struct {
	ratings *service.RatingService
	logger  *slog.Logger
}

func NewRatingHandler(ratings *service.RatingService, logger *slog.Logger) *RatingHandler {
	return &RatingHandler{ratings: ratings, logger: logger}
}

type rateRequest struct {
	Rating int `json:"rating"`
}

// HandleRate serves POST /api/prompts/{id}/rating. Re-rating overwrites the
// earlier value. Rating your own prompt is ignored without an error, so the
// response is 204 in that case and 200 with the stored rating otherwise.
func (h *RatingHandler) HandleRate(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	var req rateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: "invalid_json", Message: "request body is not valid JSON",
		})
		return
	}

	rating, err := h.ratings.Rate(r.Context(), r.PathValue("id"), userID, req.Rating)
	if err != nil {
		writeError(w, err)
		return
	}
	if rating == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writeJSON(w, http.StatusOK, rating)
}

// HandleGetUserRating serves GET /api/prompts/{id}/rating: the session
// user's own rating for the prompt, or 204 if they haven't rated it.
func (h *RatingHandler) HandleGetUserRating(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	rating, err := h.ratings.UserRating(r.Context(), r.PathValue("id"), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	if rating == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writeJSON(w, http.StatusOK, rating)
}
