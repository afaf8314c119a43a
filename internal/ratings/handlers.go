// internal/ratings/handlers.go

package ratings

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/kritsanan1/thai-vid-match/internal/common/utils"
	"github.com/kritsanan1/thai-vid-match/internal/matching"
)

// Handlers holds rating HTTP handlers
type Handlers struct {
	service Service
}

// NewHandlers creates rating handlers
func NewHandlers(service Service) *Handlers {
	return &Handlers{service: service}
}

// SubmitRating handles POST /api/v1/matches/{matchId}/ratings
func (h *Handlers) SubmitRating(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	matchID := mux.Vars(r)["matchId"]
	if matchID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing match ID")
		return
	}

	var req SubmitRatingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	rating, err := h.service.SubmitRating(r.Context(), userID, matchID, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidRequest):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, matching.ErrMatchNotFound):
			utils.RespondWithError(w, http.StatusNotFound, "Match not found")
		case errors.Is(err, ErrNotParticipant):
			utils.RespondWithError(w, http.StatusForbidden, "Not a participant of this match")
		case errors.Is(err, ErrAlreadyRated):
			utils.RespondWithError(w, http.StatusConflict, "Match already rated")
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to submit rating")
		}
		return
	}

	utils.RespondWithData(w, http.StatusCreated, "Rating submitted", rating)
}

// UpdateRating handles PUT /api/v1/matches/{matchId}/ratings
func (h *Handlers) UpdateRating(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	matchID := mux.Vars(r)["matchId"]
	if matchID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing match ID")
		return
	}

	var req SubmitRatingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	rating, err := h.service.UpdateRating(r.Context(), userID, matchID, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidRequest):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, matching.ErrMatchNotFound):
			utils.RespondWithError(w, http.StatusNotFound, "Match not found")
		case errors.Is(err, ErrNotParticipant):
			utils.RespondWithError(w, http.StatusForbidden, "Not a participant of this match")
		case errors.Is(err, ErrRatingNotFound):
			utils.RespondWithError(w, http.StatusNotFound, "Rating not found")
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update rating")
		}
		return
	}

	utils.RespondWithData(w, http.StatusOK, "Rating updated", rating)
}

// GetHistory handles GET /api/v1/ratings/history
func (h *Handlers) GetHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	history, err := h.service.GetHistory(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to get rating history")
		return
	}

	utils.RespondWithData(w, http.StatusOK, "Rating history retrieved", history)
}

// GetSummary handles GET /api/v1/users/{id}/ratings/summary
func (h *Handlers) GetSummary(w http.ResponseWriter, r *http.Request) {
	ratedID := mux.Vars(r)["id"]
	if ratedID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing user ID")
		return
	}

	summary, err := h.service.GetSummary(r.Context(), ratedID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to get rating summary")
		return
	}

	utils.RespondWithData(w, http.StatusOK, "Rating summary retrieved", summary)
}
