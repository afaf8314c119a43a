// internal/matching/handlers.go
// HTTP handlers for swipes, matches, discovery, and compatibility

package matching

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/kritsanan1/thai-vid-match/internal/common/utils"
	"github.com/kritsanan1/thai-vid-match/internal/profile"
)

// Handlers holds matching HTTP handlers
type Handlers struct {
	service Service
}

// NewHandlers creates matching handlers
func NewHandlers(service Service) *Handlers {
	return &Handlers{service: service}
}

// RecordSwipe handles POST /api/v1/swipes
func (h *Handlers) RecordSwipe(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req SwipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.RecordSwipe(r.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidRequest):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrSelfSwipe):
			utils.RespondWithError(w, http.StatusBadRequest, "Cannot swipe on yourself")
		case errors.Is(err, ErrDuplicateSwipe):
			utils.RespondWithError(w, http.StatusConflict, "Already swiped on this user")
		case errors.Is(err, profile.ErrProfileNotFound):
			utils.RespondWithError(w, http.StatusNotFound, "Target profile not found")
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to record swipe")
		}
		return
	}

	status := http.StatusCreated
	message := "Swipe recorded"
	if result.Match != nil {
		message = "It's a match"
	}
	utils.RespondWithData(w, status, message, result)
}

// GetDiscoveryFeed handles GET /api/v1/discovery?limit=N
func (h *Handlers) GetDiscoveryFeed(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = parsed
	}

	feed, err := h.service.GetDiscoveryFeed(r.Context(), userID, limit)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Profile not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to build discovery feed")
		return
	}

	utils.RespondWithData(w, http.StatusOK, "Discovery feed retrieved", feed)
}

// GetCompatibility handles GET /api/v1/compatibility/{userId}
func (h *Handlers) GetCompatibility(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	candidateID := mux.Vars(r)["userId"]
	if candidateID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing user ID")
		return
	}

	result, err := h.service.Score(r.Context(), userID, candidateID)
	if err != nil {
		switch {
		case errors.Is(err, ErrSelfScore):
			utils.RespondWithError(w, http.StatusBadRequest, "Cannot score yourself")
		case errors.Is(err, ErrInvalidProfile):
			utils.RespondWithError(w, http.StatusUnprocessableEntity, "Profile is not scorable")
		case errors.Is(err, profile.ErrProfileNotFound):
			utils.RespondWithError(w, http.StatusNotFound, "Profile not found")
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to compute compatibility")
		}
		return
	}

	utils.RespondWithData(w, http.StatusOK, "Compatibility computed", result)
}

// GetLikedYouCount handles GET /api/v1/liked-you/count
func (h *Handlers) GetLikedYouCount(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	count, err := h.service.GetLikedYouCount(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to count likes")
		return
	}

	utils.RespondWithData(w, http.StatusOK, "Like count retrieved", map[string]int64{"count": count})
}

// ListMatches handles GET /api/v1/matches
func (h *Handlers) ListMatches(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	matches, err := h.service.ListMatches(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to list matches")
		return
	}

	utils.RespondWithData(w, http.StatusOK, "Matches retrieved", matches)
}
