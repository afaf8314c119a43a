// internal/profile/handlers.go
// HTTP handlers for profile and preference endpoints

package profile

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/kritsanan1/thai-vid-match/internal/common/utils"
)

// Handlers holds profile HTTP handlers
type Handlers struct {
	service Service
}

// NewHandlers creates profile handlers
func NewHandlers(service Service) *Handlers {
	return &Handlers{service: service}
}

// SetupProfile handles POST /api/v1/profile
func (h *Handlers) SetupProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req SetupProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	profile, err := h.service.SetupProfile(r.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidRequest):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrProfileExists):
			utils.RespondWithError(w, http.StatusConflict, "Profile already exists")
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create profile")
		}
		return
	}

	utils.RespondWithData(w, http.StatusCreated, "Profile created", profile)
}

// GetMyProfile handles GET /api/v1/profile
func (h *Handlers) GetMyProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	profile, err := h.service.GetProfile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Profile not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to get profile")
		return
	}

	utils.RespondWithData(w, http.StatusOK, "Profile retrieved", profile)
}

// GetUserProfile handles GET /api/v1/users/{id}/profile
func (h *Handlers) GetUserProfile(w http.ResponseWriter, r *http.Request) {
	targetID := mux.Vars(r)["id"]
	if targetID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing user ID")
		return
	}

	profile, err := h.service.GetProfile(r.Context(), targetID)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Profile not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to get profile")
		return
	}

	utils.RespondWithData(w, http.StatusOK, "Profile retrieved", profile)
}

// UpdateProfile handles PUT /api/v1/profile
func (h *Handlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	profile, err := h.service.UpdateProfile(r.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidRequest):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrProfileNotFound):
			utils.RespondWithError(w, http.StatusNotFound, "Profile not found")
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update profile")
		}
		return
	}

	utils.RespondWithData(w, http.StatusOK, "Profile updated", profile)
}

// GetCompletion handles GET /api/v1/profile/completion
func (h *Handlers) GetCompletion(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	completion, err := h.service.GetCompletion(r.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Profile not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to get profile completion")
		return
	}

	utils.RespondWithData(w, http.StatusOK, "Profile completion retrieved", completion)
}

// GetPreferences handles GET /api/v1/preferences
func (h *Handlers) GetPreferences(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	prefs, err := h.service.GetPreferences(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to get preferences")
		return
	}

	utils.RespondWithData(w, http.StatusOK, "Preferences retrieved", prefs)
}

// UpdatePreferences handles PUT /api/v1/preferences
func (h *Handlers) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req UpdatePreferencesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	prefs, err := h.service.UpdatePreferences(r.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, ErrInvalidRequest) {
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update preferences")
		return
	}

	utils.RespondWithData(w, http.StatusOK, "Preferences updated", prefs)
}

// SetSafeMode handles PUT /api/v1/preferences/safemode
func (h *Handlers) SetSafeMode(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req SafeModeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	prefs, err := h.service.SetSafeMode(r.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, ErrInvalidRequest) {
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update safe mode")
		return
	}

	utils.RespondWithData(w, http.StatusOK, "Safe mode updated", prefs)
}
