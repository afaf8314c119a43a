// internal/auth/handlers.go
// HTTP handlers for authentication endpoints

package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/kritsanan1/thai-vid-match/internal/common/utils"
)

// Handlers holds auth HTTP handlers
type Handlers struct {
	service Service
}

// NewHandlers creates auth handlers
func NewHandlers(service Service) *Handlers {
	return &Handlers{service: service}
}

// SignUp handles POST /api/auth/signup
func (h *Handlers) SignUp(w http.ResponseWriter, r *http.Request) {
	var req SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.service.SignUp(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidRequest):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrEmailAlreadyExists):
			utils.RespondWithError(w, http.StatusConflict, "Email already registered")
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create account")
		}
		return
	}

	utils.RespondWithData(w, http.StatusCreated, "Account created", resp)
}

// SignIn handles POST /api/auth/signin
func (h *Handlers) SignIn(w http.ResponseWriter, r *http.Request) {
	var req SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.service.SignIn(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidRequest):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrInvalidCredentials):
			utils.RespondWithError(w, http.StatusUnauthorized, "Invalid email or password")
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to sign in")
		}
		return
	}

	utils.RespondWithData(w, http.StatusOK, "Signed in", resp)
}

// Refresh handles POST /api/auth/refresh
func (h *Handlers) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.service.Refresh(r.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrInvalidToken) {
			utils.RespondWithError(w, http.StatusUnauthorized, "Invalid or expired refresh token")
			return
		}
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	utils.RespondWithData(w, http.StatusOK, "Token refreshed", resp)
}

// SignOut handles POST /api/auth/signout. Tokens are stateless, so the
// server only acknowledges; the client discards its pair.
func (h *Handlers) SignOut(w http.ResponseWriter, r *http.Request) {
	if _, ok := r.Context().Value("userID").(string); !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	utils.MessageResponse(w, "Signed out", http.StatusOK)
}

// Me handles GET /api/auth/me
func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := h.service.GetUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "User not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to get user")
		return
	}

	utils.RespondWithData(w, http.StatusOK, "User retrieved", user)
}
