// internal/profile/routes.go

package profile

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterRoutes wires profile endpoints onto the given router.
// All routes require authentication.
func RegisterRoutes(router *mux.Router, handlers *Handlers, authMiddleware func(http.Handler) http.Handler) {
	protected := router.PathPrefix("/api/v1").Subrouter()
	protected.Use(authMiddleware)

	protected.HandleFunc("/profile", handlers.SetupProfile).Methods(http.MethodPost)
	protected.HandleFunc("/profile", handlers.GetMyProfile).Methods(http.MethodGet)
	protected.HandleFunc("/profile", handlers.UpdateProfile).Methods(http.MethodPut)
	protected.HandleFunc("/profile/completion", handlers.GetCompletion).Methods(http.MethodGet)
	protected.HandleFunc("/users/{id}/profile", handlers.GetUserProfile).Methods(http.MethodGet)

	protected.HandleFunc("/preferences", handlers.GetPreferences).Methods(http.MethodGet)
	protected.HandleFunc("/preferences", handlers.UpdatePreferences).Methods(http.MethodPut)
	protected.HandleFunc("/preferences/safemode", handlers.SetSafeMode).Methods(http.MethodPut)
}
