// internal/matching/routes.go

package matching

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterRoutes wires matching endpoints onto the given router.
// All routes require authentication.
func RegisterRoutes(router *mux.Router, handlers *Handlers, authMiddleware func(http.Handler) http.Handler) {
	protected := router.PathPrefix("/api/v1").Subrouter()
	protected.Use(authMiddleware)

	protected.HandleFunc("/swipes", handlers.RecordSwipe).Methods(http.MethodPost)
	protected.HandleFunc("/discovery", handlers.GetDiscoveryFeed).Methods(http.MethodGet)
	protected.HandleFunc("/compatibility/{userId}", handlers.GetCompatibility).Methods(http.MethodGet)
	protected.HandleFunc("/liked-you/count", handlers.GetLikedYouCount).Methods(http.MethodGet)
	protected.HandleFunc("/matches", handlers.ListMatches).Methods(http.MethodGet)
}
