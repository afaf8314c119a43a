// internal/ratings/routes.go

package ratings

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterRoutes wires rating endpoints onto the given router.
// All routes require authentication.
func RegisterRoutes(router *mux.Router, handlers *Handlers, authMiddleware func(http.Handler) http.Handler) {
	protected := router.PathPrefix("/api/v1").Subrouter()
	protected.Use(authMiddleware)

	protected.HandleFunc("/matches/{matchId}/ratings", handlers.SubmitRating).Methods(http.MethodPost)
	protected.HandleFunc("/matches/{matchId}/ratings", handlers.UpdateRating).Methods(http.MethodPut)
	protected.HandleFunc("/ratings/history", handlers.GetHistory).Methods(http.MethodGet)
	protected.HandleFunc("/users/{id}/ratings/summary", handlers.GetSummary).Methods(http.MethodGet)
}
