// internal/auth/routes.go

package auth

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterRoutes wires auth endpoints onto the given router
func RegisterRoutes(router *mux.Router, handlers *Handlers, authMiddleware func(http.Handler) http.Handler) {
	public := router.PathPrefix("/api/auth").Subrouter()
	public.HandleFunc("/signup", handlers.SignUp).Methods(http.MethodPost)
	public.HandleFunc("/signin", handlers.SignIn).Methods(http.MethodPost)
	public.HandleFunc("/refresh", handlers.Refresh).Methods(http.MethodPost)

	protected := router.PathPrefix("/api/auth").Subrouter()
	protected.Use(authMiddleware)
	protected.HandleFunc("/signout", handlers.SignOut).Methods(http.MethodPost)
	protected.HandleFunc("/me", handlers.Me).Methods(http.MethodGet)
}
