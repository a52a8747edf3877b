package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/dmitrijs2005/userservice/internal/logging"
)

// NewRouter constructs the HTTP handler serving the user service API.
//
// Routes:
//
//	GET    /health           → liveness check
//	POST   /auth/register    → UserHandler.Register
//	POST   /auth/login       → UserHandler.Login
//	GET    /users            → UserHandler.List
//	GET    /users/me         → UserHandler.Me        (bearer token)
//	GET    /users/{userID}   → UserHandler.GetByID
//	PUT    /users/{userID}   → UserHandler.Update    (bearer token + ownership)
//	DELETE /users/{userID}   → UserHandler.Delete    (bearer token + ownership)
func NewRouter(handler *UserHandler, logger logging.Logger, corsAllowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(WithRequestLogging(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	// Only allow requests with Content-Type: application/json (bodyless
	// requests pass through)
	r.Use(chiMiddleware.AllowContentType("application/json"))

	r.Get("/health", handler.Health)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", handler.Register)
		r.Post("/login", handler.Login)
	})

	r.Route("/users", func(r chi.Router) {
		// Public endpoints
		r.Get("/", handler.List)
		r.Get("/{userID}", handler.GetByID)

		// Protected group: requires a valid bearer token
		r.Group(func(r chi.Router) {
			r.Use(RequireAuth(handler.service))

			r.Get("/me", handler.Me)
			r.Put("/{userID}", handler.Update)
			r.Delete("/{userID}", handler.Delete)
		})
	})

	return r
}
