package main

import (
	"net/http"

	"github.com/drillhq/drill-api/internal/api"
	apiMiddleware "github.com/drillhq/drill-api/internal/api/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// setupRouter creates and configures the application router with all
// routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(app.userStore, app.jwtService, app.passwordVerifier)
	userHandler := api.NewUserHandler(app.userStore)
	problemHandler := api.NewProblemHandler(app.problemStore, app.reviewService)
	reviewHandler := api.NewReviewHandler(app.reviewService)
	listHandler := api.NewListHandler(app.listService)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Account settings
			r.Patch("/users/me", userHandler.UpdateMe)

			// Problem catalog and scheduling
			r.Post("/problems", problemHandler.Create)
			r.Get("/problems/{id}", problemHandler.Get)
			r.Post("/problems/{id}/submit", problemHandler.Submit)
			r.Post("/problems/{id}/reset", problemHandler.Reset)

			// Scheduling queries
			r.Post("/reviews/due", reviewHandler.Due)

			// Problem lists
			r.Post("/lists", listHandler.Create)
			r.Get("/lists/{id}", listHandler.Get)
			r.Patch("/lists/{id}", listHandler.Rename)
			r.Delete("/lists/{id}", listHandler.Delete)
			r.Post("/lists/{id}/publish", listHandler.Publish)
			r.Post("/lists/{id}/copy", listHandler.Copy)
			r.Post("/lists/{id}/problems", listHandler.Reconcile)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
