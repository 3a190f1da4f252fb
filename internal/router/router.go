// Package router sets up all HTTP routes and middleware chains for the
// PlatePress API. It organizes routes into public and admin groups.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"platepress/internal/handlers"
	"platepress/internal/middleware"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(public *handlers.Public, admin *handlers.Admin) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	// Health check.
	r.Get("/health", healthHandler)

	// Public read API.
	r.Route("/api", func(r chi.Router) {
		r.Get("/recipes/search", public.Search)
		r.Get("/recipes/{id}", public.RecipeDetail)
		r.Get("/suggest", public.Suggest)
		r.Get("/popular-searches", public.PopularSearches)
		r.Get("/categories", public.Categories)
	})

	// Admin API — authentication is enforced by the fronting proxy.
	r.Route("/admin", func(r chi.Router) {
		r.Route("/categories", func(r chi.Router) {
			r.Post("/", admin.CategoryCreate)
			r.Put("/{id}", admin.CategoryUpdate)
			r.Put("/{id}/parent", admin.CategoryReparent)
			r.Delete("/{id}", admin.CategoryDelete)
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
