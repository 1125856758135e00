package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// setupRoutes mounts the catalog routes on r. Mutating routes go through requireAdmin,
// which is a pass-through unless admin tokens are enforced.
func setupRoutes(r chi.Router, handlers *routeHandlers, requireAdmin, loginLimit func(http.Handler) http.Handler) {
	r.Get("/health", handlers.healthHandler.health())

	r.With(loginLimit).Post("/auth/login", handlers.authHandler.login())

	// Public reads
	r.Get("/projects", handlers.projectHandler.getProjects())
	r.Get("/projects/{projectID}", handlers.projectHandler.getProject())

	r.Get("/tags", handlers.tagHandler.getTags())
	r.Get("/tags/count", handlers.tagHandler.getTagCounts())
	r.Get("/tags/categories", handlers.tagHandler.getTagCategories())
	r.Get("/tags/admin", handlers.tagHandler.getAdminTagCategories())
	r.Get("/tags/{tagID}/projects", handlers.tagHandler.getTagProjects())

	// Admin writes
	r.Group(func(r chi.Router) {
		r.Use(requireAdmin)

		r.Post("/projects", handlers.projectHandler.createProject())
		r.Put("/projects/{projectID}", handlers.projectHandler.updateProject())
		r.Delete("/projects/{projectID}", handlers.projectHandler.deleteProject())

		r.Post("/tags", handlers.tagHandler.createTag())
		r.Put("/tags/{tagID}", handlers.tagHandler.updateTag())
		r.Delete("/tags/{tagID}", handlers.tagHandler.deleteTag())

		r.Post("/uploads/images", handlers.uploadHandler.uploadImage())
	})
}
