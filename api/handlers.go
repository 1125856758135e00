package api

import (
	"github.com/rpupo63/project-catalog-backend/database"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, rt router) *routeHandlers {
	return &routeHandlers{
		healthHandler:  newHealthHandler(database, rt.development),
		projectHandler: newProjectHandler(database.ProjectRepo(), rt.development),
		tagHandler:     newTagHandler(database.TagRepo(), database.ProjectRepo(), rt.development),
		authHandler:    newAuthHandler(rt.adminPassword, rt.tokens, rt.development),
		uploadHandler:  newUploadHandler(rt.images, rt.maxImageBytes, rt.development),
	}
}
