package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rpupo63/project-catalog-backend/database"
	"github.com/rpupo63/project-catalog-backend/errs"
	"github.com/rpupo63/project-catalog-backend/models"
	"github.com/rpupo63/project-catalog-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type tagHandler struct {
	responder   Responder
	logger      zerolog.Logger
	tagRepo     *database.TagRepo
	projectRepo *database.ProjectRepo
}

func newTagHandler(tagRepo *database.TagRepo, projectRepo *database.ProjectRepo, development bool) tagHandler {
	logger := log.With().Str("handlerName", "tagHandler").Logger()

	return tagHandler{
		responder:   NewResponder(logger).WithDevelopment(development),
		logger:      logger,
		tagRepo:     tagRepo,
		projectRepo: projectRepo,
	}
}

func tagIDParam(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "tagID"))
	if err != nil {
		return uuid.Nil, errs.NewNotFound("tag")
	}
	return id, nil
}

// getTags lists every tag with its project count
// @Summary List tags
// @Tags Tags
// @Produce json
// @Success 200 {array} models.TagWithCount "Tags with _count.projects"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error fetching tags"
// @Router /tags [get]
func (h tagHandler) getTags() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		usage, err := h.tagRepo.Usage(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find tags", "tags", err))
			return
		}

		tags := make([]models.TagWithCount, 0, len(usage))
		for _, u := range usage {
			tags = append(tags, models.TagWithCount{
				Tag:   models.Tag{ID: u.ID, Name: u.Name, NameEn: u.NameEn, Slug: u.Slug},
				Count: models.TagCount{Projects: u.ProjectCount},
			})
		}
		h.responder.WriteJSON(w, tags)
	}
}

// getTagCounts lists tags by usage, most used first
// @Summary Tag usage counts
// @Tags Tags
// @Produce json
// @Success 200 {array} models.TagUsage "Tags sorted by count"
// @Router /tags/count [get]
func (h tagHandler) getTagCounts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		usage, err := h.tagRepo.Usage(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("count tags", "tags", err))
			return
		}

		services.SortByUsage(usage)
		h.responder.WriteJSON(w, usage)
	}
}

// getTagCategories groups tags into display categories
// @Summary Tag categories
// @Tags Tags
// @Produce json
// @Success 200 {array} models.TagCategory[models.CategoryItem] "Categories, other last"
// @Router /tags/categories [get]
func (h tagHandler) getTagCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		usage, err := h.tagRepo.Usage(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("categorize tags", "tags", err))
			return
		}
		h.responder.WriteJSON(w, services.PublicCategories(usage))
	}
}

// getAdminTagCategories groups tags like getTagCategories, with nameEn and slug on each item
// @Summary Admin tag categories
// @Tags Tags
// @Produce json
// @Success 200 {array} models.TagCategory[models.AdminCategoryItem] "Categories, other last"
// @Router /tags/admin [get]
func (h tagHandler) getAdminTagCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		usage, err := h.tagRepo.Usage(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("categorize tags", "tags", err))
			return
		}
		h.responder.WriteJSON(w, services.AdminCategories(usage))
	}
}

// getTagProjects returns a tag and every project carrying it
// @Summary Projects by tag
// @Tags Tags
// @Produce json
// @Param tagID path string true "Tag ID" format(uuid)
// @Success 200 {object} models.TagProjects "Tag and its projects"
// @Failure 404 {object} ErrorResponse "Not Found - Tag not found"
// @Router /tags/{tagID}/projects [get]
func (h tagHandler) getTagProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tagID, err := tagIDParam(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		tag, err := h.tagRepo.FindByID(r.Context(), tagID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find tag", "tag", err))
			return
		}

		projects, err := h.projectRepo.FindByTag(r.Context(), tagID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find projects", "projects", err))
			return
		}

		h.responder.WriteJSON(w, models.TagProjects{
			Tag:      models.TagSummary{ID: tag.ID, Name: tag.Name},
			Projects: projects,
		})
	}
}

// createTag creates a tag; nameEn and slug default from the name
// @Summary Create tag
// @Tags Tags
// @Accept json
// @Produce json
// @Param tag body models.TagInput true "Tag data"
// @Success 201 {object} models.Tag "Created tag"
// @Failure 400 {object} ErrorResponse "Bad Request - Missing name"
// @Failure 409 {object} ErrorResponse "Conflict - Tag name already exists"
// @Router /tags [post]
func (h tagHandler) createTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in models.TagInput
		if err := decodeAndValidate(w, r, h.logger, "tag", &in); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if strings.TrimSpace(in.Name) == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("name"))
			return
		}

		tag, err := h.tagRepo.Add(r.Context(), in)
		if err != nil {
			h.responder.WriteError(w, tagWriteError("create tag", err))
			return
		}

		h.logger.Info().Str("tagID", tag.ID.String()).Str("admin", adminSubject(r.Context())).Msg("tag created")
		h.responder.WriteJSONStatus(w, http.StatusCreated, tag)
	}
}

// tagWriteError points a duplicate name conflict at the name field
func tagWriteError(operation string, cause error) error {
	apiErr := errs.NewDatabaseError(operation, "tag", cause)
	if errs.IsUniqueConstraintViolationError(apiErr) {
		apiErr.Field = "name"
	}
	return apiErr
}

// updateTag changes the provided fields of a tag
// @Summary Update tag
// @Tags Tags
// @Accept json
// @Produce json
// @Param tagID path string true "Tag ID" format(uuid)
// @Param tag body models.TagInput true "Fields to change"
// @Success 200 {object} models.Tag "Updated tag"
// @Failure 404 {object} ErrorResponse "Not Found - Tag not found"
// @Failure 409 {object} ErrorResponse "Conflict - Tag name already exists"
// @Router /tags/{tagID} [put]
func (h tagHandler) updateTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tagID, err := tagIDParam(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var in models.TagInput
		if err := decodeAndValidate(w, r, h.logger, "tag", &in); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		tag, err := h.tagRepo.Update(r.Context(), tagID, in)
		if err != nil {
			h.responder.WriteError(w, tagWriteError("update tag", err))
			return
		}

		h.logger.Info().Str("tagID", tagID.String()).Str("admin", adminSubject(r.Context())).Msg("tag updated")
		h.responder.WriteJSON(w, tag)
	}
}

// deleteTag detaches a tag from its projects and deletes it
// @Summary Delete tag
// @Tags Tags
// @Produce json
// @Param tagID path string true "Tag ID" format(uuid)
// @Success 200 {object} SuccessResponse "Deleted"
// @Failure 404 {object} ErrorResponse "Not Found - Tag not found"
// @Router /tags/{tagID} [delete]
func (h tagHandler) deleteTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tagID, err := tagIDParam(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.tagRepo.Delete(r.Context(), tagID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete tag", "tag", err))
			return
		}

		h.logger.Info().Str("tagID", tagID.String()).Str("admin", adminSubject(r.Context())).Msg("tag deleted")
		h.responder.WriteJSON(w, SuccessResponse{Success: true})
	}
}
