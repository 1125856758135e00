package client

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/rpupo63/project-catalog-backend/models"
)

func (c *Client) ListTags(ctx context.Context) ([]models.TagWithCount, error) {
	tags := []models.TagWithCount{}
	if err := c.doJSON(ctx, http.MethodGet, "/tags", nil, nil, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

// TagCounts returns tags ordered by project count, most used first
func (c *Client) TagCounts(ctx context.Context) ([]models.TagUsage, error) {
	usage := []models.TagUsage{}
	if err := c.doJSON(ctx, http.MethodGet, "/tags/count", nil, nil, &usage); err != nil {
		return nil, err
	}
	return usage, nil
}

func (c *Client) TagCategories(ctx context.Context) ([]models.TagCategory[models.CategoryItem], error) {
	categories := []models.TagCategory[models.CategoryItem]{}
	if err := c.doJSON(ctx, http.MethodGet, "/tags/categories", nil, nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Client) AdminTagCategories(ctx context.Context) ([]models.TagCategory[models.AdminCategoryItem], error) {
	categories := []models.TagCategory[models.AdminCategoryItem]{}
	if err := c.doJSON(ctx, http.MethodGet, "/tags/admin", nil, nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Client) CreateTag(ctx context.Context, in models.TagInput) (*models.Tag, error) {
	var tag models.Tag
	if err := c.doJSON(ctx, http.MethodPost, "/tags", nil, in, &tag); err != nil {
		return nil, err
	}
	return &tag, nil
}

func (c *Client) UpdateTag(ctx context.Context, id uuid.UUID, in models.TagInput) (*models.Tag, error) {
	var tag models.Tag
	if err := c.doJSON(ctx, http.MethodPut, "/tags/"+id.String(), nil, in, &tag); err != nil {
		return nil, err
	}
	return &tag, nil
}

func (c *Client) DeleteTag(ctx context.Context, id uuid.UUID) error {
	var res successResponse
	return c.doJSON(ctx, http.MethodDelete, "/tags/"+id.String(), nil, nil, &res)
}

func (c *Client) ProjectsByTag(ctx context.Context, id uuid.UUID) (*models.TagProjects, error) {
	var res models.TagProjects
	if err := c.doJSON(ctx, http.MethodGet, "/tags/"+id.String()+"/projects", nil, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
