package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/rpupo63/project-catalog-backend/models"
)

// ListProjectsParams are the optional filters of ListProjects. Zero values are omitted.
type ListProjectsParams struct {
	Page     int
	PageSize int
	Tag      string
	Search   string
	Sort     string
}

func (p ListProjectsParams) values() url.Values {
	v := url.Values{}
	if p.Page > 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if p.PageSize > 0 {
		v.Set("pageSize", strconv.Itoa(p.PageSize))
	}
	if p.Tag != "" {
		v.Set("tag", p.Tag)
	}
	if p.Search != "" {
		v.Set("search", p.Search)
	}
	if p.Sort != "" {
		v.Set("sort", p.Sort)
	}
	return v
}

func (c *Client) ListProjects(ctx context.Context, params ListProjectsParams) (*models.ProjectPage, error) {
	var page models.ProjectPage
	if err := c.doJSON(ctx, http.MethodGet, "/projects", params.values(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) GetProject(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	var project models.Project
	if err := c.doJSON(ctx, http.MethodGet, "/projects/"+id.String(), nil, nil, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

func (c *Client) CreateProject(ctx context.Context, in models.ProjectInput) (*models.Project, error) {
	var project models.Project
	if err := c.doJSON(ctx, http.MethodPost, "/projects", nil, in, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// UpdateProject fully replaces the project; tags and images missing from in are removed.
func (c *Client) UpdateProject(ctx context.Context, id uuid.UUID, in models.ProjectInput) (*models.Project, error) {
	var project models.Project
	if err := c.doJSON(ctx, http.MethodPut, "/projects/"+id.String(), nil, in, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

func (c *Client) DeleteProject(ctx context.Context, id uuid.UUID) error {
	var res successResponse
	return c.doJSON(ctx, http.MethodDelete, "/projects/"+id.String(), nil, nil, &res)
}

type successResponse struct {
	Success bool `json:"success"`
}
