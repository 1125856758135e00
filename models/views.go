package models

import "github.com/google/uuid"

// Pagination describes one page of a filtered project listing
type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalPages int   `json:"totalPages"`
}

// NewPagination computes TotalPages as ceil(total / pageSize).
func NewPagination(total int64, page, pageSize int) Pagination {
	totalPages := 0
	if pageSize > 0 {
		totalPages = int((total + int64(pageSize) - 1) / int64(pageSize))
	}
	return Pagination{
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}

type ProjectPage struct {
	Data       []Project  `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// TagUsage is a tag together with the number of projects it is attached to
type TagUsage struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	NameEn       string    `json:"nameEn"`
	Slug         string    `json:"slug"`
	ProjectCount int64     `json:"count"`
}

type TagCount struct {
	Projects int64 `json:"projects"`
}

// TagWithCount is the GET /tags shape
type TagWithCount struct {
	Tag
	Count TagCount `json:"_count"`
}

type TagSummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type TagProjects struct {
	Tag      TagSummary `json:"tag"`
	Projects []Project  `json:"projects"`
}

// CategoryItem is the public categorization entry
type CategoryItem struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Count int64     `json:"count"`
}

// AdminCategoryItem adds the fields the admin tag screen edits
type AdminCategoryItem struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	NameEn string    `json:"nameEn"`
	Slug   string    `json:"slug"`
	Count  int64     `json:"count"`
}

type TagCategory[T CategoryItem | AdminCategoryItem] struct {
	Name  string `json:"name"`
	Items []T    `json:"items"`
}
