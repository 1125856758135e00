package models

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// TagRef identifies a tag in a project payload. It decodes from either a bare tag
// name ("Vue") or an object ({"id": "..."} or {"name": "Vue"}).
type TagRef struct {
	ID   uuid.UUID `json:"id,omitempty"`
	Name string    `json:"name,omitempty"`
}

func TagName(name string) TagRef {
	return TagRef{Name: name}
}

func TagID(id uuid.UUID) TagRef {
	return TagRef{ID: id}
}

func (r TagRef) IsID() bool {
	return r.ID != uuid.Nil
}

func (r *TagRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &r.Name)
	}

	var obj struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("tag must be a name or an object with id or name: %w", err)
	}
	if obj.ID != "" {
		id, err := uuid.Parse(obj.ID)
		if err != nil {
			return fmt.Errorf("invalid tag id %q: %w", obj.ID, err)
		}
		r.ID = id
	}
	r.Name = obj.Name
	if r.ID == uuid.Nil && r.Name == "" {
		return fmt.Errorf("tag object needs an id or a name")
	}
	return nil
}

func (r TagRef) MarshalJSON() ([]byte, error) {
	if r.IsID() {
		return json.Marshal(map[string]string{"id": r.ID.String()})
	}
	return json.Marshal(r.Name)
}

// ImageRef is the {url} element of a project payload
type ImageRef struct {
	URL string `json:"url" validate:"required"`
}

// ProjectInput is the full field set accepted by project create and update
type ProjectInput struct {
	Name        string     `json:"name" validate:"required,max=200"`
	Description string     `json:"description" validate:"max=5000"`
	RepoURL     string     `json:"repoUrl" validate:"omitempty,url"`
	Language    string     `json:"language" validate:"max=100"`
	Stars       int        `json:"stars" validate:"gte=0"`
	Tags        []TagRef   `json:"tags"`
	Images      []ImageRef `json:"images" validate:"dive"`
}

func (in ProjectInput) ImageURLs() []string {
	urls := make([]string, 0, len(in.Images))
	for _, image := range in.Images {
		urls = append(urls, image.URL)
	}
	return urls
}

// TagInput is the body of tag create and update
type TagInput struct {
	Name   string `json:"name" validate:"max=100"`
	NameEn string `json:"nameEn" validate:"max=100"`
	Slug   string `json:"slug" validate:"max=100"`
}
