package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tag is a uniquely named label attachable to many projects
type Tag struct {
	ID     uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Name   string    `json:"name" db:"name" gorm:"type:text;not null;uniqueIndex:idx_tag_name"`
	NameEn string    `json:"nameEn" db:"name_en" gorm:"type:text;not null;default:''"`
	Slug   string    `json:"slug" db:"slug" gorm:"type:text;not null;default:''"`

	Projects []Project `json:"-" gorm:"many2many:project_tags;constraint:OnDelete:CASCADE"`
}

// NewTag builds a tag the way implicit creation does: English name mirrors the name
// and the slug is the lower-cased name.
func NewTag(name string) Tag {
	return Tag{
		Name:   name,
		NameEn: name,
		Slug:   Slugify(name),
	}
}

func Slugify(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func (t *Tag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.NameEn == "" {
		t.NameEn = t.Name
	}
	if t.Slug == "" {
		t.Slug = Slugify(t.Name)
	}
	return nil
}
