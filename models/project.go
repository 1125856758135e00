package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Project represents a cataloged repository with its tags and ordered images
type Project struct {
	ID          uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Name        string    `json:"name" db:"name" gorm:"type:text;not null;index:idx_project_name"`
	Description string    `json:"description" db:"description" gorm:"type:text;not null;default:''"`
	RepoURL     string    `json:"repoUrl" db:"repo_url" gorm:"type:text;not null;default:''"`
	Language    string    `json:"language" db:"language" gorm:"type:text;not null;default:''"`
	Stars       int       `json:"stars" db:"stars" gorm:"type:integer;not null;default:0"`
	CoverImage  *string   `json:"coverImage" db:"cover_image" gorm:"type:text"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at" gorm:"index:idx_project_created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`

	Tags   []Tag   `json:"tags" gorm:"many2many:project_tags;constraint:OnDelete:CASCADE"`
	Images []Image `json:"images" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// SyncCover points CoverImage at the image with the lowest order, or nil when there are none.
func (p *Project) SyncCover() {
	p.CoverImage = nil
	var cover *Image
	for i := range p.Images {
		if cover == nil || p.Images[i].Order < cover.Order {
			cover = &p.Images[i]
		}
	}
	if cover != nil {
		url := cover.URL
		p.CoverImage = &url
	}
}

// ensure relations serialize as [] rather than null
func (p *Project) normalize() {
	if p.Tags == nil {
		p.Tags = []Tag{}
	}
	if p.Images == nil {
		p.Images = []Image{}
	}
}

func (p *Project) AfterFind(tx *gorm.DB) error {
	p.normalize()
	if len(p.Images) > 0 {
		p.SyncCover()
	}
	return nil
}
