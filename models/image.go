package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Image belongs to exactly one project; Order defines the display sequence
type Image struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	ProjectID uuid.UUID `json:"projectId" db:"project_id" gorm:"type:uuid;not null;index:idx_image_project_id"`
	URL       string    `json:"url" db:"url" gorm:"type:text;not null"`
	Order     int       `json:"order" db:"sort_order" gorm:"column:sort_order;type:integer;not null;default:0"`
	IsCover   bool      `json:"isCover" db:"is_cover" gorm:"type:boolean;not null;default:false"`
}

func (i *Image) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// ImagesFromURLs assigns order by position; the first image is the cover.
func ImagesFromURLs(projectID uuid.UUID, urls []string) []Image {
	images := make([]Image, 0, len(urls))
	for index, url := range urls {
		images = append(images, Image{
			ProjectID: projectID,
			URL:       url,
			Order:     index,
			IsCover:   index == 0,
		})
	}
	return images
}
