package database

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rpupo63/project-catalog-backend/errs"
	"github.com/rpupo63/project-catalog-backend/models"
	"gorm.io/gorm"
)

type TagRepo struct {
	db *gorm.DB
}

func NewTagRepo(db *gorm.DB) *TagRepo {
	return &TagRepo{db}
}

// FindByID returns a tag by its ID
func (r *TagRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Tag, error) {
	var tag models.Tag
	err := r.db.WithContext(ctx).First(&tag, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewNotFound("tag")
	}
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// FindByName returns a tag by its exact name
func (r *TagRepo) FindByName(ctx context.Context, name string) (*models.Tag, error) {
	var tag models.Tag
	err := r.db.WithContext(ctx).First(&tag, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewNotFound("tag")
	}
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// Usage returns every tag with the number of projects it is attached to, ordered by name.
func (r *TagRepo) Usage(ctx context.Context) ([]models.TagUsage, error) {
	usage := []models.TagUsage{}
	err := r.db.WithContext(ctx).
		Table("tags").
		Select("tags.id, tags.name, tags.name_en, tags.slug, COUNT(project_tags.project_id) AS project_count").
		Joins("LEFT JOIN project_tags ON project_tags.tag_id = tags.id").
		Group("tags.id, tags.name, tags.name_en, tags.slug").
		Order("tags.name ASC").
		Scan(&usage).Error
	return usage, err
}

// Add inserts a new tag. A duplicate name surfaces as a uniqueness conflict.
func (r *TagRepo) Add(ctx context.Context, in models.TagInput) (*models.Tag, error) {
	tag := models.Tag{
		Name:   strings.TrimSpace(in.Name),
		NameEn: strings.TrimSpace(in.NameEn),
		Slug:   strings.TrimSpace(in.Slug),
	}
	if err := r.db.WithContext(ctx).Create(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

// Ensure returns the tag with this name, creating it when missing. Existing rows are left untouched.
func (r *TagRepo) Ensure(ctx context.Context, name string) (*models.Tag, error) {
	name = strings.TrimSpace(name)
	tag, err := firstOrCreateTag(r.db.WithContext(ctx), name)
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// Update changes the non-empty fields of in on the tag with this id
func (r *TagRepo) Update(ctx context.Context, id uuid.UUID, in models.TagInput) (*models.Tag, error) {
	var updated *models.Tag
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var tag models.Tag
		if err := tx.First(&tag, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NewNotFound("tag")
			}
			return err
		}

		changes := models.Tag{
			Name:   strings.TrimSpace(in.Name),
			NameEn: strings.TrimSpace(in.NameEn),
			Slug:   strings.TrimSpace(in.Slug),
		}
		if err := tx.Model(&tag).Updates(changes).Error; err != nil {
			return err
		}

		var reloaded models.Tag
		if err := tx.First(&reloaded, "id = ?", id).Error; err != nil {
			return err
		}
		updated = &reloaded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete detaches the tag from every project and removes it; the projects stay
func (r *TagRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var tag models.Tag
		if err := tx.First(&tag, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NewNotFound("tag")
			}
			return err
		}
		if err := tx.Model(&tag).Association("Projects").Clear(); err != nil {
			return err
		}
		return tx.Delete(&tag).Error
	})
}
