package database

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rpupo63/project-catalog-backend/errs"
	"github.com/rpupo63/project-catalog-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100

	SortLatest = "latest"
	SortHot    = "hot"
)

// ProjectQuery filters and pages a project listing
type ProjectQuery struct {
	Page     int
	PageSize int
	Tag      string // exact tag name or tag id
	Search   string
	Sort     string
}

// Normalize replaces out-of-range paging values with the defaults.
func (q ProjectQuery) Normalize() ProjectQuery {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}
	if q.PageSize > MaxPageSize {
		q.PageSize = MaxPageSize
	}
	if q.Sort != SortHot {
		q.Sort = SortLatest
	}
	q.Tag = strings.TrimSpace(q.Tag)
	q.Search = strings.TrimSpace(q.Search)
	return q
}

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// withRelations preloads tags by name and images in display order.
func withRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("tags.name ASC") }).
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("images.sort_order ASC") })
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// projectIDsByTag selects the ids of projects carrying a tag that matches cond.
func (r *ProjectRepo) projectIDsByTag(cond string, args ...interface{}) *gorm.DB {
	return r.db.Table("project_tags").
		Select("project_tags.project_id").
		Joins("JOIN tags ON tags.id = project_tags.tag_id").
		Where(cond, args...)
}

func (r *ProjectRepo) filter(q ProjectQuery) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if q.Tag != "" {
			if id, err := uuid.Parse(q.Tag); err == nil {
				db = db.Where("projects.id IN (?)", r.projectIDsByTag("tags.name = ? OR tags.id = ?", q.Tag, id))
			} else {
				db = db.Where("projects.id IN (?)", r.projectIDsByTag("tags.name = ?", q.Tag))
			}
		}
		if q.Search != "" {
			like := "%" + escapeLike(q.Search) + "%"
			db = db.Where(r.db.
				Where(`projects.name LIKE ? ESCAPE '\'`, like).
				Or(`projects.description LIKE ? ESCAPE '\'`, like).
				Or(`projects.language LIKE ? ESCAPE '\'`, like).
				Or("projects.id IN (?)", r.projectIDsByTag(`tags.name LIKE ? ESCAPE '\'`, like)))
		}
		return db
	}
}

// List returns one page of projects matching q, newest first (or most starred for SortHot),
// together with the total number of matches.
func (r *ProjectRepo) List(ctx context.Context, q ProjectQuery) ([]models.Project, int64, error) {
	q = q.Normalize()

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Project{}).Scopes(r.filter(q)).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "projects.created_at DESC"
	if q.Sort == SortHot {
		order = "projects.stars DESC, projects.created_at DESC"
	}

	projects := []models.Project{}
	err := r.db.WithContext(ctx).
		Scopes(r.filter(q), withRelations).
		Order(order).
		Limit(q.PageSize).
		Offset((q.Page - 1) * q.PageSize).
		Find(&projects).Error
	return projects, total, err
}

// FindByID returns a project with its tags and images
func (r *ProjectRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	return findProject(r.db.WithContext(ctx), id)
}

func findProject(db *gorm.DB, id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := db.Scopes(withRelations).First(&project, "projects.id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewNotFound("project")
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// FindByTag returns every project attached to the tag, newest first
func (r *ProjectRepo) FindByTag(ctx context.Context, tagID uuid.UUID) ([]models.Project, error) {
	projects := []models.Project{}
	err := r.db.WithContext(ctx).
		Scopes(withRelations).
		Where("projects.id IN (?)", r.projectIDsByTag("tags.id = ?", tagID)).
		Order("projects.created_at DESC").
		Find(&projects).Error
	return projects, err
}

// Create inserts a project with its tags (create-or-attach) and ordered images in one transaction.
func (r *ProjectRepo) Create(ctx context.Context, in models.ProjectInput) (*models.Project, error) {
	var created *models.Project
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tags, err := resolveTags(tx, in.Tags)
		if err != nil {
			return err
		}

		project := models.Project{
			Name:        in.Name,
			Description: in.Description,
			RepoURL:     in.RepoURL,
			Language:    in.Language,
			Stars:       in.Stars,
			Images:      models.ImagesFromURLs(uuid.Nil, in.ImageURLs()),
		}
		project.SyncCover()

		if err := tx.Omit("Tags").Create(&project).Error; err != nil {
			return err
		}
		if len(tags) > 0 {
			if err := tx.Model(&project).Association("Tags").Append(tags); err != nil {
				return err
			}
		}

		created, err = findProject(tx, project.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Update fully replaces a project's fields, tags and images. Tags are detached and
// re-attached, images deleted and recreated, all inside one transaction.
func (r *ProjectRepo) Update(ctx context.Context, id uuid.UUID, in models.ProjectInput) (*models.Project, error) {
	var updated *models.Project
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Project
		if err := tx.First(&existing, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NewNotFound("project")
			}
			return err
		}

		tags, err := resolveTags(tx, in.Tags)
		if err != nil {
			return err
		}

		if err := tx.Model(&existing).Association("Tags").Clear(); err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.Image{}).Error; err != nil {
			return err
		}

		images := models.ImagesFromURLs(id, in.ImageURLs())
		if len(images) > 0 {
			if err := tx.Create(&images).Error; err != nil {
				return err
			}
		}

		existing.Name = in.Name
		existing.Description = in.Description
		existing.RepoURL = in.RepoURL
		existing.Language = in.Language
		existing.Stars = in.Stars
		existing.Images = images
		existing.SyncCover()

		if err := tx.Model(&existing).
			Select("Name", "Description", "RepoURL", "Language", "Stars", "CoverImage", "UpdatedAt").
			Updates(&existing).Error; err != nil {
			return err
		}

		if len(tags) > 0 {
			if err := tx.Model(&existing).Association("Tags").Append(tags); err != nil {
				return err
			}
		}

		updated, err = findProject(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a project and its images; its tags are only detached
func (r *ProjectRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var project models.Project
		if err := tx.First(&project, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NewNotFound("project")
			}
			return err
		}
		if err := tx.Model(&project).Association("Tags").Clear(); err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.Image{}).Error; err != nil {
			return err
		}
		return tx.Delete(&project).Error
	})
}

// resolveTags maps tag references to stored tags, creating named tags that don't exist yet.
func resolveTags(tx *gorm.DB, refs []models.TagRef) ([]models.Tag, error) {
	tags := make([]models.Tag, 0, len(refs))
	seen := make(map[uuid.UUID]bool, len(refs))

	for _, ref := range refs {
		var tag models.Tag
		switch {
		case ref.IsID():
			if err := tx.First(&tag, "id = ?", ref.ID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, errs.NewBadRequestErrorWithField("unknown tag", "tags", ref.ID.String())
				}
				return nil, err
			}
		default:
			name := strings.TrimSpace(ref.Name)
			if name == "" {
				continue
			}
			var err error
			if tag, err = firstOrCreateTag(tx, name); err != nil {
				return nil, err
			}
		}

		if !seen[tag.ID] {
			seen[tag.ID] = true
			tags = append(tags, tag)
		}
	}
	return tags, nil
}

func firstOrCreateTag(tx *gorm.DB, name string) (models.Tag, error) {
	var tags []models.Tag
	if err := tx.Where("name = ?", name).Limit(1).Find(&tags).Error; err != nil {
		return models.Tag{}, err
	}
	if len(tags) > 0 {
		return tags[0], nil
	}
	return insertTagIfMissing(tx, name)
}

// insertTagIfMissing inserts the tag unless a row with this name already exists, and returns
// the stored row either way. A concurrent writer creating the same name is not an error.
func insertTagIfMissing(tx *gorm.DB, name string) (models.Tag, error) {
	tag := models.NewTag(name)
	result := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&tag)
	if result.Error != nil {
		return models.Tag{}, result.Error
	}
	if result.RowsAffected > 0 {
		return tag, nil
	}

	var existing models.Tag
	err := tx.First(&existing, "name = ?", name).Error
	return existing, err
}
