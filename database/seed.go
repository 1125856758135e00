package database

import (
	"context"
	"fmt"

	"github.com/rpupo63/project-catalog-backend/errs"
	"github.com/rpupo63/project-catalog-backend/models"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// BaselineTags are ensured by every seed run.
var BaselineTags = []string{"JavaScript", "Python", "TypeScript", "Vue", "React", "Node.js"}

// DemoProjects is the fixed dataset inserted by Reset.
var DemoProjects = []models.ProjectInput{
	{
		Name:        "Vue.js",
		Description: "Vue.js is a progressive framework for building user interfaces.",
		RepoURL:     "https://github.com/vuejs/core",
		Language:    "TypeScript",
		Stars:       200000,
		Tags:        []models.TagRef{models.TagName("JavaScript"), models.TagName("Vue")},
		Images:      []models.ImageRef{{URL: "https://picsum.photos/seed/vue/800/600"}},
	},
	{
		Name:        "React",
		Description: "React is a JavaScript library for building user interfaces.",
		RepoURL:     "https://github.com/facebook/react",
		Language:    "JavaScript",
		Stars:       180000,
		Tags:        []models.TagRef{models.TagName("JavaScript"), models.TagName("React")},
		Images:      []models.ImageRef{{URL: "https://picsum.photos/seed/react/800/600"}},
	},
}

// Seeder populates baseline catalog data. It is run out-of-band, never from a request.
type Seeder struct {
	db *gorm.DB
}

func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db}
}

// EnsureTags creates each named tag that does not exist yet. Safe to run repeatedly.
func (s *Seeder) EnsureTags(ctx context.Context, names []string) ([]models.Tag, error) {
	repo := NewTagRepo(s.db)
	tags := make([]models.Tag, 0, len(names))
	for _, name := range names {
		tag, err := repo.Ensure(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("ensure tag %q: %w", name, err)
		}
		tags = append(tags, *tag)
	}
	log.Info().Int("tags", len(tags)).Msg("baseline tags ensured")
	return tags, nil
}

// Reset wipes images, tag links, projects and tags, then inserts the baseline tags and demo
// projects. It runs as one transaction: a failed insert leaves the previous catalog in place.
func (s *Seeder) Reset(ctx context.Context) ([]models.Project, error) {
	return s.reset(ctx, DemoProjects)
}

func (s *Seeder) reset(ctx context.Context, demos []models.ProjectInput) ([]models.Project, error) {
	created := make([]models.Project, 0, len(demos))
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, table := range []string{"images", "project_tags", "projects", "tags"} {
			if err := tx.Exec("DELETE FROM " + table).Error; err != nil {
				return fmt.Errorf("clear %s: %w", table, err)
			}
		}

		if _, err := NewSeeder(tx).EnsureTags(ctx, BaselineTags); err != nil {
			return err
		}

		projects := NewProjectRepo(tx)
		for _, demo := range demos {
			project, err := projects.Create(ctx, demo)
			if err != nil {
				return fmt.Errorf("create demo project %q: %w", demo.Name, err)
			}
			created = append(created, *project)
		}
		return nil
	})
	if err != nil {
		return nil, errs.NewTransactionFailedError("catalog reset", err)
	}

	log.Info().Int("projects", len(created)).Msg("demo catalog reset")
	return created, nil
}
