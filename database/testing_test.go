package database

import (
	"context"
	"testing"

	"github.com/rpupo63/project-catalog-backend/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

func newTestDatabase(t *testing.T) Database {
	t.Helper()
	gdb, err := Open(Options{Type: TypeSQLite, DSN: ":memory:", LogLevel: logger.Silent})
	require.NoError(t, err)
	require.NoError(t, models.Migrate(gdb))

	db := New(gdb)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func createProject(t *testing.T, db Database, in models.ProjectInput) *models.Project {
	t.Helper()
	project, err := db.ProjectRepo().Create(context.Background(), in)
	require.NoError(t, err)
	return project
}

// allTags reads every stored tag ordered by name.
func allTags(t *testing.T, db Database) []models.Tag {
	t.Helper()
	var tags []models.Tag
	require.NoError(t, db.db.Order("name ASC").Find(&tags).Error)
	return tags
}

func countImages(t *testing.T, db Database) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.db.Model(&models.Image{}).Count(&n).Error)
	return n
}

func tagNames(tags []models.Tag) []string {
	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		names = append(names, tag.Name)
	}
	return names
}

func projectNames(projects []models.Project) []string {
	names := make([]string, 0, len(projects))
	for _, p := range projects {
		names = append(names, p.Name)
	}
	return names
}
