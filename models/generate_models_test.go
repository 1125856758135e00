package models

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openMemoryDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func TestExtractColumnNameFromGormTag(t *testing.T) {
	assert.Equal(t, "sort_order", extractColumnNameFromGormTag("column:sort_order;type:integer"))
	assert.Equal(t, "", extractColumnNameFromGormTag("type:text;not null"))
}

func TestGetModelFieldsSkipsRelations(t *testing.T) {
	db := openMemoryDB(t)

	fields := getModelFields(db, Project{})
	assert.Contains(t, fields, "repo_url")
	assert.Contains(t, fields, "cover_image")
	assert.NotContains(t, fields, "tags")
	assert.NotContains(t, fields, "images")

	assert.Contains(t, getModelFields(db, Image{}), "sort_order")
}

func TestFindColumnMismatches(t *testing.T) {
	assert.Equal(t, []string{"legacy"}, findColumnMismatches([]string{"id", "legacy", "name"}, []string{"id", "name"}))
	assert.Empty(t, findColumnMismatches([]string{"id"}, []string{"id", "name"}))
}

func TestColumnMismatchReport(t *testing.T) {
	db := openMemoryDB(t)
	require.NoError(t, Migrate(db))

	var out bytes.Buffer
	n, err := GenerateColumnMismatchReport(db, &out)
	require.NoError(t, err)
	assert.Zero(t, n, out.String())

	require.NoError(t, db.Exec("ALTER TABLE projects ADD COLUMN legacy_slug text").Error)
	out.Reset()
	n, err = GenerateColumnMismatchReport(db, &out)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Contains(t, out.String(), "legacy_slug")
}
