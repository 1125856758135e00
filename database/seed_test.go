package database

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rpupo63/project-catalog-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureBaselineTagsTwice(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	_, err := db.Seeder().EnsureTags(ctx, BaselineTags)
	require.NoError(t, err)
	_, err = db.Seeder().EnsureTags(ctx, BaselineTags)
	require.NoError(t, err)

	tags := allTags(t, db)
	assert.ElementsMatch(t, BaselineTags, tagNames(tags))
}

func TestResetReplacesCatalog(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	createProject(t, db, models.ProjectInput{Name: "stale", Tags: []models.TagRef{models.TagName("Stale")}, Images: []models.ImageRef{{URL: "x"}}})

	created, err := db.Seeder().Reset(ctx)
	require.NoError(t, err)
	require.Len(t, created, len(DemoProjects))

	projects, total, err := db.ProjectRepo().List(ctx, ProjectQuery{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.ElementsMatch(t, []string{"Vue.js", "React"}, projectNames(projects))
	for _, p := range projects {
		assert.Len(t, p.Tags, 2)
		require.Len(t, p.Images, 1)
		assert.NotNil(t, p.CoverImage)
	}

	tags := allTags(t, db)
	assert.ElementsMatch(t, BaselineTags, tagNames(tags))

	// a second reset yields the same catalog
	_, err = db.Seeder().Reset(ctx)
	require.NoError(t, err)
	_, total, err = db.ProjectRepo().List(ctx, ProjectQuery{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
}

func TestResetKeepsCatalogWhenInsertFails(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	stale := createProject(t, db, models.ProjectInput{Name: "stale", Tags: []models.TagRef{models.TagName("Stale")}, Images: []models.ImageRef{{URL: "x"}}})

	broken := []models.ProjectInput{
		DemoProjects[0],
		{Name: "broken", Tags: []models.TagRef{models.TagID(uuid.New())}},
	}
	_, err := db.Seeder().reset(ctx, broken)
	require.Error(t, err)

	projects, total, err := db.ProjectRepo().List(ctx, ProjectQuery{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, projects, 1)
	assert.Equal(t, stale.ID, projects[0].ID)
	assert.Equal(t, []string{"Stale"}, tagNames(allTags(t, db)))
	assert.EqualValues(t, 1, countImages(t, db))
}
