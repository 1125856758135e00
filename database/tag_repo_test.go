package database

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rpupo63/project-catalog-backend/errs"
	"github.com/rpupo63/project-catalog-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddTagDefaults(t *testing.T) {
	db := newTestDatabase(t)

	tag, err := db.TagRepo().Add(context.Background(), models.TagInput{Name: "TypeScript"})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, tag.ID)
	assert.Equal(t, "TypeScript", tag.NameEn)
	assert.Equal(t, "typescript", tag.Slug)

	custom, err := db.TagRepo().Add(context.Background(), models.TagInput{Name: "前端", NameEn: "Frontend", Slug: "frontend"})
	require.NoError(t, err)
	assert.Equal(t, "Frontend", custom.NameEn)
	assert.Equal(t, "frontend", custom.Slug)
}

func TestAddDuplicateTagConflicts(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	_, err := db.TagRepo().Add(ctx, models.TagInput{Name: "Vue"})
	require.NoError(t, err)

	_, err = db.TagRepo().Add(ctx, models.TagInput{Name: "Vue"})
	require.Error(t, err)
	assert.True(t, errs.IsConflict(errs.NewDatabaseError("create", "tag", err)))
}

func TestEnsureTagIsIdempotent(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	first, err := db.TagRepo().Ensure(ctx, "Go")
	require.NoError(t, err)
	second, err := db.TagRepo().Ensure(ctx, " Go ")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	all := allTags(t, db)
	assert.Len(t, all, 1)
}

func TestUpdateTag(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()
	tag, err := db.TagRepo().Add(ctx, models.TagInput{Name: "js"})
	require.NoError(t, err)

	updated, err := db.TagRepo().Update(ctx, tag.ID, models.TagInput{NameEn: "JavaScript"})
	require.NoError(t, err)
	assert.Equal(t, "js", updated.Name)
	assert.Equal(t, "JavaScript", updated.NameEn)
	assert.Equal(t, "js", updated.Slug)

	_, err = db.TagRepo().Update(ctx, uuid.New(), models.TagInput{Name: "x"})
	assert.True(t, errs.IsNotFound(err))
}

func TestUsageCountsProjects(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	createProject(t, db, models.ProjectInput{Name: "a", Tags: []models.TagRef{models.TagName("Vue"), models.TagName("JavaScript")}})
	createProject(t, db, models.ProjectInput{Name: "b", Tags: []models.TagRef{models.TagName("JavaScript")}})
	_, err := db.TagRepo().Add(ctx, models.TagInput{Name: "Unused"})
	require.NoError(t, err)

	usage, err := db.TagRepo().Usage(ctx)
	require.NoError(t, err)

	counts := map[string]int64{}
	for _, u := range usage {
		counts[u.Name] = u.ProjectCount
	}
	assert.Equal(t, map[string]int64{"JavaScript": 2, "Vue": 1, "Unused": 0}, counts)
	assert.Equal(t, "javascript", usage[0].Slug)
}

func TestDeleteTagKeepsProjects(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	project := createProject(t, db, models.ProjectInput{Name: "P", Tags: []models.TagRef{models.TagName("Vue"), models.TagName("Go")}})
	vue, err := db.TagRepo().FindByName(ctx, "Vue")
	require.NoError(t, err)

	require.NoError(t, db.TagRepo().Delete(ctx, vue.ID))

	reloaded, err := db.ProjectRepo().FindByID(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Go"}, tagNames(reloaded.Tags))

	_, err = db.TagRepo().FindByID(ctx, vue.ID)
	assert.True(t, errs.IsNotFound(err))

	err = db.TagRepo().Delete(ctx, vue.ID)
	assert.True(t, errs.IsNotFound(err))
}
