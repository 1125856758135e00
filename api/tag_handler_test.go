package api

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/rpupo63/project-catalog-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTag(t *testing.T) {
	h, _ := newTestHandler(t, nil)

	rec := request(t, h, http.MethodPost, "/tags", map[string]string{"name": "TypeScript"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	tag := decode[models.Tag](t, rec)
	assert.Equal(t, "TypeScript", tag.NameEn)
	assert.Equal(t, "typescript", tag.Slug)

	rec = request(t, h, http.MethodPost, "/tags", map[string]string{"name": "TypeScript"})
	require.Equal(t, http.StatusConflict, rec.Code)
	conflict := decode[ErrorResponse](t, rec)
	assert.Equal(t, "tag already exists", conflict.Error)
	assert.Equal(t, "name", conflict.Field)

	rec = request(t, h, http.MethodPost, "/tags", map[string]string{"nameEn": "nameless"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "name", decode[ErrorResponse](t, rec).Field)
}

func TestUpdateAndDeleteTag(t *testing.T) {
	h, _ := newTestHandler(t, nil)

	rec := request(t, h, http.MethodPost, "/projects", map[string]any{"name": "P", "tags": []string{"Vue", "Go"}})
	require.Equal(t, http.StatusCreated, rec.Code)
	project := decode[models.Project](t, rec)
	vue := project.Tags[1]
	require.Equal(t, "Vue", vue.Name)

	rec = request(t, h, http.MethodPut, "/tags/"+vue.ID.String(), map[string]string{"slug": "vuejs"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "vuejs", decode[models.Tag](t, rec).Slug)

	rec = request(t, h, http.MethodDelete, "/tags/"+vue.ID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[SuccessResponse](t, rec).Success)

	rec = request(t, h, http.MethodGet, "/projects/"+project.ID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	reloaded := decode[models.Project](t, rec)
	require.Len(t, reloaded.Tags, 1)
	assert.Equal(t, "Go", reloaded.Tags[0].Name)

	for _, method := range []string{http.MethodPut, http.MethodDelete} {
		rec = request(t, h, method, "/tags/"+uuid.NewString(), map[string]string{"name": "x"})
		assert.Equal(t, http.StatusNotFound, rec.Code, method)
	}
	rec = request(t, h, http.MethodGet, "/tags/not-a-uuid/projects", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTagListingsAndCounts(t *testing.T) {
	h, _ := newTestHandler(t, nil)

	for _, tags := range [][]string{{"JavaScript", "Vue"}, {"JavaScript", "React"}, {"JavaScript", "Awesome"}} {
		rec := request(t, h, http.MethodPost, "/projects", map[string]any{"name": tags[1] + " project", "tags": tags})
		require.Equal(t, http.StatusCreated, rec.Code)
	}
	rec := request(t, h, http.MethodPost, "/tags", map[string]string{"name": "China"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = request(t, h, http.MethodGet, "/tags", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	withCount := decode[[]models.TagWithCount](t, rec)
	require.Len(t, withCount, 5)
	counts := map[string]int64{}
	for _, tag := range withCount {
		counts[tag.Name] = tag.Count.Projects
	}
	assert.Equal(t, map[string]int64{"JavaScript": 3, "Vue": 1, "React": 1, "Awesome": 1, "China": 0}, counts)

	rec = request(t, h, http.MethodGet, "/tags/count", nil)
	usage := decode[[]models.TagUsage](t, rec)
	require.Len(t, usage, 5)
	assert.Equal(t, "JavaScript", usage[0].Name)
	assert.EqualValues(t, 3, usage[0].ProjectCount)
	assert.Equal(t, "China", usage[4].Name)

	rec = request(t, h, http.MethodGet, "/tags/categories", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	categories := decode[[]models.TagCategory[models.CategoryItem]](t, rec)
	names := []string{}
	for _, c := range categories {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"region", "resource-type", "tech-stack"}, names)
	assert.Equal(t, []models.CategoryItem{
		{ID: usage[0].ID, Name: "JavaScript", Count: 3},
	}, categories[2].Items[:1])

	rec = request(t, h, http.MethodGet, "/api/tags/admin", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	admin := decode[[]models.TagCategory[models.AdminCategoryItem]](t, rec)
	require.Len(t, admin, 3)
	assert.Equal(t, "china", admin[0].Items[0].Slug)
}

func TestProjectsByTag(t *testing.T) {
	h, _ := newTestHandler(t, nil)

	rec := request(t, h, http.MethodPost, "/projects", map[string]any{"name": "first", "tags": []string{"Vue"}})
	require.Equal(t, http.StatusCreated, rec.Code)
	first := decode[models.Project](t, rec)
	rec = request(t, h, http.MethodPost, "/projects", map[string]any{"name": "second", "tags": []string{"Vue"}})
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = request(t, h, http.MethodPost, "/projects", map[string]any{"name": "other", "tags": []string{"Go"}})
	require.Equal(t, http.StatusCreated, rec.Code)

	vueID := first.Tags[0].ID
	rec = request(t, h, http.MethodGet, "/tags/"+vueID.String()+"/projects", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	res := decode[models.TagProjects](t, rec)
	assert.Equal(t, models.TagSummary{ID: vueID, Name: "Vue"}, res.Tag)
	require.Len(t, res.Projects, 2)
	assert.Equal(t, "second", res.Projects[0].Name)
	assert.Equal(t, "first", res.Projects[1].Name)

	rec = request(t, h, http.MethodGet, "/tags/"+uuid.NewString()+"/projects", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "tag not found", decode[ErrorResponse](t, rec).Error)
}
