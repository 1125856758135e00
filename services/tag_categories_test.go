package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/rpupo63/project-catalog-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategorize(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Vue", CategoryTechStack},
		{"Node.js", CategoryTechStack},
		{"C++", CategoryTechStack},
		{"C#", CategoryTechStack},
		{"TypeScript", CategoryTechStack},
		{"Awesome Lists", CategoryResourceType},
		{"Python Tutorial", CategoryResourceType},
		{"免费教程", CategoryResourceType},
		{"China", CategoryRegion},
		{"中国", CategoryRegion},
		{"Game", CategoryOther},
		{"Status", CategoryOther},
		{"", CategoryOther},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Categorize(tt.name))
		})
	}
}

func usageOf(name string, count int64) models.TagUsage {
	return models.TagUsage{ID: uuid.New(), Name: name, NameEn: name, Slug: models.Slugify(name), ProjectCount: count}
}

func TestSortByUsage(t *testing.T) {
	usage := []models.TagUsage{usageOf("b", 1), usageOf("c", 3), usageOf("a", 1), usageOf("d", 0)}
	SortByUsage(usage)

	names := make([]string, 0, len(usage))
	for _, u := range usage {
		names = append(names, u.Name)
	}
	assert.Equal(t, []string{"c", "a", "b", "d"}, names)
}

func TestPublicCategoriesOrdering(t *testing.T) {
	usage := []models.TagUsage{
		usageOf("Game", 4),
		usageOf("Vue", 2),
		usageOf("React", 5),
		usageOf("China", 1),
		usageOf("Awesome", 0),
	}

	categories := PublicCategories(usage)
	require.Len(t, categories, 4)

	names := make([]string, 0, len(categories))
	for _, c := range categories {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{CategoryRegion, CategoryResourceType, CategoryTechStack, CategoryOther}, names)

	tech := categories[2]
	require.Len(t, tech.Items, 2)
	assert.Equal(t, "React", tech.Items[0].Name)
	assert.EqualValues(t, 5, tech.Items[0].Count)
	assert.Equal(t, "Vue", tech.Items[1].Name)

	// every tag lands in exactly one category
	total := 0
	for _, c := range categories {
		total += len(c.Items)
	}
	assert.Equal(t, len(usage), total)
}

func TestCategoriesOmitEmptyAndAreDeterministic(t *testing.T) {
	usage := []models.TagUsage{usageOf("Go", 1), usageOf("Rust", 1)}

	first := PublicCategories(usage)
	second := PublicCategories([]models.TagUsage{usage[1], usage[0]})
	require.Len(t, first, 1)
	assert.Equal(t, CategoryTechStack, first[0].Name)
	assert.Equal(t, first, second)

	assert.Empty(t, PublicCategories(nil))
}

func TestAdminCategoriesCarryNameEnAndSlug(t *testing.T) {
	tag := models.TagUsage{ID: uuid.New(), Name: "前端", NameEn: "Frontend", Slug: "frontend", ProjectCount: 3}

	categories := AdminCategories([]models.TagUsage{tag})
	require.Len(t, categories, 1)
	assert.Equal(t, CategoryOther, categories[0].Name)
	assert.Equal(t, models.AdminCategoryItem{ID: tag.ID, Name: "前端", NameEn: "Frontend", Slug: "frontend", Count: 3}, categories[0].Items[0])
}
