package services

import (
	"regexp"
	"sort"

	"github.com/rpupo63/project-catalog-backend/models"
)

const (
	CategoryResourceType = "resource-type"
	CategoryTechStack    = "tech-stack"
	CategoryRegion       = "region"
	CategoryOther        = "other"
)

type categoryRule struct {
	category string
	pattern  *regexp.Regexp
}

// categoryRules are tried in order; the first match wins.
var categoryRules = []categoryRule{
	{
		category: CategoryResourceType,
		pattern: regexp.MustCompile(`(?i)(\b(resources?|platforms?|courses?|tutorials?|awesome|books?|docs?|documentation|guides?|roadmaps?|interviews?|cheat-?sheets?|examples?|templates?|tools?)\b|教程|课程|资源|平台|学习|书籍|文档|面试|工具)`),
	},
	{
		category: CategoryTechStack,
		pattern: regexp.MustCompile(`(?i)(\b(javascript|typescript|python|java|golang|go|rust|ruby|php|swift|kotlin|dart|scala|elixir|haskell|lua|html|css|sql|vue|react|angular|svelte|solid|next\.?js|nuxt|node\.?js|node|deno|bun|express|django|flask|fastapi|spring|rails|laravel|flutter|electron|tailwind|webpack|vite|docker|kubernetes|graphql|redis|postgres(ql)?|mysql|mongodb)\b|(^|\s)(c|c\+\+|c#|\.net)(\s|$))`),
	},
	{
		category: CategoryRegion,
		pattern: regexp.MustCompile(`(?i)(\b(china|chinese|japan|japanese|korea|korean|usa|us|america|american|europe|european|eu|uk|britain|england|germany|german|france|french|india|russia|asia|africa|canada|australia|brazil|taiwan|hong ?kong|singapore|global|international)\b|中国|国内|海外|日本|韩国|美国|欧洲|英国|德国|法国|印度|俄罗斯|亚洲|非洲|台湾|香港|新加坡|全球)`),
	},
}

// Categorize returns the single category a tag name belongs to.
func Categorize(name string) string {
	for _, rule := range categoryRules {
		if rule.pattern.MatchString(name) {
			return rule.category
		}
	}
	return CategoryOther
}

// categoryLess orders categories alphabetically with "other" always last.
func categoryLess(a, b string) bool {
	if a == CategoryOther || b == CategoryOther {
		return b == CategoryOther && a != CategoryOther
	}
	return a < b
}

// groupUsage buckets tags by category. Buckets are ordered per categoryLess and
// items inside a bucket by project count descending, then name.
func groupUsage(usage []models.TagUsage) ([]string, map[string][]models.TagUsage) {
	buckets := make(map[string][]models.TagUsage)
	for _, tag := range usage {
		category := Categorize(tag.Name)
		buckets[category] = append(buckets[category], tag)
	}

	names := make([]string, 0, len(buckets))
	for name, items := range buckets {
		SortByUsage(items)
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return categoryLess(names[i], names[j]) })
	return names, buckets
}

// SortByUsage orders tags by project count descending, breaking ties by name.
func SortByUsage(usage []models.TagUsage) {
	sort.SliceStable(usage, func(i, j int) bool {
		if usage[i].ProjectCount != usage[j].ProjectCount {
			return usage[i].ProjectCount > usage[j].ProjectCount
		}
		return usage[i].Name < usage[j].Name
	})
}

// PublicCategories is the visitor-facing categorization: id, name and count per tag.
func PublicCategories(usage []models.TagUsage) []models.TagCategory[models.CategoryItem] {
	names, buckets := groupUsage(usage)
	categories := make([]models.TagCategory[models.CategoryItem], 0, len(names))
	for _, name := range names {
		items := make([]models.CategoryItem, 0, len(buckets[name]))
		for _, tag := range buckets[name] {
			items = append(items, models.CategoryItem{ID: tag.ID, Name: tag.Name, Count: tag.ProjectCount})
		}
		categories = append(categories, models.TagCategory[models.CategoryItem]{Name: name, Items: items})
	}
	return categories
}

// AdminCategories uses the same buckets as PublicCategories and adds nameEn and slug.
func AdminCategories(usage []models.TagUsage) []models.TagCategory[models.AdminCategoryItem] {
	names, buckets := groupUsage(usage)
	categories := make([]models.TagCategory[models.AdminCategoryItem], 0, len(names))
	for _, name := range names {
		items := make([]models.AdminCategoryItem, 0, len(buckets[name]))
		for _, tag := range buckets[name] {
			items = append(items, models.AdminCategoryItem{
				ID:     tag.ID,
				Name:   tag.Name,
				NameEn: tag.NameEn,
				Slug:   tag.Slug,
				Count:  tag.ProjectCount,
			})
		}
		categories = append(categories, models.TagCategory[models.AdminCategoryItem]{Name: name, Items: items})
	}
	return categories
}
