package recipes

import (
	"strings"

	"kitchenmate/internal/models"
)

// Query narrows a recipe listing. Zero fields do not filter.
type Query struct {
	Cuisine     string
	Difficulty  string
	DietaryTags []string // any-of
	MaxTime     int      // minutes, prep plus cook
	Search      string
}

// Filter returns the recipes matching every set field of q, keeping order
func Filter(recipes []models.Recipe, q Query) []models.Recipe {
	search := strings.ToLower(strings.TrimSpace(q.Search))

	out := make([]models.Recipe, 0, len(recipes))
	for _, r := range recipes {
		if q.Cuisine != "" && r.Cuisine != q.Cuisine {
			continue
		}
		if q.Difficulty != "" && r.Difficulty != q.Difficulty {
			continue
		}
		if len(q.DietaryTags) > 0 && !hasAnyTag(r, q.DietaryTags) {
			continue
		}
		if q.MaxTime > 0 && r.TotalTime() > q.MaxTime {
			continue
		}
		if search != "" && !matchesSearch(r, search) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func hasAnyTag(r models.Recipe, tags []string) bool {
	for _, tag := range tags {
		for _, have := range r.DietaryTags {
			if have == tag {
				return true
			}
		}
	}
	return false
}

func matchesSearch(r models.Recipe, search string) bool {
	if strings.Contains(strings.ToLower(r.Name), search) ||
		strings.Contains(strings.ToLower(r.Description), search) {
		return true
	}
	for _, ing := range r.Ingredients {
		if strings.Contains(strings.ToLower(ing), search) {
			return true
		}
	}
	return false
}
