package planner

import (
	"sort"

	"kitchenmate/internal/models"
)

// BuildShoppingList aggregates every ingredient of every assigned meal into
// one entry per ingredient name. Amounts are in portions. All entries come
// back unchecked.
func BuildShoppingList(plan models.MealPlan) []models.ShoppingListEntry {
	entries := make(map[string]*models.ShoppingListEntry)

	for _, meals := range plan {
		for _, slot := range meals {
			if slot.Recipe == nil {
				continue
			}
			scale := slot.Scale()
			for _, ingredient := range slot.Recipe.Ingredients {
				if entry, ok := entries[ingredient]; ok {
					entry.Amount += scale
					continue
				}
				entries[ingredient] = &models.ShoppingListEntry{
					Name:     ingredient,
					Amount:   scale,
					Unit:     models.UnitPortion,
					Category: CategoryOf(ingredient),
				}
			}
		}
	}

	list := make([]models.ShoppingListEntry, 0, len(entries))
	for _, entry := range entries {
		list = append(list, *entry)
	}
	SortByCategory(list)
	return list
}

// SortByCategory orders entries by CategoryOrder, then by name
func SortByCategory(list []models.ShoppingListEntry) {
	sort.Slice(list, func(i, j int) bool {
		ri, rj := categoryRank(list[i].Category), categoryRank(list[j].Category)
		if ri != rj {
			return ri < rj
		}
		return list[i].Name < list[j].Name
	})
}

// CategoryGroup is a run of shopping list entries sharing a category
type CategoryGroup struct {
	Category string                     `json:"category"`
	Items    []models.ShoppingListEntry `json:"items"`
}

// GroupByCategory splits the list into groups in CategoryOrder, skipping
// categories with no items
func GroupByCategory(list []models.ShoppingListEntry) []CategoryGroup {
	byCategory := make(map[string][]models.ShoppingListEntry)
	for _, entry := range list {
		byCategory[entry.Category] = append(byCategory[entry.Category], entry)
	}

	groups := make([]CategoryGroup, 0, len(byCategory))
	for _, category := range CategoryOrder {
		if items, ok := byCategory[category]; ok {
			groups = append(groups, CategoryGroup{Category: category, Items: items})
			delete(byCategory, category)
		}
	}

	// categories outside the canonical set go last, alphabetically
	rest := make([]string, 0, len(byCategory))
	for category := range byCategory {
		rest = append(rest, category)
	}
	sort.Strings(rest)
	for _, category := range rest {
		groups = append(groups, CategoryGroup{Category: category, Items: byCategory[category]})
	}
	return groups
}

// ApplyChecks copies remembered check marks onto a freshly built list and
// drops marks for ingredients that are no longer on it
func ApplyChecks(list []models.ShoppingListEntry, checks map[string]bool) {
	present := make(map[string]bool, len(list))
	for i := range list {
		present[list[i].Name] = true
		list[i].Checked = checks[list[i].Name]
	}
	for name := range checks {
		if !present[name] {
			delete(checks, name)
		}
	}
}
