package planner

import "strings"

// Shopping list categories
const (
	CategoryMeat       = "meat"
	CategoryFish       = "fish"
	CategoryDairy      = "dairy"
	CategoryVegetables = "vegetables"
	CategoryFruits     = "fruits"
	CategoryGrains     = "grains"
	CategorySeasonings = "seasonings"
	CategoryOther      = "other"
)

// CategoryOrder is the order shopping list groups are presented in
var CategoryOrder = []string{
	CategoryMeat,
	CategoryFish,
	CategoryDairy,
	CategoryVegetables,
	CategoryFruits,
	CategoryGrains,
	CategorySeasonings,
	CategoryOther,
}

var ingredientCategories = map[string]string{
	"chicken breast": CategoryMeat,
	"salmon":         CategoryFish,
	"pasta":          CategoryGrains,
	"oats":           CategoryGrains,
	"milk":           CategoryDairy,
	"cream":          CategoryDairy,
	"parmesan":       CategoryDairy,
	"yogurt":         CategoryDairy,
	"bell pepper":    CategoryVegetables,
	"onion":          CategoryVegetables,
	"zucchini":       CategoryVegetables,
	"tomato":         CategoryVegetables,
	"broccoli":       CategoryVegetables,
	"carrot":         CategoryVegetables,
	"apple":          CategoryFruits,
	"banana":         CategoryFruits,
	"berries":        CategoryFruits,
	"garlic":         CategorySeasonings,
	"basil":          CategorySeasonings,
	"herbs":          CategorySeasonings,
	"cinnamon":       CategorySeasonings,
}

// CategoryOf returns the shopping category of an ingredient, or "other"
func CategoryOf(ingredient string) string {
	if category, ok := ingredientCategories[strings.ToLower(strings.TrimSpace(ingredient))]; ok {
		return category
	}
	return CategoryOther
}

func categoryRank(category string) int {
	for i, c := range CategoryOrder {
		if c == category {
			return i
		}
	}
	return len(CategoryOrder)
}
