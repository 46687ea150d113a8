package planner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kitchenmate/internal/models"
	"kitchenmate/internal/recipes"
)

func catalogRecipe(t *testing.T, id uint) *models.Recipe {
	t.Helper()
	for _, r := range recipes.DefaultCatalog() {
		if r.ID == id {
			r := r
			return &r
		}
	}
	t.Fatalf("recipe %d not in catalog", id)
	return nil
}

func TestCategoryOf(t *testing.T) {
	tests := []struct {
		ingredient string
		want       string
	}{
		{"Chicken Breast", CategoryMeat},
		{"salmon", CategoryFish},
		{" MILK ", CategoryDairy},
		{"broccoli", CategoryVegetables},
		{"Berries", CategoryFruits},
		{"oats", CategoryGrains},
		{"cinnamon", CategorySeasonings},
		{"quinoa", CategoryOther},
		{"", CategoryOther},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CategoryOf(tt.ingredient), tt.ingredient)
	}
}

func TestBuildShoppingList_Empty(t *testing.T) {
	assert.Empty(t, BuildShoppingList(models.MealPlan{}))
	assert.Empty(t, BuildShoppingList(nil))
}

func TestBuildShoppingList_AccumulatesAcrossDays(t *testing.T) {
	soup := &models.Recipe{ID: 1, Name: "Soup", Servings: 4, Ingredients: models.StringSlice{"garlic", "onion"}}
	bread := &models.Recipe{ID: 2, Name: "Garlic Bread", Servings: 1, Ingredients: models.StringSlice{"garlic", "bread"}}

	plan := models.MealPlan{}
	plan.Assign(models.Monday, models.Lunch, soup, 2)    // 0.5
	plan.Assign(models.Thursday, models.Dinner, bread, 2) // 2.0

	list := BuildShoppingList(plan)

	var garlic []models.ShoppingListEntry
	for _, e := range list {
		if e.Name == "garlic" {
			garlic = append(garlic, e)
		}
	}
	require.Len(t, garlic, 1)
	assert.Equal(t, 2.5, garlic[0].Amount)
	assert.Equal(t, models.UnitPortion, garlic[0].Unit)
	assert.Equal(t, CategorySeasonings, garlic[0].Category)
	assert.False(t, garlic[0].Checked)

	// vegetables before seasonings before other
	names := make([]string, 0, len(list))
	for _, e := range list {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"onion", "garlic", "bread"}, names)
}

func TestBuildShoppingList_Idempotent(t *testing.T) {
	plan := models.MealPlan{}
	plan.Assign(models.Monday, models.Dinner, catalogRecipe(t, 1), 4)
	plan.Assign(models.Friday, models.Lunch, catalogRecipe(t, 2), 2)

	first := BuildShoppingList(plan)
	first[0].Checked = true

	assert.Equal(t, BuildShoppingList(plan), BuildShoppingList(plan))
	assert.False(t, BuildShoppingList(plan)[0].Checked)
}

func TestBuildShoppingList_ZeroServingsDefaultsToOne(t *testing.T) {
	broken := &models.Recipe{ID: 9, Name: "Broken", Ingredients: models.StringSlice{"salt"}}
	plan := models.MealPlan{models.Monday: {models.Snack: {Recipe: broken}}}

	list := BuildShoppingList(plan)
	require.Len(t, list, 1)
	assert.Equal(t, 1.0, list[0].Amount)

	summary := SummarizeNutrition(plan)
	assert.Equal(t, models.Nutrition{}, summary.Daily[models.Monday])
}

func TestGroupByCategory(t *testing.T) {
	list := []models.ShoppingListEntry{
		{Name: "garlic", Category: CategorySeasonings},
		{Name: "milk", Category: CategoryDairy},
		{Name: "tongs", Category: "utensils"},
		{Name: "foil", Category: "baking"},
		{Name: "cream", Category: CategoryDairy},
	}

	groups := GroupByCategory(list)
	categories := make([]string, 0, len(groups))
	for _, g := range groups {
		categories = append(categories, g.Category)
	}
	assert.Equal(t, []string{CategoryDairy, CategorySeasonings, "baking", "utensils"}, categories)
	assert.Len(t, groups[0].Items, 2)
}

func TestApplyChecks(t *testing.T) {
	list := []models.ShoppingListEntry{{Name: "milk"}, {Name: "oats"}}
	checks := map[string]bool{"milk": true, "salmon": true}

	ApplyChecks(list, checks)

	assert.True(t, list[0].Checked)
	assert.False(t, list[1].Checked)
	assert.Equal(t, map[string]bool{"milk": true}, checks)
}

func TestSummarizeNutrition_OatmealMonday(t *testing.T) {
	plan := models.MealPlan{}
	plan.Assign(models.Monday, models.Breakfast, catalogRecipe(t, 3), 2)

	summary := SummarizeNutrition(plan)

	require.Len(t, summary.Daily, 7)
	assert.Equal(t, 280.0, summary.Daily[models.Monday].Calories)
	for _, day := range models.Weekdays[1:] {
		assert.Equal(t, models.Nutrition{}, summary.Daily[day], string(day))
	}
	assert.Equal(t, summary.Daily[models.Monday], summary.Weekly)
}

func TestSummarizeNutrition_WeeklyIsSumOfDaily(t *testing.T) {
	plan, err := BuildPlan(context.Background(), recipes.NewStaticProvider(recipes.DefaultCatalog()...), DemoWeek)
	require.NoError(t, err)

	summary := SummarizeNutrition(plan)

	var sum models.Nutrition
	for _, day := range models.Weekdays {
		n, ok := summary.Daily[day]
		require.True(t, ok, "missing %s", day)
		sum = sum.Add(n)
	}
	assert.InDelta(t, sum.Calories, summary.Weekly.Calories, 1e-9)
	assert.InDelta(t, sum.Protein, summary.Weekly.Protein, 1e-9)
	assert.InDelta(t, sum.Carbs, summary.Weekly.Carbs, 1e-9)
	assert.InDelta(t, sum.Fat, summary.Weekly.Fat, 1e-9)

	assert.InDelta(t, 810, summary.Daily[models.Monday].Calories, 1e-9)
	assert.InDelta(t, 43.5, summary.Daily[models.Monday].Protein, 1e-9)
	assert.InDelta(t, 700, summary.Daily[models.Tuesday].Calories, 1e-9)
	assert.InDelta(t, 635, summary.Daily[models.Wednesday].Calories, 1e-9)
	assert.InDelta(t, 39.25, summary.Daily[models.Wednesday].Protein, 1e-9)
	assert.InDelta(t, 2145, summary.Weekly.Calories, 1e-9)
	assert.InDelta(t, 126.75, summary.Weekly.Protein, 1e-9)
	assert.InDelta(t, 207, summary.Weekly.Carbs, 1e-9)
	assert.InDelta(t, 92, summary.Weekly.Fat, 1e-9)
	assert.Equal(t, models.Nutrition{}, summary.Daily[models.Sunday])
}

func TestBuildShoppingList_DemoWeek(t *testing.T) {
	plan, err := BuildPlan(context.Background(), recipes.NewStaticProvider(recipes.DefaultCatalog()...), DemoWeek)
	require.NoError(t, err)

	amounts := make(map[string]float64)
	for _, e := range BuildShoppingList(plan) {
		amounts[e.Name] = e.Amount
	}
	assert.InDelta(t, 3.25, amounts["garlic"], 1e-9)
	assert.InDelta(t, 2.0, amounts["oats"], 1e-9)
	assert.InDelta(t, 2.0, amounts["milk"], 1e-9)
	assert.InDelta(t, 2.0, amounts["honey"], 1e-9)
	assert.InDelta(t, 1.0, amounts["salmon"], 1e-9)
}

func TestBuildPlan_Errors(t *testing.T) {
	provider := recipes.NewStaticProvider(recipes.DefaultCatalog()...)

	_, err := BuildPlan(context.Background(), provider, []Assignment{{Day: "Funday", MealType: models.Lunch, RecipeID: 1}})
	assert.ErrorIs(t, err, ErrInvalidDay)

	_, err = BuildPlan(context.Background(), provider, []Assignment{{Day: models.Monday, MealType: "brunch", RecipeID: 1}})
	assert.ErrorIs(t, err, ErrInvalidMealType)

	_, err = BuildPlan(context.Background(), provider, []Assignment{{Day: models.Monday, MealType: models.Lunch, RecipeID: 42}})
	assert.ErrorIs(t, err, recipes.ErrRecipeNotFound)
}
