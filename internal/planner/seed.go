package planner

import (
	"context"
	"fmt"

	"kitchenmate/internal/models"
	"kitchenmate/internal/recipes"
)

// Assignment is one slot of a seed plan
type Assignment struct {
	Day      models.Day
	MealType models.MealType
	RecipeID uint
	Servings int
}

// DemoWeek is the sample week used to populate new plans
var DemoWeek = []Assignment{
	{models.Monday, models.Breakfast, 3, 2},
	{models.Monday, models.Lunch, 2, 2},
	{models.Monday, models.Dinner, 1, 4},
	{models.Tuesday, models.Breakfast, 5, 1},
	{models.Tuesday, models.Dinner, 4, 2},
	{models.Wednesday, models.Lunch, 2, 3},
	{models.Wednesday, models.Dinner, 1, 4},
}

// BuildPlan resolves assignments against a recipe provider
func BuildPlan(ctx context.Context, provider recipes.Provider, assignments []Assignment) (models.MealPlan, error) {
	plan := make(models.MealPlan)
	for _, a := range assignments {
		if !a.Day.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrInvalidDay, a.Day)
		}
		if !a.MealType.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrInvalidMealType, a.MealType)
		}
		recipe, err := provider.GetRecipe(ctx, a.RecipeID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve recipe %d: %w", a.RecipeID, err)
		}
		plan.Assign(a.Day, a.MealType, recipe, a.Servings)
	}
	return plan, nil
}
