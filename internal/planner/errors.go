package planner

import "errors"

var (
	// ErrPlanNotFound is returned for unknown plans and plans of other users
	ErrPlanNotFound = errors.New("meal plan not found")
	// ErrInvalidDay is returned for a day outside the seven weekday labels
	ErrInvalidDay = errors.New("invalid day")
	// ErrInvalidMealType is returned for an unknown meal type
	ErrInvalidMealType = errors.New("invalid meal type")
	// ErrInvalidServings is returned for a negative servings request
	ErrInvalidServings = errors.New("servings must not be negative")
	// ErrItemNotFound is returned when toggling an ingredient that is not on
	// the shopping list
	ErrItemNotFound = errors.New("shopping list item not found")
	// ErrRecipeRequired is returned when assigning without a recipe
	ErrRecipeRequired = errors.New("recipe is required")
)
