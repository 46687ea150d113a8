package models

// Day is one of the seven weekday labels of a meal plan
type Day string

const (
	Monday    Day = "Monday"
	Tuesday   Day = "Tuesday"
	Wednesday Day = "Wednesday"
	Thursday  Day = "Thursday"
	Friday    Day = "Friday"
	Saturday  Day = "Saturday"
	Sunday    Day = "Sunday"
)

// Weekdays lists the plan days in canonical order
var Weekdays = []Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// Valid reports whether d is one of the seven weekday labels
func (d Day) Valid() bool {
	for _, w := range Weekdays {
		if d == w {
			return true
		}
	}
	return false
}

// MealType identifies a slot within a day
type MealType string

const (
	Breakfast MealType = "breakfast"
	Lunch     MealType = "lunch"
	Dinner    MealType = "dinner"
	Snack     MealType = "snack"
)

// MealTypes lists the meal types in display order
var MealTypes = []MealType{Breakfast, Lunch, Dinner, Snack}

// Valid reports whether m is a known meal type
func (m MealType) Valid() bool {
	for _, t := range MealTypes {
		if m == t {
			return true
		}
	}
	return false
}

// MealSlot is a single recipe assignment with the servings requested for it
type MealSlot struct {
	Recipe   *Recipe `json:"recipe"`
	Servings int     `json:"servings"`
}

// Scale returns requested servings over the recipe's native servings.
// A zero count on either side counts as one.
func (s MealSlot) Scale() float64 {
	requested := s.Servings
	if requested == 0 {
		requested = 1
	}
	native := 1
	if s.Recipe != nil && s.Recipe.Servings != 0 {
		native = s.Recipe.Servings
	}
	return float64(requested) / float64(native)
}

// DayPlan maps meal types to their assignment for one day
type DayPlan map[MealType]MealSlot

// MealPlan is a sparse weekly assignment. A day without meals has no entry.
type MealPlan map[Day]DayPlan

// Assign puts recipe into the (day, mealType) slot, replacing any previous
// assignment. A servings value of zero uses the recipe's own servings.
func (p MealPlan) Assign(day Day, mealType MealType, recipe *Recipe, servings int) {
	if servings == 0 && recipe != nil {
		servings = recipe.Servings
	}
	meals, ok := p[day]
	if !ok {
		meals = make(DayPlan)
		p[day] = meals
	}
	meals[mealType] = MealSlot{Recipe: recipe, Servings: servings}
}

// Unassign clears the (day, mealType) slot and drops the day once it is empty
func (p MealPlan) Unassign(day Day, mealType MealType) {
	meals, ok := p[day]
	if !ok {
		return
	}
	delete(meals, mealType)
	if len(meals) == 0 {
		delete(p, day)
	}
}

// Slot returns the assignment for (day, mealType) if present
func (p MealPlan) Slot(day Day, mealType MealType) (MealSlot, bool) {
	slot, ok := p[day][mealType]
	return slot, ok
}

// Clone returns a copy of the plan structure. Recipes are shared.
func (p MealPlan) Clone() MealPlan {
	out := make(MealPlan, len(p))
	for day, meals := range p {
		copied := make(DayPlan, len(meals))
		for mt, slot := range meals {
			copied[mt] = slot
		}
		out[day] = copied
	}
	return out
}

// ShoppingListEntry is one aggregated ingredient of a plan's shopping list
type ShoppingListEntry struct {
	Name     string  `json:"name"`
	Amount   float64 `json:"amount"`
	Unit     string  `json:"unit"`
	Category string  `json:"category"`
	Checked  bool    `json:"checked"`
}

// UnitPortion is the dimensionless shopping-list unit: one recipe serving's worth
const UnitPortion = "portion"

// NutritionSummary holds per-day totals for all seven days and their sum
type NutritionSummary struct {
	Daily  map[Day]Nutrition `json:"daily"`
	Weekly Nutrition         `json:"weekly"`
}
