package planner

import (
	"fmt"
	"time"

	"kitchenmate/internal/models"
)

// DateLayout is the calendar date format used for week starts
const DateLayout = "2006-01-02"

// Session owns one weekly meal plan and the shopping list and nutrition
// summary derived from it. A Session is not safe for concurrent use.
type Session struct {
	ID        string
	UserID    string
	Name      string
	WeekStart time.Time
	RecordID  uint

	plan      models.MealPlan
	shopping  []models.ShoppingListEntry
	nutrition models.NutritionSummary
	checks    map[string]bool

	onRecompute func(elapsed time.Duration, items int)
}

// NewSession creates an empty plan session for the week starting at weekStart
func NewSession(id, userID, name string, weekStart time.Time) *Session {
	s := &Session{
		ID:        id,
		UserID:    userID,
		Name:      name,
		WeekStart: WeekStartOf(weekStart),
		plan:      make(models.MealPlan),
		checks:    make(map[string]bool),
	}
	s.Recompute()
	return s
}

// WeekStartOf returns midnight of the Monday of t's week
func WeekStartOf(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// Assign places recipe into the (day, mealType) slot. Zero servings uses the
// recipe's own servings.
func (s *Session) Assign(day models.Day, mealType models.MealType, recipe *models.Recipe, servings int) error {
	if err := validateSlot(day, mealType); err != nil {
		return err
	}
	if recipe == nil {
		return ErrRecipeRequired
	}
	if servings < 0 {
		return ErrInvalidServings
	}
	s.plan.Assign(day, mealType, recipe, servings)
	s.Recompute()
	return nil
}

// Unassign clears the (day, mealType) slot. Clearing an empty slot is not an
// error.
func (s *Session) Unassign(day models.Day, mealType models.MealType) error {
	if err := validateSlot(day, mealType); err != nil {
		return err
	}
	s.plan.Unassign(day, mealType)
	s.Recompute()
	return nil
}

func validateSlot(day models.Day, mealType models.MealType) error {
	if !day.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidDay, day)
	}
	if !mealType.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidMealType, mealType)
	}
	return nil
}

// Recompute rebuilds the shopping list and nutrition summary from the plan
// and reapplies remembered check marks
func (s *Session) Recompute() {
	start := time.Now()

	s.shopping = BuildShoppingList(s.plan)
	ApplyChecks(s.shopping, s.checks)
	s.nutrition = SummarizeNutrition(s.plan)

	if s.onRecompute != nil {
		s.onRecompute(time.Since(start), len(s.shopping))
	}
}

// SetChecked marks an ingredient on the shopping list
func (s *Session) SetChecked(ingredient string, checked bool) error {
	for i := range s.shopping {
		if s.shopping[i].Name == ingredient {
			s.shopping[i].Checked = checked
			if checked {
				s.checks[ingredient] = true
			} else {
				delete(s.checks, ingredient)
			}
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrItemNotFound, ingredient)
}

// Toggle flips the check mark of an ingredient and returns the new state
func (s *Session) Toggle(ingredient string) (bool, error) {
	checked := !s.checks[ingredient]
	if err := s.SetChecked(ingredient, checked); err != nil {
		return false, err
	}
	return checked, nil
}

// Plan returns a copy of the current meal plan
func (s *Session) Plan() models.MealPlan {
	return s.plan.Clone()
}

// ShoppingList returns a copy of the current shopping list
func (s *Session) ShoppingList() []models.ShoppingListEntry {
	out := make([]models.ShoppingListEntry, len(s.shopping))
	copy(out, s.shopping)
	return out
}

// Nutrition returns the current nutrition summary
func (s *Session) Nutrition() models.NutritionSummary {
	daily := make(map[models.Day]models.Nutrition, len(s.nutrition.Daily))
	for d, n := range s.nutrition.Daily {
		daily[d] = n
	}
	return models.NutritionSummary{Daily: daily, Weekly: s.nutrition.Weekly}
}

// View is the presentation snapshot of a plan session
type View struct {
	ID           string                  `json:"id"`
	Name         string                  `json:"name"`
	WeekStart    string                  `json:"week_start"`
	Days         []DayView               `json:"days"`
	ShoppingList []CategoryGroup         `json:"shopping_list"`
	Nutrition    models.NutritionSummary `json:"nutrition"`
}

// DayView lists the meals of one weekday
type DayView struct {
	Day       models.Day       `json:"day"`
	Date      string           `json:"date"`
	Meals     []MealView       `json:"meals"`
	Nutrition models.Nutrition `json:"nutrition"`
}

// MealView is one filled slot
type MealView struct {
	MealType   models.MealType  `json:"meal_type"`
	RecipeID   uint             `json:"recipe_id"`
	RecipeName string           `json:"recipe_name"`
	Servings   int              `json:"servings"`
	Scale      float64          `json:"scale"`
	Nutrition  models.Nutrition `json:"nutrition"`
}

// View renders the session for presentation. All seven days are listed.
func (s *Session) View() View {
	v := View{
		ID:           s.ID,
		Name:         s.Name,
		WeekStart:    s.WeekStart.Format(DateLayout),
		Days:         make([]DayView, 0, len(models.Weekdays)),
		ShoppingList: GroupByCategory(s.shopping),
		Nutrition:    s.Nutrition(),
	}

	for i, day := range models.Weekdays {
		dv := DayView{
			Day:       day,
			Date:      s.WeekStart.AddDate(0, 0, i).Format(DateLayout),
			Meals:     make([]MealView, 0),
			Nutrition: s.nutrition.Daily[day],
		}
		for _, mt := range models.MealTypes {
			slot, ok := s.plan.Slot(day, mt)
			if !ok || slot.Recipe == nil {
				continue
			}
			dv.Meals = append(dv.Meals, MealView{
				MealType:   mt,
				RecipeID:   slot.Recipe.ID,
				RecipeName: slot.Recipe.Name,
				Servings:   slot.Servings,
				Scale:      slot.Scale(),
				Nutrition:  SlotNutrition(slot),
			})
		}
		v.Days = append(v.Days, dv)
	}
	return v
}
