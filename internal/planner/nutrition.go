package planner

import "kitchenmate/internal/models"

// SummarizeNutrition totals scaled recipe nutrition per weekday, Monday
// through Sunday, and for the whole week. Days without meals report zeros.
func SummarizeNutrition(plan models.MealPlan) models.NutritionSummary {
	summary := models.NutritionSummary{
		Daily: make(map[models.Day]models.Nutrition, len(models.Weekdays)),
	}

	for _, day := range models.Weekdays {
		var total models.Nutrition
		for _, slot := range plan[day] {
			if slot.Recipe == nil {
				continue
			}
			total = total.Add(slot.Recipe.Nutrition.Scaled(slot.Scale()))
		}
		summary.Daily[day] = total
		summary.Weekly = summary.Weekly.Add(total)
	}

	return summary
}

// SlotNutrition returns the nutrition of a single assignment
func SlotNutrition(slot models.MealSlot) models.Nutrition {
	if slot.Recipe == nil {
		return models.Nutrition{}
	}
	return slot.Recipe.Nutrition.Scaled(slot.Scale())
}
