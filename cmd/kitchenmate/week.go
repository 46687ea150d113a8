package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"kitchenmate/internal/models"
	"kitchenmate/internal/planner"
	"kitchenmate/internal/recipes"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			MarginBottom(1)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Bold(true)

	categoryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	docStyle = lipgloss.NewStyle().Padding(1, 2)
)

// WeekCmd prints the demo week
type WeekCmd struct {
	FromDB bool `name:"from-db" help:"Resolve recipes from the configured database instead of the built-in catalog."`
}

func (cmd *WeekCmd) Run(app *appContext) error {
	ctx := context.Background()

	var provider recipes.Provider = recipes.NewStaticProvider(recipes.DefaultCatalog()...)
	if cmd.FromDB {
		store, err := app.openStore()
		if err != nil {
			return err
		}
		defer store.Close()
		provider = store
	}

	plan, err := planner.BuildPlan(ctx, provider, planner.DemoWeek)
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, renderWeek(plan))
	return nil
}

func renderWeek(plan models.MealPlan) string {
	summary := planner.SummarizeNutrition(plan)
	list := planner.BuildShoppingList(plan)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Demo week"))
	b.WriteString("\n")

	b.WriteString(headerStyle.Render(fmt.Sprintf("%-10s %9s %9s %9s %9s", "Day", "kcal", "protein", "carbs", "fat")))
	b.WriteString("\n")
	for _, day := range models.Weekdays {
		b.WriteString(nutritionRow(string(day), summary.Daily[day]))
		if meals := mealNames(plan[day]); meals != "" {
			b.WriteString(mutedStyle.Render("  " + meals))
		}
		b.WriteString("\n")
	}
	b.WriteString(headerStyle.Render(nutritionRow("Week", summary.Weekly)))
	b.WriteString("\n\n")

	b.WriteString(titleStyle.Render("Shopping list"))
	b.WriteString("\n")
	for _, group := range planner.GroupByCategory(list) {
		b.WriteString(categoryStyle.Render(group.Category))
		b.WriteString("\n")
		for _, item := range group.Items {
			fmt.Fprintf(&b, "  [ ] %-16s %6.2f %s\n", item.Name, item.Amount, item.Unit)
		}
	}

	return docStyle.Render(b.String())
}

func nutritionRow(label string, n models.Nutrition) string {
	return fmt.Sprintf("%-10s %9.0f %8.1fg %8.1fg %8.1fg", label, n.Calories, n.Protein, n.Carbs, n.Fat)
}

func mealNames(meals models.DayPlan) string {
	names := make([]string, 0, len(meals))
	for _, mt := range models.MealTypes {
		if slot, ok := meals[mt]; ok && slot.Recipe != nil {
			names = append(names, fmt.Sprintf("%s: %s", mt, slot.Recipe.Name))
		}
	}
	return strings.Join(names, ", ")
}
