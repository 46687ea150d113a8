package recipes

import (
	"fmt"
	"strings"

	"kitchenmate/internal/models"
)

// Substitution is a replacement for an ingredient
type Substitution struct {
	Ingredient string `json:"ingredient"`
	Ratio      string `json:"ratio"`
	Notes      string `json:"notes"`
	Category   string `json:"category"`
}

var substitutions = map[string][]string{
	"chicken":     {"turkey", "tofu", "tempeh", "seitan"},
	"beef":        {"turkey", "mushrooms", "lentils", "beans"},
	"milk":        {"almond milk", "soy milk", "oat milk", "coconut milk"},
	"butter":      {"olive oil", "coconut oil", "margarine", "applesauce"},
	"eggs":        {"flax eggs", "chia eggs", "applesauce", "banana"},
	"flour":       {"almond flour", "coconut flour", "oat flour", "rice flour"},
	"sugar":       {"honey", "maple syrup", "stevia", "dates"},
	"cream":       {"coconut cream", "cashew cream", "greek yogurt"},
	"cheese":      {"nutritional yeast", "cashew cheese", "tofu"},
	"onion":       {"shallots", "leeks", "garlic", "onion powder"},
	"garlic":      {"garlic powder", "shallots", "ginger"},
	"lemon":       {"lime", "vinegar", "citric acid"},
	"tomato":      {"tomato paste", "tomato sauce", "red pepper"},
	"bell pepper": {"poblano pepper", "zucchini", "eggplant"},
	"pasta":       {"zucchini noodles", "spaghetti squash", "rice noodles"},
	"rice":        {"quinoa", "cauliflower rice", "barley", "bulgur"},
}

// Substitutions returns known replacements for an ingredient. Unknown
// ingredients yield an empty list.
func Substitutions(ingredient string) []Substitution {
	ingredient = strings.ToLower(strings.TrimSpace(ingredient))
	subs := substitutions[ingredient]

	out := make([]Substitution, 0, len(subs))
	for _, sub := range subs {
		out = append(out, Substitution{
			Ingredient: sub,
			Ratio:      "1:1",
			Notes:      fmt.Sprintf("Good substitute for %s", ingredient),
			Category:   "direct",
		})
	}
	return out
}

// Reference daily intake on a 2000 kcal diet
const (
	DailyCalories = 2000.0
	DailyProtein  = 50.0
	DailyCarbs    = 300.0
	DailyFat      = 65.0
)

// DailyValues expresses nutrition as percent of daily reference intake
func DailyValues(n models.Nutrition) models.Nutrition {
	return models.Nutrition{
		Calories: round1(n.Calories / DailyCalories * 100),
		Protein:  round1(n.Protein / DailyProtein * 100),
		Carbs:    round1(n.Carbs / DailyCarbs * 100),
		Fat:      round1(n.Fat / DailyFat * 100),
	}
}
