package recipes

import (
	"context"
	"errors"
	"sort"

	"kitchenmate/internal/models"
)

// ErrRecipeNotFound is returned when a recipe id is unknown to a Provider
var ErrRecipeNotFound = errors.New("recipe not found")

// Provider is a source of recipe reference data
type Provider interface {
	ListRecipes(ctx context.Context) ([]models.Recipe, error)
	GetRecipe(ctx context.Context, id uint) (*models.Recipe, error)
}

// StaticProvider serves a fixed in-memory catalog
type StaticProvider struct {
	recipes map[uint]models.Recipe
}

// NewStaticProvider creates a provider over the given recipes
func NewStaticProvider(recipes ...models.Recipe) *StaticProvider {
	p := &StaticProvider{recipes: make(map[uint]models.Recipe, len(recipes))}
	for _, r := range recipes {
		p.recipes[r.ID] = r
	}
	return p
}

// ListRecipes returns the catalog ordered by id
func (p *StaticProvider) ListRecipes(ctx context.Context) ([]models.Recipe, error) {
	out := make([]models.Recipe, 0, len(p.recipes))
	for _, r := range p.recipes {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// GetRecipe returns a copy of the recipe with the given id
func (p *StaticProvider) GetRecipe(ctx context.Context, id uint) (*models.Recipe, error) {
	r, ok := p.recipes[id]
	if !ok {
		return nil, ErrRecipeNotFound
	}
	return &r, nil
}

// DefaultCatalog returns the built-in recipe set used for demos and seeding
func DefaultCatalog() []models.Recipe {
	return []models.Recipe{
		{
			ID:          1,
			Name:        "Chicken Stir Fry",
			Description: "Quick and healthy stir fry with chicken and vegetables",
			Ingredients: models.StringSlice{"chicken breast", "bell pepper", "onion", "garlic", "soy sauce", "oil"},
			Instructions: models.StringSlice{
				"Cut chicken into strips",
				"Heat oil in wok or large pan",
				"Cook chicken until golden",
				"Add vegetables and stir fry",
				"Add soy sauce and seasonings",
				"Serve hot with rice",
			},
			PrepTime:    15,
			CookTime:    20,
			Servings:    4,
			Difficulty:  models.DifficultyEasy,
			Cuisine:     "asian",
			DietaryTags: models.StringSlice{"high-protein", "gluten-free-option"},
			Nutrition:   models.Nutrition{Calories: 320, Protein: 28, Carbs: 12, Fat: 18},
		},
		{
			ID:          2,
			Name:        "Vegetable Pasta",
			Description: "Creamy pasta with seasonal vegetables",
			Ingredients: models.StringSlice{"pasta", "zucchini", "tomato", "garlic", "cream", "parmesan", "basil"},
			Instructions: models.StringSlice{
				"Cook pasta according to package directions",
				"Sauté vegetables in olive oil",
				"Add cream and simmer",
				"Toss with cooked pasta",
				"Add parmesan and basil",
				"Season and serve",
			},
			PrepTime:    10,
			CookTime:    25,
			Servings:    4,
			Difficulty:  models.DifficultyEasy,
			Cuisine:     "italian",
			DietaryTags: models.StringSlice{"vegetarian"},
			Nutrition:   models.Nutrition{Calories: 420, Protein: 15, Carbs: 52, Fat: 16},
		},
		{
			ID:          3,
			Name:        "Apple Cinnamon Oatmeal",
			Description: "Warm and comforting breakfast with fresh apples",
			Ingredients: models.StringSlice{"oats", "apple", "cinnamon", "milk", "honey", "nuts"},
			Instructions: models.StringSlice{
				"Dice apple into small pieces",
				"Cook oats with milk",
				"Add apple and cinnamon",
				"Simmer until tender",
				"Sweeten with honey",
				"Top with nuts",
			},
			PrepTime:    5,
			CookTime:    15,
			Servings:    2,
			Difficulty:  models.DifficultyEasy,
			Cuisine:     "american",
			DietaryTags: models.StringSlice{"vegetarian", "healthy", "breakfast"},
			Nutrition:   models.Nutrition{Calories: 280, Protein: 8, Carbs: 45, Fat: 8},
		},
		{
			ID:          4,
			Name:        "Salmon with Vegetables",
			Description: "Baked salmon with roasted seasonal vegetables",
			Ingredients: models.StringSlice{"salmon", "broccoli", "carrot", "lemon", "olive oil", "herbs"},
			Instructions: models.StringSlice{
				"Preheat oven to 400°F",
				"Season salmon with herbs",
				"Cut vegetables into pieces",
				"Toss vegetables with oil",
				"Bake salmon and vegetables",
				"Serve with lemon",
			},
			PrepTime:    15,
			CookTime:    25,
			Servings:    2,
			Difficulty:  models.DifficultyMedium,
			Cuisine:     "mediterranean",
			DietaryTags: models.StringSlice{"high-protein", "healthy", "gluten-free"},
			Nutrition:   models.Nutrition{Calories: 380, Protein: 32, Carbs: 15, Fat: 22},
		},
		{
			ID:          5,
			Name:        "Banana Smoothie",
			Description: "Creamy and nutritious breakfast smoothie",
			Ingredients: models.StringSlice{"banana", "milk", "yogurt", "honey", "oats", "berries"},
			Instructions: models.StringSlice{
				"Peel and slice banana",
				"Add all ingredients to blender",
				"Blend until smooth",
				"Add ice if desired",
				"Pour into glass",
				"Garnish with berries",
			},
			PrepTime:    5,
			CookTime:    0,
			Servings:    1,
			Difficulty:  models.DifficultyEasy,
			Cuisine:     "american",
			DietaryTags: models.StringSlice{"vegetarian", "healthy", "breakfast", "quick"},
			Nutrition:   models.Nutrition{Calories: 320, Protein: 12, Carbs: 58, Fat: 6},
		},
	}
}
