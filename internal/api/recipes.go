package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"kitchenmate/internal/inventory"
	"kitchenmate/internal/models"
	"kitchenmate/internal/recipes"
)

func (s *Server) handleListRecipes(c *gin.Context) {
	all, err := s.store.ListRecipes(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}

	q := recipes.Query{
		Cuisine:    c.Query("cuisine"),
		Difficulty: c.Query("difficulty"),
		Search:     c.Query("search"),
	}
	if tags := c.Query("dietary_tags"); tags != "" {
		q.DietaryTags = strings.Split(tags, ",")
	}
	if maxTime := c.Query("max_time"); maxTime != "" {
		v, err := strconv.Atoi(maxTime)
		if err != nil || v < 0 {
			badRequest(c, "max_time must be a non-negative integer")
			return
		}
		q.MaxTime = v
	}

	c.JSON(http.StatusOK, recipes.Filter(all, q))
}

func (s *Server) handleGetRecipe(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	recipe, err := s.store.GetRecipe(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (s *Server) handleCreateRecipe(c *gin.Context) {
	var recipe models.Recipe
	if err := c.ShouldBindJSON(&recipe); err != nil {
		badRequest(c, err.Error())
		return
	}
	recipe.ID = 0
	if err := models.ValidateRecipe(&recipe); err != nil {
		badRequest(c, err.Error())
		return
	}
	if err := s.store.SaveRecipe(c.Request.Context(), &recipe); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, recipe)
}

// RecipeNutrition is the nutrition of a recipe scaled to a serving count
type RecipeNutrition struct {
	RecipeID    uint             `json:"recipe_id"`
	Servings    int              `json:"servings"`
	Nutrition   models.Nutrition `json:"nutrition"`
	PerServing  models.Nutrition `json:"per_serving"`
	DailyValues models.Nutrition `json:"daily_values"`
}

func (s *Server) handleRecipeNutrition(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	recipe, err := s.store.GetRecipe(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return
	}

	servings := recipe.Servings
	if v := c.Query("servings"); v != "" {
		servings, err = strconv.Atoi(v)
		if err != nil || servings <= 0 {
			badRequest(c, "servings must be a positive integer")
			return
		}
	}

	slot := models.MealSlot{Recipe: recipe, Servings: servings}
	perServing := models.MealSlot{Recipe: recipe, Servings: 1}
	c.JSON(http.StatusOK, RecipeNutrition{
		RecipeID:    recipe.ID,
		Servings:    servings,
		Nutrition:   recipe.Nutrition.Scaled(slot.Scale()),
		PerServing:  recipe.Nutrition.Scaled(perServing.Scale()),
		DailyValues: recipes.DailyValues(recipe.Nutrition.Scaled(perServing.Scale())),
	})
}

type suggestRequest struct {
	Ingredients []string `json:"ingredients"`
}

func (s *Server) handleSuggestRecipes(c *gin.Context) {
	var req suggestRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
	}

	ctx := c.Request.Context()
	user := currentUser(c)

	available := req.Ingredients
	if len(available) == 0 {
		items, err := s.store.ListInventory(ctx, user)
		if err != nil {
			s.fail(c, err)
			return
		}
		available = inventory.Names(items)
	}
	if len(available) == 0 {
		badRequest(c, "no ingredients given and inventory is empty")
		return
	}

	prefs, err := s.store.GetPreferences(ctx, user)
	if err != nil {
		s.fail(c, err)
		return
	}

	suggestions, err := s.suggester.Suggest(ctx, available, prefs)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"available_ingredients": available,
		"suggestions":           suggestions,
	})
}

func (s *Server) handleSubstitutions(c *gin.Context) {
	ingredient := c.Param("ingredient")
	c.JSON(http.StatusOK, gin.H{
		"ingredient":    ingredient,
		"substitutions": recipes.Substitutions(ingredient),
	})
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		badRequest(c, "invalid id")
		return 0, false
	}
	return uint(id), true
}
