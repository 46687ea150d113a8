package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"kitchenmate/internal/models"
	"kitchenmate/internal/planner"
	"kitchenmate/internal/recipes"
)

type createPlanRequest struct {
	Name      string `json:"name"`
	WeekStart string `json:"week_start"`
	Seed      bool   `json:"seed"`
}

type assignRequest struct {
	RecipeID uint `json:"recipe_id"`
	Servings int  `json:"servings"`
}

type toggleRequest struct {
	Ingredient string `json:"ingredient"`
}

func (s *Server) handleCreatePlan(c *gin.Context) {
	var req createPlanRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
	}

	var weekStart time.Time
	if req.WeekStart != "" {
		var err error
		weekStart, err = time.Parse(planner.DateLayout, req.WeekStart)
		if err != nil {
			badRequest(c, "week_start must be a YYYY-MM-DD date")
			return
		}
	}

	ctx := c.Request.Context()
	user := currentUser(c)
	view, err := s.plans.Create(ctx, user, req.Name, weekStart)
	if err != nil {
		s.fail(c, err)
		return
	}
	if req.Seed {
		view, err = s.plans.Seed(ctx, user, view.ID)
		if err != nil {
			s.fail(c, err)
			return
		}
	}
	c.JSON(http.StatusCreated, view)
}

func (s *Server) handleListPlans(c *gin.Context) {
	plans, err := s.plans.List(c.Request.Context(), currentUser(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, plans)
}

func (s *Server) handleGetPlan(c *gin.Context) {
	view, err := s.plans.Get(c.Request.Context(), currentUser(c), c.Param("id"))
	s.respondView(c, view, err)
}

func (s *Server) handleAssignMeal(c *gin.Context) {
	var req assignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if req.RecipeID == 0 {
		badRequest(c, "recipe_id is required")
		return
	}

	view, err := s.plans.Assign(c.Request.Context(), currentUser(c), c.Param("id"),
		parseDay(c.Param("day")), parseMealType(c.Param("meal")), req.RecipeID, req.Servings)
	if errors.Is(err, recipes.ErrRecipeNotFound) {
		// the plan exists, the referenced recipe does not
		badRequest(c, err.Error())
		return
	}
	s.respondView(c, view, err)
}

func (s *Server) handleUnassignMeal(c *gin.Context) {
	view, err := s.plans.Unassign(c.Request.Context(), currentUser(c), c.Param("id"),
		parseDay(c.Param("day")), parseMealType(c.Param("meal")))
	s.respondView(c, view, err)
}

func (s *Server) handleRefreshPlan(c *gin.Context) {
	view, err := s.plans.Refresh(c.Request.Context(), currentUser(c), c.Param("id"))
	s.respondView(c, view, err)
}

func (s *Server) handleSeedPlan(c *gin.Context) {
	view, err := s.plans.Seed(c.Request.Context(), currentUser(c), c.Param("id"))
	s.respondView(c, view, err)
}

func (s *Server) handleShoppingList(c *gin.Context) {
	view, err := s.plans.Get(c.Request.Context(), currentUser(c), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}

	total, checked := 0, 0
	for _, group := range view.ShoppingList {
		for _, item := range group.Items {
			total++
			if item.Checked {
				checked++
			}
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"plan_id":       view.ID,
		"categories":    view.ShoppingList,
		"total_items":   total,
		"checked_items": checked,
	})
}

func (s *Server) handleToggleItem(c *gin.Context) {
	var req toggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if req.Ingredient == "" {
		badRequest(c, "ingredient is required")
		return
	}
	view, err := s.plans.Toggle(c.Request.Context(), currentUser(c), c.Param("id"), req.Ingredient)
	s.respondView(c, view, err)
}

func (s *Server) handlePlanNutrition(c *gin.Context) {
	view, err := s.plans.Get(c.Request.Context(), currentUser(c), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}

	weekly := view.Nutrition.Weekly
	days := float64(len(models.Weekdays))
	average := models.Nutrition{
		Calories: weekly.Calories / days,
		Protein:  weekly.Protein / days,
		Carbs:    weekly.Carbs / days,
		Fat:      weekly.Fat / days,
	}
	c.JSON(http.StatusOK, gin.H{
		"plan_id":       view.ID,
		"daily":         view.Nutrition.Daily,
		"weekly":        weekly,
		"daily_average": average,
		"daily_values":  recipes.DailyValues(average),
	})
}

func (s *Server) respondView(c *gin.Context, view planner.View, err error) {
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// parseDay accepts weekday labels in any case
func parseDay(v string) models.Day {
	for _, d := range models.Weekdays {
		if strings.EqualFold(string(d), v) {
			return d
		}
	}
	return models.Day(v)
}

func parseMealType(v string) models.MealType {
	return models.MealType(strings.ToLower(v))
}
