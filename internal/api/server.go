package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"kitchenmate/internal/database"
	"kitchenmate/internal/models"
	"kitchenmate/internal/monitoring"
	"kitchenmate/internal/planner"
	"kitchenmate/internal/recipes"
)

// Store is the persistence the HTTP handlers need besides plans
type Store interface {
	recipes.Provider
	SaveRecipe(ctx context.Context, r *models.Recipe) error

	ListInventory(ctx context.Context, userID string) ([]models.InventoryItem, error)
	GetInventoryItem(ctx context.Context, userID string, id uint) (*models.InventoryItem, error)
	SaveInventoryItem(ctx context.Context, item *models.InventoryItem) error
	DeleteInventoryItem(ctx context.Context, userID string, id uint) error

	GetPreferences(ctx context.Context, userID string) (*models.Preferences, error)
	SavePreferences(ctx context.Context, p *models.Preferences) error

	Ping() error
}

// Options wires the server's collaborators
type Options struct {
	Store     Store
	Plans     *planner.Service
	Suggester recipes.Suggester
	Hub       *Hub
	Metrics   *monitoring.MetricsCollector
	Logger    *log.Logger
	JWTSecret string
}

// Server is the KitchenMate HTTP API
type Server struct {
	router    *gin.Engine
	store     Store
	plans     *planner.Service
	suggester recipes.Suggester
	hub       *Hub
	metrics   *monitoring.MetricsCollector
	logger    *log.Logger
	jwtSecret []byte
	now       func() time.Time
}

// NewServer creates the API server and its routes
func NewServer(opts Options) *Server {
	s := &Server{
		router:    gin.New(),
		store:     opts.Store,
		plans:     opts.Plans,
		suggester: opts.Suggester,
		hub:       opts.Hub,
		metrics:   opts.Metrics,
		logger:    opts.Logger,
		now:       time.Now,
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	if s.metrics == nil {
		s.metrics = monitoring.NewMetricsCollector(nil)
	}
	if s.hub == nil {
		s.hub = NewHub(s.logger)
	}
	if s.suggester == nil {
		s.suggester = recipes.NewMatchSuggester(s.store)
	}
	if opts.JWTSecret != "" {
		s.jwtSecret = []byte(opts.JWTSecret)
	}

	s.router.Use(gin.Recovery(), RequestLogger(s.logger, s.metrics))
	s.setupRoutes()
	return s
}

// setupRoutes configures all API endpoints
func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)

	v1 := s.router.Group("/api/v1")
	v1.Use(AuthMiddleware(s.jwtSecret))
	{
		v1.GET("/stats", s.handleStats)

		// Recipes
		v1.GET("/recipes", s.handleListRecipes)
		v1.POST("/recipes", s.handleCreateRecipe)
		v1.POST("/recipes/suggest", s.handleSuggestRecipes)
		v1.GET("/recipes/:id", s.handleGetRecipe)
		v1.GET("/recipes/:id/nutrition", s.handleRecipeNutrition)
		v1.GET("/substitutions/:ingredient", s.handleSubstitutions)

		// Inventory
		v1.GET("/inventory", s.handleListInventory)
		v1.GET("/inventory/stats", s.handleInventoryStats)
		v1.POST("/inventory", s.handleCreateInventoryItem)
		v1.PUT("/inventory/:id", s.handleUpdateInventoryItem)
		v1.DELETE("/inventory/:id", s.handleDeleteInventoryItem)

		// Preferences
		v1.GET("/preferences", s.handleGetPreferences)
		v1.PUT("/preferences", s.handleUpdatePreferences)

		// Meal plans
		v1.POST("/plans", s.handleCreatePlan)
		v1.GET("/plans", s.handleListPlans)
		v1.GET("/plans/:id", s.handleGetPlan)
		v1.PUT("/plans/:id/meals/:day/:meal", s.handleAssignMeal)
		v1.DELETE("/plans/:id/meals/:day/:meal", s.handleUnassignMeal)
		v1.POST("/plans/:id/refresh", s.handleRefreshPlan)
		v1.POST("/plans/:id/seed", s.handleSeedPlan)
		v1.GET("/plans/:id/shopping-list", s.handleShoppingList)
		v1.POST("/plans/:id/shopping-list/toggle", s.handleToggleItem)
		v1.GET("/plans/:id/nutrition", s.handlePlanNutrition)
		v1.GET("/plans/:id/ws", s.handlePlanUpdates)
	}
}

// Router returns the Gin router
func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) handleHealth(c *gin.Context) {
	if err := s.store.Ping(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "KitchenMate API is running"})
}

func (s *Server) handleStats(c *gin.Context) {
	c.JSON(http.StatusOK, s.metrics.Monitor().GetMetrics())
}

// fail writes err as a JSON error with the status its kind maps to
func (s *Server) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, planner.ErrPlanNotFound),
		errors.Is(err, recipes.ErrRecipeNotFound),
		errors.Is(err, planner.ErrItemNotFound),
		errors.Is(err, database.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, planner.ErrInvalidDay),
		errors.Is(err, planner.ErrInvalidMealType),
		errors.Is(err, planner.ErrInvalidServings),
		errors.Is(err, planner.ErrRecipeRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		s.logger.Error("request failed", "path", c.FullPath(), "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}
