package database

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres" // PostgreSQL driver
	_ "github.com/mattn/go-sqlite3"              // SQLite driver

	"kitchenmate/internal/models"
	"kitchenmate/internal/planner"
	"kitchenmate/internal/recipes"
)

// ErrNotFound is returned when a user-scoped record does not exist
var ErrNotFound = errors.New("record not found")

// Store is the gorm-backed persistence for recipes, inventory,
// preferences and meal plans
type Store struct {
	db *gorm.DB
}

var (
	_ recipes.Provider  = (*Store)(nil)
	_ planner.PlanStore = (*Store)(nil)
)

// Open connects to the database. Supported drivers are sqlite3 and postgres.
func Open(driver, dsn string, logger *log.Logger) (*Store, error) {
	switch driver {
	case "sqlite3", "postgres":
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}

	db, err := gorm.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// an in-memory sqlite database exists per connection
	if driver == "sqlite3" && dsn == ":memory:" {
		db.DB().SetMaxOpenConns(1)
	}

	if logger != nil && logger.GetLevel() <= log.DebugLevel {
		db.SetLogger(gormLogger{logger})
		db.LogMode(true)
	} else {
		db.LogMode(false)
	}

	return &Store{db: db}, nil
}

// Migrate creates or updates all tables
func (s *Store) Migrate() error {
	err := s.db.AutoMigrate(
		&models.Recipe{},
		&models.InventoryItem{},
		&models.Preferences{},
		&models.MealPlanRecord{},
		&models.MealPlanItem{},
		&models.ShoppingCheck{},
	).Error
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// Ping checks the connection
func (s *Store) Ping() error {
	return s.db.DB().Ping()
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

type gormLogger struct {
	logger *log.Logger
}

func (g gormLogger) Print(v ...interface{}) {
	g.logger.Debug("gorm", "entry", fmt.Sprint(v...))
}
