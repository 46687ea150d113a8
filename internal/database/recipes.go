package database

import (
	"context"
	"fmt"

	"github.com/jinzhu/gorm"

	"kitchenmate/internal/models"
	"kitchenmate/internal/recipes"
)

// ListRecipes returns every stored recipe ordered by id
func (s *Store) ListRecipes(ctx context.Context) ([]models.Recipe, error) {
	var out []models.Recipe
	if err := s.db.Order("id").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	return out, nil
}

// GetRecipe returns the recipe with the given id
func (s *Store) GetRecipe(ctx context.Context, id uint) (*models.Recipe, error) {
	var r models.Recipe
	err := s.db.First(&r, id).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, recipes.ErrRecipeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}
	return &r, nil
}

// SaveRecipe validates and stores a recipe, creating it when it has no id
func (s *Store) SaveRecipe(ctx context.Context, r *models.Recipe) error {
	if err := models.ValidateRecipe(r); err != nil {
		return err
	}
	if err := s.db.Save(r).Error; err != nil {
		return fmt.Errorf("failed to save recipe: %w", err)
	}
	return nil
}

// SeedRecipes inserts the recipes whose names are not stored yet and
// reports how many were added
func (s *Store) SeedRecipes(ctx context.Context, catalog []models.Recipe) (int, error) {
	added := 0
	for i := range catalog {
		r := catalog[i]
		var existing models.Recipe
		err := s.db.Where("name = ?", r.Name).First(&existing).Error
		if err == nil {
			continue
		}
		if !gorm.IsRecordNotFoundError(err) {
			return added, fmt.Errorf("failed to look up recipe %q: %w", r.Name, err)
		}
		if err := models.ValidateRecipe(&r); err != nil {
			return added, fmt.Errorf("invalid seed recipe %q: %w", r.Name, err)
		}
		if err := s.db.Create(&r).Error; err != nil {
			return added, fmt.Errorf("failed to seed recipe %q: %w", r.Name, err)
		}
		added++
	}

	// explicit ids leave a postgres serial sequence behind the table
	if added > 0 && s.db.Dialect().GetName() == "postgres" {
		err := s.db.Exec("SELECT setval(pg_get_serial_sequence('recipes', 'id'), (SELECT MAX(id) FROM recipes))").Error
		if err != nil {
			return added, fmt.Errorf("failed to reset recipe id sequence: %w", err)
		}
	}
	return added, nil
}
