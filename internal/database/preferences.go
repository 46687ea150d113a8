package database

import (
	"context"
	"fmt"

	"github.com/jinzhu/gorm"

	"kitchenmate/internal/models"
)

// DefaultPreferences is what a user without stored preferences gets
func DefaultPreferences(userID string) *models.Preferences {
	return &models.Preferences{
		UserID:              userID,
		DietaryRestrictions: models.StringSlice{},
		Allergies:           models.StringSlice{},
		DislikedIngredients: models.StringSlice{},
		PreferredCuisines:   models.StringSlice{},
		SkillLevel:          "beginner",
		HouseholdSize:       1,
	}
}

// GetPreferences returns a user's preferences, or the defaults
func (s *Store) GetPreferences(ctx context.Context, userID string) (*models.Preferences, error) {
	var p models.Preferences
	err := s.db.Where("user_id = ?", userID).First(&p).Error
	if gorm.IsRecordNotFoundError(err) {
		return DefaultPreferences(userID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get preferences: %w", err)
	}
	return &p, nil
}

// SavePreferences replaces a user's preferences
func (s *Store) SavePreferences(ctx context.Context, p *models.Preferences) error {
	var existing models.Preferences
	err := s.db.Where("user_id = ?", p.UserID).First(&existing).Error
	switch {
	case err == nil:
		p.ID = existing.ID
	case gorm.IsRecordNotFoundError(err):
		p.ID = 0
	default:
		return fmt.Errorf("failed to look up preferences: %w", err)
	}
	if err := s.db.Save(p).Error; err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	return nil
}
