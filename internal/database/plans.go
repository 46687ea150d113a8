package database

import (
	"context"
	"fmt"

	"github.com/jinzhu/gorm"

	"kitchenmate/internal/models"
	"kitchenmate/internal/planner"
)

// CreatePlan stores a new plan header
func (s *Store) CreatePlan(ctx context.Context, rec *models.MealPlanRecord) error {
	if err := s.db.Create(rec).Error; err != nil {
		return fmt.Errorf("failed to create plan: %w", err)
	}
	return nil
}

// GetPlan loads a plan with its slots and check marks
func (s *Store) GetPlan(ctx context.Context, planID string) (*models.MealPlanRecord, error) {
	var rec models.MealPlanRecord
	err := s.db.Preload("Items").Preload("Checks").
		Where("plan_id = ?", planID).First(&rec).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, planner.ErrPlanNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	return &rec, nil
}

// ListPlans returns a user's plans, newest first
func (s *Store) ListPlans(ctx context.Context, userID string) ([]models.MealPlanRecord, error) {
	var out []models.MealPlanRecord
	err := s.db.Preload("Items").
		Where("user_id = ?", userID).Order("created_at desc").Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	return out, nil
}

// SaveSlot creates or replaces the assignment of a (day, meal type) slot
func (s *Store) SaveSlot(ctx context.Context, recordID uint, item models.MealPlanItem) error {
	if err := saveSlot(s.db, recordID, item); err != nil {
		return fmt.Errorf("failed to save slot: %w", err)
	}
	return nil
}

// SaveSlots saves several slots in one transaction
func (s *Store) SaveSlots(ctx context.Context, recordID uint, items []models.MealPlanItem) error {
	tx := s.db.Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	for _, item := range items {
		if err := saveSlot(tx, recordID, item); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to save slot %s/%s: %w", item.Day, item.MealType, err)
		}
	}
	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit slots: %w", err)
	}
	return nil
}

func saveSlot(db *gorm.DB, recordID uint, item models.MealPlanItem) error {
	var existing models.MealPlanItem
	err := db.Where("plan_record_id = ? AND day = ? AND meal_type = ?", recordID, item.Day, item.MealType).
		First(&existing).Error
	switch {
	case err == nil:
		existing.RecipeID = item.RecipeID
		existing.Servings = item.Servings
		return db.Save(&existing).Error
	case gorm.IsRecordNotFoundError(err):
		item.ID = 0
		item.PlanRecordID = recordID
		return db.Create(&item).Error
	}
	return err
}

// DeleteSlot removes the assignment of a slot if there is one
func (s *Store) DeleteSlot(ctx context.Context, recordID uint, day, mealType string) error {
	err := s.db.Unscoped().
		Where("plan_record_id = ? AND day = ? AND meal_type = ?", recordID, day, mealType).
		Delete(&models.MealPlanItem{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete slot: %w", err)
	}
	return nil
}

// SetChecked stores the check mark of a shopping list ingredient
func (s *Store) SetChecked(ctx context.Context, recordID uint, ingredient string, checked bool) error {
	var existing models.ShoppingCheck
	err := s.db.Where("plan_record_id = ? AND ingredient = ?", recordID, ingredient).First(&existing).Error
	switch {
	case err == nil:
		err = s.db.Model(&existing).Update("checked", checked).Error
	case gorm.IsRecordNotFoundError(err):
		err = s.db.Create(&models.ShoppingCheck{
			PlanRecordID: recordID,
			Ingredient:   ingredient,
			Checked:      checked,
		}).Error
	}
	if err != nil {
		return fmt.Errorf("failed to set check mark: %w", err)
	}
	return nil
}

// PruneChecks deletes the check marks of a plan whose ingredient is not in
// keep. An empty keep clears them all.
func (s *Store) PruneChecks(ctx context.Context, recordID uint, keep []string) error {
	q := s.db.Unscoped().Where("plan_record_id = ?", recordID)
	if len(keep) > 0 {
		q = q.Where("ingredient NOT IN (?)", keep)
	}
	if err := q.Delete(&models.ShoppingCheck{}).Error; err != nil {
		return fmt.Errorf("failed to prune check marks: %w", err)
	}
	return nil
}
