package database

import (
	"context"
	"fmt"

	"github.com/jinzhu/gorm"

	"kitchenmate/internal/models"
)

// ListInventory returns a user's inventory ordered by name
func (s *Store) ListInventory(ctx context.Context, userID string) ([]models.InventoryItem, error) {
	var out []models.InventoryItem
	if err := s.db.Where("user_id = ?", userID).Order("name").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}
	return out, nil
}

// GetInventoryItem returns one of a user's items
func (s *Store) GetInventoryItem(ctx context.Context, userID string, id uint) (*models.InventoryItem, error) {
	var item models.InventoryItem
	err := s.db.Where("user_id = ? AND id = ?", userID, id).First(&item).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory item: %w", err)
	}
	return &item, nil
}

// SaveInventoryItem creates or updates an item
func (s *Store) SaveInventoryItem(ctx context.Context, item *models.InventoryItem) error {
	if item.UserID == "" {
		return fmt.Errorf("inventory item has no owner")
	}
	if err := s.db.Save(item).Error; err != nil {
		return fmt.Errorf("failed to save inventory item: %w", err)
	}
	return nil
}

// DeleteInventoryItem removes one of a user's items
func (s *Store) DeleteInventoryItem(ctx context.Context, userID string, id uint) error {
	res := s.db.Where("user_id = ? AND id = ?", userID, id).Delete(&models.InventoryItem{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete inventory item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
