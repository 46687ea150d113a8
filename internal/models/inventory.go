package models

import "time"

// InventoryItem represents a perishable item in a user's kitchen
type InventoryItem struct {
	ID             uint       `gorm:"primary_key" json:"id"`
	UserID         string     `gorm:"index;not null" json:"-"`
	Name           string     `gorm:"not null" json:"name"`
	Category       string     `gorm:"not null" json:"category"`
	Quantity       float64    `json:"quantity"`
	Unit           string     `json:"unit"`
	PurchaseDate   time.Time  `json:"purchase_date"`
	ExpiryDate     *time.Time `json:"expiry_date,omitempty"`
	FreshnessScore int        `json:"freshness_score,omitempty"`
	Location       string     `json:"location,omitempty"`
	Notes          string     `json:"notes,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// TableName sets the table name for InventoryItem
func (InventoryItem) TableName() string {
	return "inventory_items"
}

// InventoryCategory represents the category of an inventory item
type InventoryCategory string

const (
	// Inventory categories
	CategoryFruits     InventoryCategory = "fruits"
	CategoryVegetables InventoryCategory = "vegetables"
	CategoryDairy      InventoryCategory = "dairy"
	CategoryMeat       InventoryCategory = "meat"
	CategoryFish       InventoryCategory = "fish"
	CategoryBread      InventoryCategory = "bread"
	CategoryGrains     InventoryCategory = "grains"
	CategoryCanned     InventoryCategory = "canned"
	CategoryFrozen     InventoryCategory = "frozen"
	CategoryOther      InventoryCategory = "other"
)

// InventoryLocation represents the storage location of an inventory item
type InventoryLocation string

const (
	// Storage locations
	LocationPantry       InventoryLocation = "pantry"
	LocationRefrigerator InventoryLocation = "refrigerator"
	LocationFreezer      InventoryLocation = "freezer"
	LocationCounter      InventoryLocation = "counter"
	LocationCabinet      InventoryLocation = "cabinet"
)

// InventoryUnit represents the unit of measurement for an inventory item
type InventoryUnit string

const (
	UnitPiece      InventoryUnit = "piece"
	UnitGram       InventoryUnit = "g"
	UnitKilogram   InventoryUnit = "kg"
	UnitMilliliter InventoryUnit = "ml"
	UnitLiter      InventoryUnit = "l"
)
