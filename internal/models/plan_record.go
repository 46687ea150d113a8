package models

import (
	"github.com/jinzhu/gorm"
)

// MealPlanRecord is the stored header of a weekly plan
type MealPlanRecord struct {
	gorm.Model
	PlanID    string          `gorm:"unique_index;not null"`
	UserID    string          `gorm:"index;not null"`
	Name      string
	WeekStart string          // YYYY-MM-DD of the plan's Monday
	Items     []MealPlanItem  `gorm:"foreignkey:PlanRecordID"`
	Checks    []ShoppingCheck `gorm:"foreignkey:PlanRecordID"`
}

// TableName sets the table name for MealPlanRecord
func (MealPlanRecord) TableName() string {
	return "meal_plans"
}

// MealPlanItem is one stored slot assignment of a plan
type MealPlanItem struct {
	gorm.Model
	PlanRecordID uint `gorm:"index"`
	Day          string
	MealType     string
	RecipeID     uint
	Servings     int
}

// TableName sets the table name for MealPlanItem
func (MealPlanItem) TableName() string {
	return "meal_plan_items"
}

// ShoppingCheck remembers a user's check mark for an ingredient of a plan
type ShoppingCheck struct {
	gorm.Model
	PlanRecordID uint `gorm:"index"`
	Ingredient   string
	Checked      bool
}

// TableName sets the table name for ShoppingCheck
func (ShoppingCheck) TableName() string {
	return "shopping_checks"
}
