package models

import "time"

// Preferences holds the per-user settings that shape recipe suggestions
type Preferences struct {
	ID                  uint        `gorm:"primary_key" json:"-"`
	UserID              string      `gorm:"unique_index;not null" json:"-"`
	DietaryRestrictions StringSlice `gorm:"type:text" json:"dietary_restrictions"`
	Allergies           StringSlice `gorm:"type:text" json:"allergies"`
	DislikedIngredients StringSlice `gorm:"type:text" json:"disliked_ingredients"`
	PreferredCuisines   StringSlice `gorm:"type:text" json:"preferred_cuisines"`
	SkillLevel          string      `json:"cooking_skill_level"`
	MaxPrepTime         int         `json:"max_prep_time,omitempty"`
	HouseholdSize       int         `json:"household_size"`
	UpdatedAt           time.Time   `json:"updated_at"`
}

// TableName sets the table name for Preferences
func (Preferences) TableName() string {
	return "preferences"
}
