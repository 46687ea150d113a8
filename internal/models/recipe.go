package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// StringSlice represents a slice of strings that can be stored in the database
type StringSlice []string

// Value converts the slice to a JSON string for storage
func (s StringSlice) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal([]string(s))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan converts the database value back to a slice
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, (*[]string)(s))
	case string:
		return json.Unmarshal([]byte(v), (*[]string)(s))
	default:
		return errors.New("unsupported type for StringSlice")
	}
}

// Contains reports whether the slice holds name, ignoring case
func (s StringSlice) Contains(name string) bool {
	for _, v := range s {
		if strings.EqualFold(v, name) {
			return true
		}
	}
	return false
}

// Nutrition holds macro totals for a recipe's full serving count
type Nutrition struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// Add returns the element-wise sum of n and o
func (n Nutrition) Add(o Nutrition) Nutrition {
	return Nutrition{
		Calories: n.Calories + o.Calories,
		Protein:  n.Protein + o.Protein,
		Carbs:    n.Carbs + o.Carbs,
		Fat:      n.Fat + o.Fat,
	}
}

// Scaled multiplies every field by factor
func (n Nutrition) Scaled(factor float64) Nutrition {
	return Nutrition{
		Calories: n.Calories * factor,
		Protein:  n.Protein * factor,
		Carbs:    n.Carbs * factor,
		Fat:      n.Fat * factor,
	}
}

// Recipe is immutable reference data used by the meal planner.
// Ingredients and Nutrition are expressed for Servings portions.
type Recipe struct {
	ID           uint        `gorm:"primary_key" json:"id"`
	Name         string      `gorm:"not null" json:"name"`
	Description  string      `json:"description,omitempty"`
	Cuisine      string      `json:"cuisine,omitempty"`
	Difficulty   string      `json:"difficulty,omitempty"`
	PrepTime     int         `json:"prep_time"`
	CookTime     int         `json:"cook_time"`
	Servings     int         `json:"servings"`
	Ingredients  StringSlice `gorm:"type:text" json:"ingredients"`
	Instructions StringSlice `gorm:"type:text" json:"instructions,omitempty"`
	DietaryTags  StringSlice `gorm:"type:text" json:"dietary_tags,omitempty"`
	Nutrition    Nutrition   `gorm:"embedded;embedded_prefix:nutrition_" json:"nutrition"`
	CreatedAt    time.Time   `json:"-"`
	UpdatedAt    time.Time   `json:"-"`
}

// TableName sets the table name for Recipe
func (Recipe) TableName() string {
	return "recipes"
}

// TotalTime returns prep plus cook time in minutes
func (r *Recipe) TotalTime() int {
	return r.PrepTime + r.CookTime
}

// HasIngredient checks if the recipe uses an ingredient, ignoring case
func (r *Recipe) HasIngredient(ingredient string) bool {
	return r.Ingredients.Contains(ingredient)
}

// Recipe difficulty levels
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// ValidateRecipe validates a recipe before it is stored
func ValidateRecipe(r *Recipe) error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("recipe name is required")
	}
	if r.Servings <= 0 {
		return fmt.Errorf("recipe servings must be greater than 0")
	}
	if r.PrepTime < 0 || r.CookTime < 0 {
		return fmt.Errorf("recipe times must not be negative")
	}
	if len(r.Ingredients) == 0 {
		return fmt.Errorf("recipe must have at least one ingredient")
	}
	switch r.Difficulty {
	case "", DifficultyEasy, DifficultyMedium, DifficultyHard:
	default:
		return fmt.Errorf("unknown recipe difficulty: %s", r.Difficulty)
	}
	return nil
}
