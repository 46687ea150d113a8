// Package inventory holds the pure rules for a user's perishable stock:
// expiry status, shelf-life estimates and summaries.
package inventory

import (
	"math"
	"sort"
	"strings"
	"time"

	"kitchenmate/internal/models"
)

// Expiry states
const (
	StatusFresh    = "fresh"
	StatusExpiring = "expiring"
	StatusExpired  = "expired"
	StatusUnknown  = "unknown"
)

// ExpiringWithinDays is the horizon for an item to count as expiring soon
const ExpiringWithinDays = 3

// DefaultFreshness is assumed when no freshness score is given
const DefaultFreshness = 10

var shelfLifeDays = map[models.InventoryCategory]int{
	models.CategoryFruits:     7,
	models.CategoryVegetables: 5,
	models.CategoryDairy:      7,
	models.CategoryMeat:       3,
	models.CategoryFish:       2,
	models.CategoryBread:      3,
	models.CategoryGrains:     365,
	models.CategoryCanned:     730,
}

// ItemStatus is an inventory item annotated with its expiry state
type ItemStatus struct {
	models.InventoryItem
	Status          string `json:"status"`
	DaysUntilExpiry *int   `json:"days_until_expiry,omitempty"`
}

// Status reports the expiry state of item at now and the whole days left,
// rounded up. Items without an expiry date are unknown.
func Status(item models.InventoryItem, now time.Time) (string, *int) {
	if item.ExpiryDate == nil {
		return StatusUnknown, nil
	}
	days := int(math.Ceil(item.ExpiryDate.Sub(now).Hours() / 24))
	switch {
	case days < 0:
		return StatusExpired, &days
	case days <= ExpiringWithinDays:
		return StatusExpiring, &days
	default:
		return StatusFresh, &days
	}
}

// Annotate attaches expiry status to each item
func Annotate(items []models.InventoryItem, now time.Time) []ItemStatus {
	out := make([]ItemStatus, 0, len(items))
	for _, item := range items {
		status, days := Status(item, now)
		out = append(out, ItemStatus{InventoryItem: item, Status: status, DaysUntilExpiry: days})
	}
	return out
}

// EstimateExpiry guesses an expiry date from the category's shelf life,
// shortened by a freshness score between 1 and 10
func EstimateExpiry(category models.InventoryCategory, freshness int, now time.Time) time.Time {
	if freshness <= 0 || freshness > 10 {
		freshness = DefaultFreshness
	}
	base, ok := shelfLifeDays[category]
	if !ok {
		base = 7
	}
	days := int(float64(base) * float64(freshness) / 10)
	return now.AddDate(0, 0, days)
}

// Summary counts items by expiry state and category
type Summary struct {
	TotalItems   int            `json:"total_items"`
	ExpiringSoon int            `json:"expiring_soon"`
	Expired      int            `json:"expired"`
	Categories   map[string]int `json:"categories"`
}

// Summarize computes inventory statistics at now
func Summarize(items []models.InventoryItem, now time.Time) Summary {
	s := Summary{TotalItems: len(items), Categories: make(map[string]int)}
	for _, item := range items {
		s.Categories[item.Category]++
		switch status, _ := Status(item, now); status {
		case StatusExpiring:
			s.ExpiringSoon++
		case StatusExpired:
			s.Expired++
		}
	}
	return s
}

// Search filters items by a case-insensitive name substring and category.
// An empty or "all" category matches any.
func Search(items []models.InventoryItem, term, category string) []models.InventoryItem {
	term = strings.ToLower(strings.TrimSpace(term))
	out := make([]models.InventoryItem, 0, len(items))
	for _, item := range items {
		if category != "" && category != "all" && item.Category != category {
			continue
		}
		if term != "" && !strings.Contains(strings.ToLower(item.Name), term) {
			continue
		}
		out = append(out, item)
	}
	return out
}

// Names returns the distinct lower-cased item names, sorted
func Names(items []models.InventoryItem) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		name := strings.ToLower(strings.TrimSpace(item.Name))
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Prepare fills derived fields on a new or updated item: a purchase date of
// now and an estimated expiry when none was given
func Prepare(item *models.InventoryItem, now time.Time) {
	if item.PurchaseDate.IsZero() {
		item.PurchaseDate = now
	}
	if item.Category == "" {
		item.Category = string(models.CategoryOther)
	}
	if item.Unit == "" {
		item.Unit = string(models.UnitPiece)
	}
	if item.ExpiryDate == nil {
		expiry := EstimateExpiry(models.InventoryCategory(item.Category), item.FreshnessScore, item.PurchaseDate)
		item.ExpiryDate = &expiry
	}
}
