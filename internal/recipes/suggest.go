package recipes

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"kitchenmate/internal/models"
)

const (
	// MinMatchPercentage is the share of a recipe's ingredients that must be
	// on hand for it to be suggested
	MinMatchPercentage = 30.0
	// PreferredCuisineBoost is added to the match of a preferred cuisine
	PreferredCuisineBoost = 10.0
	// MaxSuggestions caps the number of suggestions returned
	MaxSuggestions = 10
)

// Suggestion is a recipe ranked against the ingredients a user has
type Suggestion struct {
	Recipe               models.Recipe `json:"recipe"`
	MatchPercentage      float64       `json:"match_percentage"`
	MissingIngredients   []string      `json:"missing_ingredients"`
	AvailableIngredients []string      `json:"available_ingredients"`
}

// Suggester proposes recipes for a set of available ingredients
type Suggester interface {
	Suggest(ctx context.Context, available []string, prefs *models.Preferences) ([]Suggestion, error)
}

// MatchSuggester ranks catalog recipes by ingredient overlap
type MatchSuggester struct {
	provider Provider
}

// NewMatchSuggester creates a suggester over the provider's catalog
func NewMatchSuggester(provider Provider) *MatchSuggester {
	return &MatchSuggester{provider: provider}
}

// Suggest returns up to MaxSuggestions recipes with at least
// MinMatchPercentage of their ingredients available, best match first
func (s *MatchSuggester) Suggest(ctx context.Context, available []string, prefs *models.Preferences) ([]Suggestion, error) {
	catalog, err := s.provider.ListRecipes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}

	have := make(map[string]bool, len(available))
	for _, ing := range available {
		have[strings.ToLower(strings.TrimSpace(ing))] = true
	}

	suggestions := make([]Suggestion, 0)
	for _, recipe := range catalog {
		if len(recipe.Ingredients) == 0 {
			continue
		}
		if prefs != nil && !allowedBy(recipe, prefs) {
			continue
		}

		sug := Suggestion{
			Recipe:               recipe,
			MissingIngredients:   make([]string, 0),
			AvailableIngredients: make([]string, 0),
		}
		for _, ing := range recipe.Ingredients {
			name := strings.ToLower(ing)
			if have[name] {
				sug.AvailableIngredients = append(sug.AvailableIngredients, name)
			} else {
				sug.MissingIngredients = append(sug.MissingIngredients, name)
			}
		}

		match := float64(len(sug.AvailableIngredients)) / float64(len(recipe.Ingredients)) * 100
		if match < MinMatchPercentage {
			continue
		}
		if prefs != nil && prefs.PreferredCuisines.Contains(recipe.Cuisine) {
			match += PreferredCuisineBoost
		}
		sug.MatchPercentage = round1(match)
		suggestions = append(suggestions, sug)
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].MatchPercentage > suggestions[j].MatchPercentage
	})
	if len(suggestions) > MaxSuggestions {
		suggestions = suggestions[:MaxSuggestions]
	}
	return suggestions, nil
}

// allowedBy rejects recipes that contain an allergen or disliked ingredient,
// or that lack a tag for one of the user's dietary restrictions
func allowedBy(recipe models.Recipe, prefs *models.Preferences) bool {
	for _, ing := range recipe.Ingredients {
		if prefs.Allergies.Contains(ing) || prefs.DislikedIngredients.Contains(ing) {
			return false
		}
	}
	for _, restriction := range prefs.DietaryRestrictions {
		if !recipe.DietaryTags.Contains(restriction) {
			return false
		}
	}
	return true
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
