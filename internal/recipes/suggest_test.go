package recipes

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kitchenmate/internal/models"
)

func suggestionIDs(s []Suggestion) []uint {
	out := make([]uint, 0, len(s))
	for _, sug := range s {
		out = append(out, sug.Recipe.ID)
	}
	return out
}

func TestMatchSuggester_RanksByOverlap(t *testing.T) {
	s := NewMatchSuggester(NewStaticProvider(DefaultCatalog()...))

	got, err := s.Suggest(context.Background(), []string{"Oats", "milk", "honey", " banana "}, nil)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, uint(5), got[0].Recipe.ID)
	assert.Equal(t, 66.7, got[0].MatchPercentage)
	assert.ElementsMatch(t, []string{"yogurt", "berries"}, got[0].MissingIngredients)

	assert.Equal(t, uint(3), got[1].Recipe.ID)
	assert.Equal(t, 50.0, got[1].MatchPercentage)
	assert.ElementsMatch(t, []string{"oats", "milk", "honey"}, got[1].AvailableIngredients)
}

func TestMatchSuggester_BelowThreshold(t *testing.T) {
	s := NewMatchSuggester(NewStaticProvider(DefaultCatalog()...))

	// one of six ingredients is under 30%
	got, err := s.Suggest(context.Background(), []string{"salmon"}, nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMatchSuggester_Preferences(t *testing.T) {
	s := NewMatchSuggester(NewStaticProvider(DefaultCatalog()...))
	available := []string{"oats", "milk", "honey", "banana"}

	tests := []struct {
		name  string
		prefs *models.Preferences
		want  []uint
	}{
		{
			name:  "allergy excludes recipe",
			prefs: &models.Preferences{Allergies: models.StringSlice{"nuts"}},
			want:  []uint{5},
		},
		{
			name:  "disliked ingredient excludes recipe",
			prefs: &models.Preferences{DislikedIngredients: models.StringSlice{"Yogurt"}},
			want:  []uint{3},
		},
		{
			name:  "restriction requires tag",
			prefs: &models.Preferences{DietaryRestrictions: models.StringSlice{"quick"}},
			want:  []uint{5},
		},
		{
			name:  "no restrictions",
			prefs: &models.Preferences{},
			want:  []uint{5, 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Suggest(context.Background(), available, tt.prefs)
			require.NoError(t, err)
			assert.Equal(t, tt.want, suggestionIDs(got))
		})
	}
}

func TestMatchSuggester_CuisineBoost(t *testing.T) {
	catalog := DefaultCatalog()
	s := NewMatchSuggester(NewStaticProvider(catalog...))

	// pasta 3/7 and stir fry 2/6
	available := []string{"pasta", "tomato", "garlic", "onion"}
	prefs := &models.Preferences{PreferredCuisines: models.StringSlice{"asian"}}

	got, err := s.Suggest(context.Background(), available, prefs)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, uint(1), got[0].Recipe.ID)
	assert.Equal(t, 43.3, got[0].MatchPercentage)
	assert.Equal(t, uint(2), got[1].Recipe.ID)
	assert.Equal(t, 42.9, got[1].MatchPercentage)
}

func TestMatchSuggester_Cap(t *testing.T) {
	catalog := make([]models.Recipe, 0, 15)
	for i := 1; i <= 15; i++ {
		catalog = append(catalog, models.Recipe{
			ID:          uint(i),
			Name:        "Toast",
			Servings:    1,
			Difficulty:  models.DifficultyEasy,
			Ingredients: models.StringSlice{"bread"},
		})
	}
	s := NewMatchSuggester(NewStaticProvider(catalog...))

	got, err := s.Suggest(context.Background(), []string{"bread"}, nil)
	require.NoError(t, err)
	assert.Len(t, got, MaxSuggestions)
}

func TestSubstitutions(t *testing.T) {
	subs := Substitutions(" Milk ")
	require.Len(t, subs, 4)
	assert.Equal(t, "almond milk", subs[0].Ingredient)
	assert.Equal(t, "1:1", subs[0].Ratio)
	assert.Equal(t, "Good substitute for milk", subs[0].Notes)
	assert.Equal(t, "direct", subs[0].Category)

	assert.Empty(t, Substitutions("saffron"))
}

func TestDailyValues(t *testing.T) {
	dv := DailyValues(models.Nutrition{Calories: 420, Protein: 15, Carbs: 52, Fat: 16})
	assert.Equal(t, 21.0, dv.Calories)
	assert.Equal(t, 30.0, dv.Protein)
	assert.Equal(t, 17.3, dv.Carbs)
	assert.Equal(t, 24.6, dv.Fat)
}
