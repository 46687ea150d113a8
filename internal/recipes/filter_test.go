package recipes

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kitchenmate/internal/models"
)

func ids(recipes []models.Recipe) []uint {
	out := make([]uint, 0, len(recipes))
	for _, r := range recipes {
		out = append(out, r.ID)
	}
	return out
}

func TestFilter(t *testing.T) {
	catalog := DefaultCatalog()

	tests := []struct {
		name  string
		query Query
		want  []uint
	}{
		{"no filter", Query{}, []uint{1, 2, 3, 4, 5}},
		{"cuisine", Query{Cuisine: "american"}, []uint{3, 5}},
		{"difficulty", Query{Difficulty: models.DifficultyMedium}, []uint{4}},
		{"any dietary tag", Query{DietaryTags: []string{"gluten-free", "quick"}}, []uint{4, 5}},
		{"max time", Query{MaxTime: 20}, []uint{3, 5}},
		{"search name", Query{Search: "Salmon"}, []uint{4}},
		{"search description and ingredients", Query{Search: "cream"}, []uint{2, 5}},
		{"combined", Query{Cuisine: "american", DietaryTags: []string{"quick"}}, []uint{5}},
		{"nothing matches", Query{Cuisine: "french"}, []uint{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Filter(catalog, tt.query)))
		})
	}
}

func TestStaticProvider(t *testing.T) {
	ctx := context.Background()
	p := NewStaticProvider(DefaultCatalog()...)

	list, err := p.ListRecipes(ctx)
	require.NoError(t, err)
	assert.Equal(t, []uint{1, 2, 3, 4, 5}, ids(list))

	r, err := p.GetRecipe(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "Apple Cinnamon Oatmeal", r.Name)

	_, err = p.GetRecipe(ctx, 99)
	assert.ErrorIs(t, err, ErrRecipeNotFound)
}

func TestDefaultCatalog_Valid(t *testing.T) {
	for _, r := range DefaultCatalog() {
		assert.NoError(t, models.ValidateRecipe(&r), r.Name)
	}
}
