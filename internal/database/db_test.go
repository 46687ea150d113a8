package database

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kitchenmate/internal/models"
	"kitchenmate/internal/planner"
	"kitchenmate/internal/recipes"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open("sqlite3", ":memory:", log.New(io.Discard))
	require.NoError(t, err)
	require.NoError(t, store.Migrate())
	t.Cleanup(func() { store.Close() })
	return store
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open("mysql", "whatever", nil)
	assert.Error(t, err)
}

func TestSeedRecipes_Idempotent(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	added, err := store.SeedRecipes(ctx, recipes.DefaultCatalog())
	require.NoError(t, err)
	assert.Equal(t, 5, added)

	added, err = store.SeedRecipes(ctx, recipes.DefaultCatalog())
	require.NoError(t, err)
	assert.Equal(t, 0, added)

	list, err := store.ListRecipes(ctx)
	require.NoError(t, err)
	require.Len(t, list, 5)

	oatmeal, err := store.GetRecipe(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "Apple Cinnamon Oatmeal", oatmeal.Name)
	assert.Equal(t, models.StringSlice{"oats", "apple", "cinnamon", "milk", "honey", "nuts"}, oatmeal.Ingredients)
	assert.Equal(t, models.Nutrition{Calories: 280, Protein: 8, Carbs: 45, Fat: 8}, oatmeal.Nutrition)
	assert.Equal(t, 2, oatmeal.Servings)

	_, err = store.GetRecipe(ctx, 42)
	assert.ErrorIs(t, err, recipes.ErrRecipeNotFound)
}

func TestSaveRecipe_Validates(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	err := store.SaveRecipe(ctx, &models.Recipe{Name: "Air", Servings: 0, Ingredients: models.StringSlice{"air"}})
	assert.Error(t, err)

	r := &models.Recipe{Name: "Toast", Servings: 1, Ingredients: models.StringSlice{"bread", "butter"}}
	require.NoError(t, store.SaveRecipe(ctx, r))
	assert.NotZero(t, r.ID)

	got, err := store.GetRecipe(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StringSlice{"bread", "butter"}, got.Ingredients)
}

func TestInventory_UserScoped(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	expiry := time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC)
	milk := &models.InventoryItem{UserID: "alice", Name: "Milk", Category: "dairy", Quantity: 1, Unit: "l", ExpiryDate: &expiry}
	require.NoError(t, store.SaveInventoryItem(ctx, milk))
	require.NoError(t, store.SaveInventoryItem(ctx, &models.InventoryItem{UserID: "alice", Name: "Apples", Category: "fruits"}))
	require.NoError(t, store.SaveInventoryItem(ctx, &models.InventoryItem{UserID: "bob", Name: "Beer", Category: "other"}))
	assert.Error(t, store.SaveInventoryItem(ctx, &models.InventoryItem{Name: "Orphan"}))

	items, err := store.ListInventory(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Apples", items[0].Name)

	_, err = store.GetInventoryItem(ctx, "bob", milk.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := store.GetInventoryItem(ctx, "alice", milk.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ExpiryDate)
	assert.True(t, expiry.Equal(*got.ExpiryDate))

	got.Quantity = 0.5
	require.NoError(t, store.SaveInventoryItem(ctx, got))
	got, err = store.GetInventoryItem(ctx, "alice", milk.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.5, got.Quantity)

	assert.ErrorIs(t, store.DeleteInventoryItem(ctx, "bob", milk.ID), ErrNotFound)
	require.NoError(t, store.DeleteInventoryItem(ctx, "alice", milk.ID))
	assert.ErrorIs(t, store.DeleteInventoryItem(ctx, "alice", milk.ID), ErrNotFound)
}

func TestPreferences(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	p, err := store.GetPreferences(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "beginner", p.SkillLevel)
	assert.Equal(t, 1, p.HouseholdSize)

	p.Allergies = models.StringSlice{"nuts"}
	p.HouseholdSize = 3
	require.NoError(t, store.SavePreferences(ctx, p))

	// saving again replaces rather than duplicating
	again := &models.Preferences{UserID: "alice", SkillLevel: "advanced", HouseholdSize: 2}
	require.NoError(t, store.SavePreferences(ctx, again))

	got, err := store.GetPreferences(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "advanced", got.SkillLevel)
	assert.Equal(t, 2, got.HouseholdSize)
	assert.Empty(t, got.Allergies)
}

func TestPlans(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	rec := &models.MealPlanRecord{PlanID: "plan-1", UserID: "alice", Name: "Week", WeekStart: "2024-03-11"}
	require.NoError(t, store.CreatePlan(ctx, rec))
	require.NotZero(t, rec.ID)

	require.NoError(t, store.SaveSlot(ctx, rec.ID, models.MealPlanItem{Day: "Monday", MealType: "lunch", RecipeID: 2, Servings: 2}))
	require.NoError(t, store.SaveSlot(ctx, rec.ID, models.MealPlanItem{Day: "Monday", MealType: "lunch", RecipeID: 4, Servings: 1}))
	require.NoError(t, store.SaveSlot(ctx, rec.ID, models.MealPlanItem{Day: "Friday", MealType: "dinner", RecipeID: 1, Servings: 4}))
	require.NoError(t, store.SetChecked(ctx, rec.ID, "salmon", true))
	require.NoError(t, store.SetChecked(ctx, rec.ID, "salmon", false))
	require.NoError(t, store.SetChecked(ctx, rec.ID, "garlic", true))

	got, err := store.GetPlan(ctx, "plan-1")
	require.NoError(t, err)
	require.Len(t, got.Items, 2)
	require.Len(t, got.Checks, 2)

	slots := make(map[string]models.MealPlanItem)
	for _, item := range got.Items {
		slots[item.Day+"/"+item.MealType] = item
	}
	assert.Equal(t, uint(4), slots["Monday/lunch"].RecipeID)
	assert.Equal(t, 1, slots["Monday/lunch"].Servings)

	checks := make(map[string]bool)
	for _, c := range got.Checks {
		checks[c.Ingredient] = c.Checked
	}
	assert.Equal(t, map[string]bool{"salmon": false, "garlic": true}, checks)

	require.NoError(t, store.DeleteSlot(ctx, rec.ID, "Monday", "lunch"))
	require.NoError(t, store.DeleteSlot(ctx, rec.ID, "Monday", "lunch"))
	got, err = store.GetPlan(ctx, "plan-1")
	require.NoError(t, err)
	assert.Len(t, got.Items, 1)

	_, err = store.GetPlan(ctx, "plan-2")
	assert.ErrorIs(t, err, planner.ErrPlanNotFound)

	list, err := store.ListPlans(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Len(t, list[0].Items, 1)

	list, err = store.ListPlans(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSaveSlotsAndPruneChecks(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	rec := &models.MealPlanRecord{PlanID: "plan-1", UserID: "alice", Name: "Week", WeekStart: "2024-03-11"}
	require.NoError(t, store.CreatePlan(ctx, rec))

	require.NoError(t, store.SaveSlots(ctx, rec.ID, []models.MealPlanItem{
		{Day: "Monday", MealType: "lunch", RecipeID: 2, Servings: 2},
		{Day: "Tuesday", MealType: "dinner", RecipeID: 4, Servings: 2},
		{Day: "Monday", MealType: "lunch", RecipeID: 3, Servings: 1},
	}))
	require.NoError(t, store.SetChecked(ctx, rec.ID, "salmon", true))
	require.NoError(t, store.SetChecked(ctx, rec.ID, "garlic", true))
	require.NoError(t, store.SetChecked(ctx, rec.ID, "oats", false))

	require.NoError(t, store.PruneChecks(ctx, rec.ID, []string{"salmon", "oats"}))
	got, err := store.GetPlan(ctx, "plan-1")
	require.NoError(t, err)
	require.Len(t, got.Items, 2)

	names := make([]string, 0, len(got.Checks))
	for _, c := range got.Checks {
		names = append(names, c.Ingredient)
	}
	assert.ElementsMatch(t, []string{"salmon", "oats"}, names)

	require.NoError(t, store.PruneChecks(ctx, rec.ID, nil))
	got, err = store.GetPlan(ctx, "plan-1")
	require.NoError(t, err)
	assert.Empty(t, got.Checks)
}

func TestStore_BacksPlanService(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	_, err := store.SeedRecipes(ctx, recipes.DefaultCatalog())
	require.NoError(t, err)

	svc := planner.NewService(store, store, log.New(io.Discard))
	plan, err := svc.Create(ctx, "alice", "Demo", time.Date(2024, time.March, 13, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	_, err = svc.Seed(ctx, "alice", plan.ID)
	require.NoError(t, err)
	_, err = svc.Toggle(ctx, "alice", plan.ID, "oats")
	require.NoError(t, err)
	_, err = svc.Toggle(ctx, "alice", plan.ID, "salmon")
	require.NoError(t, err)
	// salmon only comes from Tuesday dinner
	_, err = svc.Unassign(ctx, "alice", plan.ID, models.Tuesday, models.Dinner)
	require.NoError(t, err)

	restored, err := planner.NewService(store, store, log.New(io.Discard)).Get(ctx, "alice", plan.ID)
	require.NoError(t, err)
	assert.InDelta(t, 2145-380, restored.Nutrition.Weekly.Calories, 1e-9)

	checked := false
	for _, g := range restored.ShoppingList {
		for _, item := range g.Items {
			if item.Name == "oats" {
				checked = item.Checked
			}
		}
	}
	assert.True(t, checked)

	rec, err := store.GetPlan(ctx, plan.ID)
	require.NoError(t, err)
	for _, c := range rec.Checks {
		assert.NotEqual(t, "salmon", c.Ingredient)
	}
}
