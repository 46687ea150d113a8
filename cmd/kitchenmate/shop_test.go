package main

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kitchenmate/internal/client"
	"kitchenmate/internal/models"
	"kitchenmate/internal/planner"
)

type fakeShoppingClient struct {
	groups  []planner.CategoryGroup
	toggled []string
	err     error
}

func (f *fakeShoppingClient) ShoppingList(ctx context.Context, planID string) (*client.ShoppingList, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &client.ShoppingList{PlanID: planID, Categories: f.groups}, nil
}

func (f *fakeShoppingClient) Toggle(ctx context.Context, planID, ingredient string) (*planner.View, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.toggled = append(f.toggled, ingredient)
	for gi := range f.groups {
		for ii := range f.groups[gi].Items {
			if f.groups[gi].Items[ii].Name == ingredient {
				f.groups[gi].Items[ii].Checked = !f.groups[gi].Items[ii].Checked
			}
		}
	}
	return &planner.View{ID: planID, ShoppingList: f.groups}, nil
}

func testGroups() []planner.CategoryGroup {
	return []planner.CategoryGroup{
		{Category: "produce", Items: []models.ShoppingListEntry{
			{Name: "garlic", Amount: 3.25, Unit: "portion", Category: "produce"},
			{Name: "onion", Amount: 1, Unit: "portion", Category: "produce"},
		}},
		{Category: "dairy", Items: []models.ShoppingListEntry{
			{Name: "milk", Amount: 2, Unit: "portion", Category: "dairy"},
		}},
	}
}

// runCmd executes cmd and feeds its message back into the model
func runCmd(t *testing.T, m shopModel, cmd tea.Cmd) shopModel {
	t.Helper()
	require.NotNil(t, cmd)
	next, _ := m.Update(cmd())
	return next.(shopModel)
}

func TestShopModel_LoadsAndToggles(t *testing.T) {
	fake := &fakeShoppingClient{groups: testGroups()}
	m := newShopModel(fake, "plan-1")
	assert.True(t, m.loading)

	m = runCmd(t, m, fetchShoppingList(fake, "plan-1"))
	assert.False(t, m.loading)
	require.Len(t, m.list.Items(), 3)
	assert.Equal(t, "0 of 3 checked · next: garlic, onion, milk", m.status)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	m = next.(shopModel)
	assert.True(t, m.loading)
	require.NotNil(t, cmd)

	m = runCmd(t, m, toggleItem(fake, "plan-1", "garlic"))
	assert.Equal(t, []string{"garlic"}, fake.toggled)
	assert.Equal(t, "1 of 3 checked · next: onion, milk", m.status)
	assert.Equal(t, "✓ garlic", m.list.Items()[0].(shopItem).Title())
	assert.Contains(t, m.View(), "1 of 3 checked")
}

func TestShopModel_Error(t *testing.T) {
	fake := &fakeShoppingClient{err: errors.New("connection refused")}
	m := newShopModel(fake, "plan-1")

	m = runCmd(t, m, fetchShoppingList(fake, "plan-1"))
	assert.False(t, m.loading)
	assert.Contains(t, m.err, "connection refused")
	assert.Contains(t, m.View(), "Error fetching shopping list")
}

func TestShopModel_Quit(t *testing.T) {
	m := newShopModel(&fakeShoppingClient{}, "plan-1")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
