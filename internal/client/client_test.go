package client_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kitchenmate/internal/api"
	"kitchenmate/internal/client"
	"kitchenmate/internal/database"
	"kitchenmate/internal/models"
	"kitchenmate/internal/planner"
	"kitchenmate/internal/recipes"
)

const testSecret = "client-test-secret"

func newTestAPI(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := log.New(io.Discard)
	store, err := database.Open("sqlite3", ":memory:", logger)
	require.NoError(t, err)
	require.NoError(t, store.Migrate())
	_, err = store.SeedRecipes(context.Background(), recipes.DefaultCatalog())
	require.NoError(t, err)

	srv := api.NewServer(api.Options{
		Store:     store,
		Plans:     planner.NewService(store, store, logger),
		Logger:    logger,
		JWTSecret: testSecret,
	})
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(func() {
		ts.Close()
		store.Close()
	})
	return ts
}

func newTestClient(t *testing.T, ts *httptest.Server, user string) *client.Client {
	t.Helper()
	token, err := api.IssueToken(testSecret, user, time.Hour)
	require.NoError(t, err)
	return client.New(ts.URL+"/", token)
}

func TestClient_PlanLifecycle(t *testing.T) {
	ts := newTestAPI(t)
	c := newTestClient(t, ts, "alice")
	ctx := context.Background()

	require.NoError(t, c.Health(ctx))

	view, err := c.CreatePlan(ctx, "Demo", true)
	require.NoError(t, err)
	assert.Equal(t, "Demo", view.Name)

	plans, err := c.ListPlans(ctx)
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, view.ID, plans[0].ID)

	list, err := c.ShoppingList(ctx, view.ID)
	require.NoError(t, err)
	assert.Equal(t, 27, list.TotalItems)
	assert.Zero(t, list.CheckedItems)

	_, err = c.Toggle(ctx, view.ID, "garlic")
	require.NoError(t, err)
	list, err = c.ShoppingList(ctx, view.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, list.CheckedItems)

	view, err = c.Assign(ctx, view.ID, models.Thursday, models.Dinner, 4, 2)
	require.NoError(t, err)
	got, err := c.GetPlan(ctx, view.ID)
	require.NoError(t, err)
	assert.Equal(t, view.Nutrition.Weekly, got.Nutrition.Weekly)
}

func TestClient_Errors(t *testing.T) {
	ts := newTestAPI(t)
	ctx := context.Background()

	_, err := newTestClient(t, ts, "alice").GetPlan(ctx, "missing")
	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message, "plan not found")

	_, err = client.New(ts.URL, "").ListPlans(ctx)
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}
