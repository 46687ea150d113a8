package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"kitchenmate/internal/models"
	"kitchenmate/internal/planner"
)

// Client talks to a running KitchenMate API
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// New creates a client for the API at baseURL. token is sent as a bearer
// token when set.
func New(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// APIError is a non-2xx response from the API
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// ShoppingList is the grouped shopping list of a plan
type ShoppingList struct {
	PlanID       string                  `json:"plan_id"`
	Categories   []planner.CategoryGroup `json:"categories"`
	TotalItems   int                     `json:"total_items"`
	CheckedItems int                     `json:"checked_items"`
}

// Health checks that the API is up
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}

func (c *Client) ListPlans(ctx context.Context) ([]planner.Summary, error) {
	var plans []planner.Summary
	if err := c.do(ctx, http.MethodGet, "/api/v1/plans", nil, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

// CreatePlan creates a plan for the current week, optionally filled with the
// demo week
func (c *Client) CreatePlan(ctx context.Context, name string, seed bool) (*planner.View, error) {
	body := map[string]interface{}{"name": name, "seed": seed}
	var view planner.View
	if err := c.do(ctx, http.MethodPost, "/api/v1/plans", body, &view); err != nil {
		return nil, err
	}
	return &view, nil
}

func (c *Client) GetPlan(ctx context.Context, planID string) (*planner.View, error) {
	var view planner.View
	if err := c.do(ctx, http.MethodGet, planPath(planID), nil, &view); err != nil {
		return nil, err
	}
	return &view, nil
}

// Assign puts a recipe into a meal slot
func (c *Client) Assign(ctx context.Context, planID string, day models.Day, mealType models.MealType, recipeID uint, servings int) (*planner.View, error) {
	body := map[string]interface{}{"recipe_id": recipeID, "servings": servings}
	path := fmt.Sprintf("%s/meals/%s/%s", planPath(planID), url.PathEscape(string(day)), url.PathEscape(string(mealType)))
	var view planner.View
	if err := c.do(ctx, http.MethodPut, path, body, &view); err != nil {
		return nil, err
	}
	return &view, nil
}

func (c *Client) ShoppingList(ctx context.Context, planID string) (*ShoppingList, error) {
	var list ShoppingList
	if err := c.do(ctx, http.MethodGet, planPath(planID)+"/shopping-list", nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// Toggle flips the checked state of a shopping list ingredient
func (c *Client) Toggle(ctx context.Context, planID, ingredient string) (*planner.View, error) {
	body := map[string]string{"ingredient": ingredient}
	var view planner.View
	if err := c.do(ctx, http.MethodPost, planPath(planID)+"/shopping-list/toggle", body, &view); err != nil {
		return nil, err
	}
	return &view, nil
}

func planPath(planID string) string {
	return "/api/v1/plans/" + url.PathEscape(planID)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr struct {
			Error string `json:"error"`
		}
		data, _ := io.ReadAll(resp.Body)
		msg := strings.TrimSpace(string(data))
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
			msg = apiErr.Error
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}
