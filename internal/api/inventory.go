package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"kitchenmate/internal/inventory"
	"kitchenmate/internal/models"
)

func (s *Server) handleListInventory(c *gin.Context) {
	items, err := s.store.ListInventory(c.Request.Context(), currentUser(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	items = inventory.Search(items, c.Query("search"), c.Query("category"))
	c.JSON(http.StatusOK, inventory.Annotate(items, s.now()))
}

func (s *Server) handleInventoryStats(c *gin.Context) {
	items, err := s.store.ListInventory(c.Request.Context(), currentUser(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, inventory.Summarize(items, s.now()))
}

func (s *Server) handleCreateInventoryItem(c *gin.Context) {
	var item models.InventoryItem
	if err := c.ShouldBindJSON(&item); err != nil {
		badRequest(c, err.Error())
		return
	}
	if !validItem(c, &item) {
		return
	}

	item.ID = 0
	item.UserID = currentUser(c)
	inventory.Prepare(&item, s.now())
	if err := s.store.SaveInventoryItem(c.Request.Context(), &item); err != nil {
		s.fail(c, err)
		return
	}

	status, days := inventory.Status(item, s.now())
	c.JSON(http.StatusCreated, inventory.ItemStatus{InventoryItem: item, Status: status, DaysUntilExpiry: days})
}

func (s *Server) handleUpdateInventoryItem(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	user := currentUser(c)

	existing, err := s.store.GetInventoryItem(ctx, user, id)
	if err != nil {
		s.fail(c, err)
		return
	}

	item := *existing
	if err := c.ShouldBindJSON(&item); err != nil {
		badRequest(c, err.Error())
		return
	}
	if !validItem(c, &item) {
		return
	}
	item.ID = existing.ID
	item.UserID = existing.UserID
	item.CreatedAt = existing.CreatedAt
	inventory.Prepare(&item, s.now())

	if err := s.store.SaveInventoryItem(ctx, &item); err != nil {
		s.fail(c, err)
		return
	}

	status, days := inventory.Status(item, s.now())
	c.JSON(http.StatusOK, inventory.ItemStatus{InventoryItem: item, Status: status, DaysUntilExpiry: days})
}

func (s *Server) handleDeleteInventoryItem(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := s.store.DeleteInventoryItem(c.Request.Context(), currentUser(c), id); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item deleted successfully"})
}

func validItem(c *gin.Context, item *models.InventoryItem) bool {
	item.Name = strings.TrimSpace(item.Name)
	switch {
	case item.Name == "":
		badRequest(c, "name is required")
		return false
	case item.Quantity < 0:
		badRequest(c, "quantity must not be negative")
		return false
	case item.FreshnessScore < 0 || item.FreshnessScore > 10:
		badRequest(c, "freshness_score must be between 1 and 10")
		return false
	}
	return true
}
