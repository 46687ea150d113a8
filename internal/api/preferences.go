package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kitchenmate/internal/models"
)

func (s *Server) handleGetPreferences(c *gin.Context) {
	prefs, err := s.store.GetPreferences(c.Request.Context(), currentUser(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, prefs)
}

func (s *Server) handleUpdatePreferences(c *gin.Context) {
	var prefs models.Preferences
	if err := c.ShouldBindJSON(&prefs); err != nil {
		badRequest(c, err.Error())
		return
	}
	if prefs.HouseholdSize < 0 || prefs.MaxPrepTime < 0 {
		badRequest(c, "household_size and max_prep_time must not be negative")
		return
	}
	if prefs.HouseholdSize == 0 {
		prefs.HouseholdSize = 1
	}

	prefs.UserID = currentUser(c)
	if err := s.store.SavePreferences(c.Request.Context(), &prefs); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, prefs)
}
