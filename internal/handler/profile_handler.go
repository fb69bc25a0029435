/**
* Name: 			profile_handler.go
* Description: 		CRUD handlers for the financial profile form
* Workflow: 		Bind JSON, field-level validation, storage write
 */

package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"FinanceAdvisor/internal/models"
	"FinanceAdvisor/internal/storage"

	"github.com/gin-gonic/gin"
)

func currentUserID(c *gin.Context) (int, bool) {
	username := c.GetString("username")
	userID, err := storage.GetUserIDByUsername(username)
	if err != nil {
		log.Printf("[ERROR] Failed to resolve user %q: %v", username, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get user"})
		return 0, false
	}
	return userID, true
}

func bindProfile(c *gin.Context) (*models.FinancialProfile, bool) {
	rawData, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return nil, false
	}

	var profile models.FinancialProfile
	if err := json.Unmarshal(rawData, &profile); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "JSON parsing error: " + err.Error()})
		return nil, false
	}
	if profile.FamilySize == 0 {
		profile.FamilySize = 1
	}

	profile.FillDerived()
	if fields := profile.Validate(); len(fields) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "validation failed", "fields": fields})
		return nil, false
	}
	return &profile, true
}

// GetProfile godoc
// @Summary      Get financial profile
// @Description  Returns the authenticated user's financial profile. (JWT required)
// @Tags         API (Protected)
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} models.FinancialProfile
// @Failure      401 {object} handler.ErrorResponse "Missing or expired token"
// @Failure      404 {object} handler.ErrorResponse "No profile yet"
// @Router       /api/profile [get]
func (h *Handler) GetProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	profile, err := storage.GetProfileByUserID(userID)
	if err != nil {
		if errors.Is(err, storage.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Financial profile not found"})
			return
		}
		log.Printf("[ERROR] GetProfileByUserID failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, profile)
}

// CreateProfile godoc
// @Summary      Create financial profile
// @Description  Creates the financial profile for the authenticated user. One per user.
// @Tags         API (Protected)
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body models.FinancialProfile true "Profile fields"
// @Success      200 {object} models.FinancialProfile
// @Failure      400 {object} handler.ErrorResponse "Profile already exists"
// @Failure      422 {object} handler.ErrorResponse "Field-level validation errors"
// @Router       /api/profile [post]
func (h *Handler) CreateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	profile, ok := bindProfile(c)
	if !ok {
		return
	}
	profile.ID = 0
	profile.UserID = userID

	if err := storage.CreateProfile(profile); err != nil {
		if errors.Is(err, storage.ErrProfileExists) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "You already have a financial profile. You can update it instead."})
			return
		}
		log.Printf("[ERROR] CreateProfile failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, profile)
}

// UpdateProfile godoc
// @Summary      Update financial profile
// @Description  Replaces the authenticated user's financial profile.
// @Tags         API (Protected)
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body models.FinancialProfile true "Profile fields"
// @Success      200 {object} models.FinancialProfile
// @Failure      404 {object} handler.ErrorResponse "No profile yet"
// @Failure      422 {object} handler.ErrorResponse "Field-level validation errors"
// @Router       /api/profile [put]
func (h *Handler) UpdateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	profile, ok := bindProfile(c)
	if !ok {
		return
	}
	profile.UserID = userID

	if err := storage.UpdateProfile(profile); err != nil {
		if errors.Is(err, storage.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Financial profile not found. Please create one first."})
			return
		}
		log.Printf("[ERROR] UpdateProfile failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, profile)
}
