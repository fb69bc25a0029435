/**
* Name: 			advice_handler.go
* Description: 		Advice generation and history handlers
* Workflow: 		Profile -> prompt -> model -> sanitize -> record
 */

package handler

import (
	"database/sql"
	"errors"
	"log"
	"net/http"
	"strconv"

	"FinanceAdvisor/internal/models"
	"FinanceAdvisor/internal/ollama"
	"FinanceAdvisor/internal/storage"

	"github.com/gin-gonic/gin"
)

// Advice list response (wrapper)
type AdviceHistoryResponse struct {
	History []models.AdviceRecord `json:"history"`
}

// GenerateAdvice godoc
// @Summary      Generate investment advice
// @Description  Builds a prompt from the user's financial profile, queries the model endpoint and stores the sanitized result.
// @Tags         API (Protected)
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} models.AdviceRecord
// @Failure      401 {object} handler.ErrorResponse "Authentication failure"
// @Failure      404 {object} handler.ErrorResponse "No financial profile yet"
// @Failure      502 {object} handler.ErrorResponse "Advisor unavailable"
// @Router       /api/advice [post]
func (h *Handler) GenerateAdvice(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	record, err := h.advisor.GenerateAdvice(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrProfileNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Financial profile not found. Please create one first."})
		case ollama.IsModelError(err):
			log.Printf("[ERROR] Model call failed for user %d: %v", userID, err)
			c.JSON(http.StatusBadGateway, gin.H{"error": advisorUnavailableMessage})
		default:
			log.Printf("[ERROR] GenerateAdvice failed for user %d: %v", userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate advice"})
		}
		return
	}

	c.JSON(http.StatusOK, record)
}

// ListAdvice godoc
// @Summary      Advice history
// @Description  Returns the user's past advice records, newest first.
// @Tags         API (Protected)
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} handler.AdviceHistoryResponse
// @Failure      401 {object} handler.ErrorResponse "Authentication failure"
// @Failure      500 {object} handler.ErrorResponse "Database error"
// @Router       /api/advice [get]
func (h *Handler) ListAdvice(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	records, err := storage.ListAdviceByUserID(userID)
	if err != nil {
		log.Printf("[ERROR] ListAdviceByUserID failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch records"})
		return
	}
	if records == nil {
		records = []models.AdviceRecord{}
	}
	c.JSON(http.StatusOK, AdviceHistoryResponse{History: records})
}

// GetAdvice godoc
// @Summary      Single advice record
// @Description  Returns one advice record owned by the authenticated user.
// @Tags         API (Protected)
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Advice record id"
// @Success      200 {object} models.AdviceRecord
// @Failure      404 {object} handler.ErrorResponse "Not found (or owned by someone else)"
// @Router       /api/advice/{id} [get]
func (h *Handler) GetAdvice(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid advice id"})
		return
	}

	record, err := storage.GetAdviceByID(id, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Advice record not found"})
			return
		}
		log.Printf("[ERROR] GetAdviceByID failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	c.JSON(http.StatusOK, record)
}
