/**
* Name: 			chat_handler.go
* Description: 		One-turn chat with the AI advisor plus history retrieval
* Workflow: 		Save user turn, prompt with context, sanitize reply
 */

package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"FinanceAdvisor/internal/models"
	"FinanceAdvisor/internal/ollama"
	"FinanceAdvisor/internal/storage"

	"github.com/gin-gonic/gin"
)

// /api/chat request body
type ChatRequest struct {
	Message string `json:"message" example:"Should I invest in index funds?"`
}

type ChatResponse struct {
	ResponseHTML string `json:"response_html"`
	Timestamp    string `json:"timestamp"`
}

// Chat history response (wrapper)
type ChatHistoryResponse struct {
	History []models.ChatMessage `json:"history"`
}

// Chat godoc
// @Summary      Chat with the advisor
// @Description  Sends one user message to the AI advisor and returns the sanitized HTML reply.
// @Tags         API (Protected)
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body handler.ChatRequest true "Chat message"
// @Success      200 {object} handler.ChatResponse
// @Failure      400 {object} handler.ErrorResponse "Empty message"
// @Failure      404 {object} handler.ErrorResponse "No financial profile yet"
// @Failure      502 {object} handler.ErrorResponse "Advisor unavailable"
// @Router       /api/chat [post]
func (h *Handler) Chat(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	rawData, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	var req ChatRequest
	if err := json.Unmarshal(rawData, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message cannot be empty"})
		return
	}

	reply, err := h.advisor.Chat(c.Request.Context(), userID, message)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrProfileNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Financial profile not found"})
		case ollama.IsModelError(err):
			log.Printf("[ERROR] Model call failed for user %d: %v", userID, err)
			c.JSON(http.StatusBadGateway, gin.H{"error": advisorUnavailableMessage})
		default:
			log.Printf("[ERROR] Chat failed for user %d: %v", userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process message"})
		}
		return
	}

	c.JSON(http.StatusOK, ChatResponse{
		ResponseHTML: reply.Content,
		Timestamp:    reply.CreatedAt.Format("2006-01-02 15:04:05"),
	})
}

// GetChatHistory godoc
// @Summary      Chat history
// @Description  Returns the user's chat messages in chronological order.
// @Tags         API (Protected)
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} handler.ChatHistoryResponse
// @Failure      401 {object} handler.ErrorResponse "Authentication failure"
// @Failure      500 {object} handler.ErrorResponse "Database error"
// @Router       /api/chat/history [get]
func (h *Handler) GetChatHistory(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	messages, err := storage.ListChatMessagesByUserID(userID)
	if err != nil {
		log.Printf("[ERROR] ListChatMessagesByUserID failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch messages"})
		return
	}
	if messages == nil {
		messages = []models.ChatMessage{}
	}
	c.JSON(http.StatusOK, ChatHistoryResponse{History: messages})
}
