package handler

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"

	"FinanceAdvisor/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Upgrade HTTP connection to WebSocket
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleChatSocket godoc
// @Summary      Chat WebSocket session
// @Description  Opens a live chat session with the AI advisor.
// @Description  <br>
// @Description  **Note: this is not a standard HTTP API.**
// @Description  Clients connect with the `ws://` or `wss://` scheme.
// @Description  Authentication uses the **`token` query parameter**, not a header.
// @Tags         WebSocket (Chat)
// @Param        token query string true "JWT token from login"
// @Success      101 {string} string "101 Switching Protocols"
// @Failure      401 {object} handler.ErrorResponse "Missing or invalid token"
// @Failure      500 {object} handler.ErrorResponse "WebSocket upgrade failure"
// @Router       /ws/chat [get]
func (h *Handler) HandleChatSocket(c *gin.Context) {
	tokenString := c.Query("token")

	claims, err := h.tokens.Validate(tokenString)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}

	username := claims.Username
	userID, err := storage.GetUserIDByUsername(username)
	if err != nil {
		log.Printf("HandleChatSocket(): Failed to get user info for websocket: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("error: Failed to upgrade to WebSocket : User %s with %v", username, err)
		return
	}
	defer conn.Close()
	log.Printf("WebSocket connection established for user: %s", username)

	greeting := fmt.Sprintf("Connected. Ask %s's financial advisor anything.", username)
	if err := conn.WriteMessage(websocket.TextMessage, []byte(greeting)); err != nil {
		log.Printf("Error sending greeting to user %s: %v", username, err)
		return
	}

	h.manageChatSession(conn, userID, username)
}

func (h *Handler) manageChatSession(conn *websocket.Conn, userID int, username string) {
	sessionID := uuid.New().String()
	log.Printf("Chat session %s started for user: %s", sessionID, username)

ReadLoop:
	for {
		messageType, message, err := conn.ReadMessage()
		if err != nil {
			log.Printf("Error reading message from user %s: %v", username, err)
			break ReadLoop
		}

		if messageType != websocket.TextMessage {
			log.Printf("Unsupported message type from user %s: %d", username, messageType)
			continue
		}

		text := strings.TrimSpace(string(message))
		if text == "" {
			continue
		}

		reply, err := h.advisor.Chat(context.Background(), userID, text)
		if err != nil {
			log.Printf("Chat session %s: advisor error for user %s: %v", sessionID, username, err)
			if writeErr := conn.WriteMessage(websocket.TextMessage, []byte(advisorUnavailableMessage)); writeErr != nil {
				break ReadLoop
			}
			continue
		}

		if err := conn.WriteMessage(websocket.TextMessage, []byte(reply.Content)); err != nil {
			log.Printf("Error sending message to user %s: %v", username, err)
			break ReadLoop
		}
	}
	log.Printf("Chat session %s ended for user: %s", sessionID, username)
}
