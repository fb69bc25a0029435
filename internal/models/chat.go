package models

import "time"

const (
	RoleUser    = "user"
	RoleAdvisor = "advisor"
)

// Chat turn between the user and the AI advisor. Advisor messages hold
// sanitized HTML, user messages hold plain text.
type ChatMessage struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
