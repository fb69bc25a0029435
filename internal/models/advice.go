package models

import "time"

// One generated advice exchange: the prompt that was sent and the
// sanitized HTML that came back. Append-only, newest first in listings.
type AdviceRecord struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	Title     string    `json:"title"`
	Prompt    string    `json:"prompt"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
