package storage

import (
	"FinanceAdvisor/internal/models"
)

func CreateChatMessage(message *models.ChatMessage) error {
	stmt, err := db.Prepare("INSERT INTO chat_messages(user_id, role, content, created_at) VALUES(?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	created := now()
	result, err := stmt.Exec(message.UserID, message.Role, message.Content, created)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	message.ID = int(id)
	message.CreatedAt = parseTime(created)
	return nil
}

func ListChatMessagesByUserID(userID int) ([]models.ChatMessage, error) {
	query := `
		SELECT id, user_id, role, content, created_at
		FROM chat_messages
		WHERE user_id = ?
		ORDER BY created_at ASC, id ASC
	`
	return queryChatMessages(query, userID)
}

// ListRecentChatMessages returns the last limit messages, oldest first,
// for use as conversation context in chat prompts.
func ListRecentChatMessages(userID, limit int) ([]models.ChatMessage, error) {
	query := `
		SELECT id, user_id, role, content, created_at
		FROM chat_messages
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`
	messages, err := queryChatMessages(query, userID, limit)
	if err != nil {
		return nil, err
	}

	// reverse into chronological order
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

func queryChatMessages(query string, args ...any) ([]models.ChatMessage, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []models.ChatMessage
	for rows.Next() {
		var m models.ChatMessage
		var createdStr string

		if err := rows.Scan(&m.ID, &m.UserID, &m.Role, &m.Content, &createdStr); err != nil {
			return nil, err
		}
		m.CreatedAt = parseTime(createdStr)
		messages = append(messages, m)
	}
	return messages, rows.Err()
}
