package storage

import (
	"database/sql"

	"FinanceAdvisor/internal/models"
)

func CreateAdvice(record *models.AdviceRecord) error {
	stmt, err := db.Prepare("INSERT INTO advice_records(user_id, title, prompt, content, created_at) VALUES(?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	created := now()
	result, err := stmt.Exec(record.UserID, record.Title, record.Prompt, record.Content, created)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	record.ID = int(id)
	record.CreatedAt = parseTime(created)
	return nil
}

// GetAdviceByID is owner-scoped: a record belonging to another user reads
// as sql.ErrNoRows.
func GetAdviceByID(id, userID int) (models.AdviceRecord, error) {
	var r models.AdviceRecord
	var createdStr string

	row := db.QueryRow(
		"SELECT id, user_id, title, prompt, content, created_at FROM advice_records WHERE id = ? AND user_id = ?",
		id, userID,
	)
	if err := row.Scan(&r.ID, &r.UserID, &r.Title, &r.Prompt, &r.Content, &createdStr); err != nil {
		return r, err
	}
	r.CreatedAt = parseTime(createdStr)
	return r, nil
}

func ListAdviceByUserID(userID int) ([]models.AdviceRecord, error) {
	query := `
		SELECT id, user_id, title, prompt, content, created_at
		FROM advice_records
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
	`
	rows, err := db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.AdviceRecord
	for rows.Next() {
		var r models.AdviceRecord
		var createdStr string

		if err := rows.Scan(&r.ID, &r.UserID, &r.Title, &r.Prompt, &r.Content, &createdStr); err != nil {
			return nil, err
		}
		r.CreatedAt = parseTime(createdStr)
		records = append(records, r)
	}
	return records, rows.Err()
}

func CountAdviceByUserID(userID int) (int, error) {
	var count int
	row := db.QueryRow("SELECT COUNT(*) FROM advice_records WHERE user_id = ?", userID)
	if err := row.Scan(&count); err != nil && err != sql.ErrNoRows {
		return 0, err
	}
	return count, nil
}
