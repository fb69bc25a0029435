package storage

import (
	"database/sql"
	"errors"

	"FinanceAdvisor/internal/models"

	"modernc.org/sqlite"
)

var ErrUsernameExists = errors.New("username already exists")

// SQLITE_CONSTRAINT_UNIQUE
const sqliteUniqueViolation = 2067

func CreateUser(username, passwordHash string) (int, error) {
	stmt, err := db.Prepare("INSERT INTO users(username, password_hash) VALUES(?, ?)")
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	result, err := stmt.Exec(username, passwordHash)
	if err != nil {
		var sqliteErr *sqlite.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code() == sqliteUniqueViolation {
			return 0, ErrUsernameExists
		}
		return 0, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}
	return int(id), nil
}

func GetUserByUsername(username string) (models.User, error) {
	var user models.User

	row := db.QueryRow("SELECT id, username, password_hash FROM users WHERE username = ?", username)
	if err := row.Scan(&user.ID, &user.Username, &user.PasswordHash); err != nil {
		return user, err // sql.ErrNoRows for missing users
	}
	return user, nil
}

func GetUserIDByUsername(username string) (int, error) {
	var id int
	row := db.QueryRow("SELECT id FROM users WHERE username = ?", username)
	if err := row.Scan(&id); err != nil {
		if err == sql.ErrNoRows {
			return 0, err
		}
		return 0, err
	}
	return id, nil
}
