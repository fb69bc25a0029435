package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

var db *sql.DB

// SQLite stores timestamps as text
const timeLayout = "2006-01-02 15:04:05"

func now() string {
	return time.Now().UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	parsed, _ := time.Parse(timeLayout, s)
	return parsed
}

func InitDB(path string) error {
	var err error

	db, err = sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("InitDB(): failed to open database: %w", err)
	}
	if err = db.Ping(); err != nil {
		return fmt.Errorf("InitDB(): failed to connect to database: %w", err)
	}

	createUsersTable := `
	CREATE TABLE IF NOT EXISTS users (
			"id" INTEGER PRIMARY KEY AUTOINCREMENT,
			"username" TEXT NOT NULL UNIQUE,
			"password_hash" TEXT NOT NULL
	);`
	createProfilesTable := `
	CREATE TABLE IF NOT EXISTS financial_profiles (
			"id" INTEGER PRIMARY KEY AUTOINCREMENT,
			"user_id" INTEGER NOT NULL UNIQUE,
			"name" TEXT NOT NULL,
			"age" INTEGER NOT NULL,
			"occupation" TEXT NOT NULL,
			"family_size" INTEGER NOT NULL DEFAULT 1,
			"monthly_income" TEXT NOT NULL DEFAULT '0',
			"annual_income" TEXT NOT NULL DEFAULT '0',
			"monthly_expenses" TEXT NOT NULL DEFAULT '0',
			"monthly_savings" TEXT NOT NULL DEFAULT '0',
			"savings" TEXT NOT NULL DEFAULT '0',
			"current_debts" TEXT NOT NULL DEFAULT '0',
			"debt_interest_rate" TEXT NOT NULL DEFAULT '0',
			"risk_tolerance" TEXT NOT NULL,
			"investment_goal" TEXT NOT NULL DEFAULT 'other',
			"investment_knowledge" TEXT NOT NULL DEFAULT '3',
			"has_investment_experience" INTEGER NOT NULL DEFAULT 0,
			"previous_investments" TEXT NOT NULL DEFAULT '',
			"short_term_goals" TEXT NOT NULL DEFAULT '',
			"short_term_goal_amount" TEXT NOT NULL DEFAULT '0',
			"medium_term_goals" TEXT NOT NULL DEFAULT '',
			"medium_term_goal_amount" TEXT NOT NULL DEFAULT '0',
			"long_term_goals" TEXT NOT NULL DEFAULT '',
			"long_term_goal_amount" TEXT NOT NULL DEFAULT '0',
			"other_assets" TEXT NOT NULL DEFAULT '',
			"retirement_plans" TEXT NOT NULL DEFAULT '',
			"created_at" DATETIME NOT NULL,
			"updated_at" DATETIME NOT NULL,
			FOREIGN KEY(user_id) REFERENCES users(id)
	);`
	createAdviceTable := `
	CREATE TABLE IF NOT EXISTS advice_records (
			"id" INTEGER PRIMARY KEY AUTOINCREMENT,
			"user_id" INTEGER NOT NULL,
			"title" TEXT NOT NULL,
			"prompt" TEXT NOT NULL,
			"content" TEXT NOT NULL,
			"created_at" DATETIME NOT NULL,
			FOREIGN KEY(user_id) REFERENCES users(id)
	);`
	createChatTable := `
	CREATE TABLE IF NOT EXISTS chat_messages (
			"id" INTEGER PRIMARY KEY AUTOINCREMENT,
			"user_id" INTEGER NOT NULL,
			"role" TEXT NOT NULL,
			"content" TEXT NOT NULL,
			"created_at" DATETIME NOT NULL,
			FOREIGN KEY(user_id) REFERENCES users(id)
	);`

	for _, stmt := range []string{createUsersTable, createProfilesTable, createAdviceTable, createChatTable} {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("InitDB(): failed to create table: %w", err)
		}
	}
	return nil
}

func CloseDB() error {
	if db == nil {
		return nil
	}
	return db.Close()
}
