package migrations

import (
	"database/sql"
	"fmt"
	"log"
)

// BaseSchema creates all tables the backend needs.
func BaseSchema(db *sql.DB) error {
	log.Println("Creating base schema...")

	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			email TEXT UNIQUE NOT NULL,
			name TEXT NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS categories (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			type TEXT NOT NULL CHECK (type IN ('income', 'expense')),
			icon TEXT,
			color TEXT,
			is_default BOOLEAN NOT NULL DEFAULT 0,
			UNIQUE(name, type)
		);`,
		`CREATE TABLE IF NOT EXISTS wallets (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT,
			type TEXT NOT NULL CHECK (type IN ('personal', 'shared', 'savings_goal')),
			currency TEXT NOT NULL DEFAULT 'USD',
			balance_cents INTEGER NOT NULL DEFAULT 0,
			goal_amount_cents INTEGER,
			goal_date TIMESTAMP,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS wallet_members (
			wallet_id TEXT NOT NULL,
			user_id TEXT NOT NULL,
			role TEXT NOT NULL CHECK (role IN ('owner', 'manager', 'contributor', 'viewer')),
			joined_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (wallet_id, user_id)
		);`,
		`CREATE TABLE IF NOT EXISTS transactions (
			id TEXT PRIMARY KEY,
			wallet_id TEXT NOT NULL,
			category_id TEXT NOT NULL,
			user_id TEXT NOT NULL,
			type TEXT NOT NULL CHECK (type IN ('income', 'expense')),
			amount_cents INTEGER NOT NULL,
			description TEXT,
			date TIMESTAMP NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS budgets (
			id TEXT PRIMARY KEY,
			wallet_id TEXT NOT NULL,
			category_id TEXT NOT NULL,
			amount_cents INTEGER NOT NULL,
			period TEXT NOT NULL DEFAULT 'monthly',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(wallet_id, category_id, period)
		);`,
		`CREATE TABLE IF NOT EXISTS invitations (
			id TEXT PRIMARY KEY,
			wallet_id TEXT NOT NULL,
			email TEXT NOT NULL,
			role TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'pending',
			token_hash TEXT NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			expires_at TIMESTAMP NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_wallet_date ON transactions (wallet_id, date);`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_wallet_category ON transactions (wallet_id, category_id);`,
		`CREATE INDEX IF NOT EXISTS idx_wallet_members_user ON wallet_members (user_id);`,
		`CREATE INDEX IF NOT EXISTS idx_invitations_email ON invitations (email, status);`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create base schema: %w", err)
		}
	}

	log.Println("Base schema created successfully")
	return nil
}
