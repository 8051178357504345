package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"path/filepath"
	"testing"

	"aureto/database"
	"aureto/middleware"
	"aureto/migrations"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// Test user identity shared across handler tests
const (
	TestUserID    = "test-user-id"
	TestUserEmail = "test@example.com"
)

// SetupTestAuth adds authentication context to the request
func SetupTestAuth(req *http.Request) *http.Request {
	ctx := context.WithValue(req.Context(), middleware.UserIDKey, TestUserID)
	ctx = context.WithValue(ctx, middleware.UserEmailKey, TestUserEmail)
	return req.WithContext(ctx)
}

// SetupTestAuthAs adds authentication context for an arbitrary user
func SetupTestAuthAs(req *http.Request, userID, email string) *http.Request {
	ctx := context.WithValue(req.Context(), middleware.UserIDKey, userID)
	ctx = context.WithValue(ctx, middleware.UserEmailKey, email)
	return req.WithContext(ctx)
}

// SetupTestDB opens a fresh file-backed SQLite database under the test's
// temp dir, runs migrations, and installs it as the global handle. A file
// (rather than :memory:) keeps the pooled connections on one database.
func SetupTestDB(t *testing.T) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "aureto_test.db")
	db, err := sql.Open("sqlite3", path+"?_journal=WAL&_busy_timeout=10000&_foreign_keys=on")
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}

	database.DB = db
	if err := migrations.RunMigrations(db); err != nil {
		t.Fatalf("running migrations: %v", err)
	}

	_, err = db.Exec(`INSERT INTO users (id, email, name) VALUES (?, ?, ?)`,
		TestUserID, TestUserEmail, "Test User")
	if err != nil {
		t.Fatalf("seeding test user: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
		database.DB = nil
	})
}

// seedUser inserts an additional user row for multi-member scenarios.
func seedUser(t *testing.T, id, email, name string) {
	t.Helper()
	_, err := database.DB.Exec(`INSERT INTO users (id, email, name) VALUES (?, ?, ?)`, id, email, name)
	if err != nil {
		t.Fatalf("seeding user %s: %v", id, err)
	}
}

// seedWallet creates a wallet owned by ownerID and returns its id.
func seedWallet(t *testing.T, ownerID, name, walletType string) string {
	t.Helper()

	id := uuid.NewString()
	_, err := database.DB.Exec(`
		INSERT INTO wallets (id, name, type, currency, balance_cents) VALUES (?, ?, ?, 'USD', 0)
	`, id, name, walletType)
	if err != nil {
		t.Fatalf("seeding wallet: %v", err)
	}
	_, err = database.DB.Exec(`
		INSERT INTO wallet_members (wallet_id, user_id, role) VALUES (?, ?, 'owner')
	`, id, ownerID)
	if err != nil {
		t.Fatalf("seeding wallet owner: %v", err)
	}
	return id
}

// seedMember attaches a user to a wallet with the given role.
func seedMember(t *testing.T, walletID, userID, role string) {
	t.Helper()
	_, err := database.DB.Exec(`
		INSERT INTO wallet_members (wallet_id, user_id, role) VALUES (?, ?, ?)
	`, walletID, userID, role)
	if err != nil {
		t.Fatalf("seeding member: %v", err)
	}
}

// seedCategory inserts a category and returns its id.
func seedCategory(t *testing.T, name, categoryType string) string {
	t.Helper()

	id := uuid.NewString()
	_, err := database.DB.Exec(`
		INSERT INTO categories (id, name, type, icon, color, is_default) VALUES (?, ?, ?, '', '#CCCCCC', 0)
	`, id, name, categoryType)
	if err != nil {
		t.Fatalf("seeding category: %v", err)
	}
	return id
}
