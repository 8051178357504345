package services

import (
	"database/sql"
	"path/filepath"
	"testing"

	"aureto/database"
	"aureto/migrations"
	"aureto/models"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// setupTestDB opens a fresh file-backed SQLite database under the test's
// temp dir and installs it as the global handle.
func setupTestDB(t *testing.T) {
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

	t.Cleanup(func() {
		db.Close()
		database.DB = nil
	})
}

func seedUser(t *testing.T, id, email string) {
	t.Helper()
	_, err := database.DB.Exec(`INSERT INTO users (id, email, name) VALUES (?, ?, ?)`, id, email, id)
	if err != nil {
		t.Fatalf("seeding user %s: %v", id, err)
	}
}

// createWallet makes a shared wallet owned by ownerID through the real path.
func createWallet(t *testing.T, ownerID string) string {
	t.Helper()
	w, err := CreateWallet(ownerID, WalletSpec{Name: "Household", Type: models.WalletShared})
	if err != nil {
		t.Fatalf("creating wallet: %v", err)
	}
	return w.ID
}

func addMember(t *testing.T, walletID, userID, role string) {
	t.Helper()
	_, err := database.DB.Exec(
		`INSERT INTO wallet_members (wallet_id, user_id, role) VALUES (?, ?, ?)`,
		walletID, userID, role,
	)
	if err != nil {
		t.Fatalf("adding member: %v", err)
	}
}

func floatPtr(v float64) *float64 { return &v }

// queryRowCount counts a wallet's transaction rows.
func queryRowCount(dest *int, walletID string) error {
	return database.DB.QueryRow(
		"SELECT COUNT(*) FROM transactions WHERE wallet_id = ?", walletID,
	).Scan(dest)
}

func execDB(query string, args ...interface{}) (sql.Result, error) {
	return database.DB.Exec(query, args...)
}

func createCategory(t *testing.T, name, categoryType string) string {
	t.Helper()
	id := uuid.NewString()
	_, err := database.DB.Exec(
		`INSERT INTO categories (id, name, type, is_default) VALUES (?, ?, ?, 0)`,
		id, name, categoryType,
	)
	if err != nil {
		t.Fatalf("creating category: %v", err)
	}
	return id
}
