package migrations

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/google/uuid"
)

// SeedDefaultCategories inserts the built-in category catalog. User-created
// categories live alongside these with is_default = 0.
func SeedDefaultCategories(db *sql.DB) error {
	log.Println("Seeding default categories...")

	defaults := []struct {
		name  string
		typ   string
		icon  string
		color string
	}{
		{"Salary", "income", "briefcase", "#1ABC9C"},
		{"Gifts Received", "income", "gift", "#9B59B6"},
		{"Other Income", "income", "plus-circle", "#3498DB"},
		{"Food", "expense", "shopping-cart", "#FF6B6B"},
		{"Housing", "expense", "home", "#45B7D1"},
		{"Transport", "expense", "car", "#4ECDC4"},
		{"Health", "expense", "heart", "#D4A5A5"},
		{"Entertainment", "expense", "film", "#F1C40F"},
		{"Shopping", "expense", "shopping-bag", "#96CEB4"},
		{"Other Expenses", "expense", "more-horizontal", "#FFEEAD"},
	}

	for _, c := range defaults {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM categories WHERE name = ? AND type = ?", c.name, c.typ).Scan(&count)
		if err != nil {
			return fmt.Errorf("failed to check category %s: %w", c.name, err)
		}
		if count > 0 {
			continue
		}

		_, err = db.Exec(`
			INSERT INTO categories (id, name, type, icon, color, is_default)
			VALUES (?, ?, ?, ?, ?, 1)
		`, uuid.NewString(), c.name, c.typ, c.icon, c.color)
		if err != nil {
			return fmt.Errorf("failed to seed category %s: %w", c.name, err)
		}
	}

	log.Println("Default categories seeded successfully")
	return nil
}
