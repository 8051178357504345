package handlers

import (
	"database/sql"
	"encoding/json"
	"log"
	"math/rand"
	"net/http"
	"strings"

	"aureto/database"
	"aureto/models"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// GetCategories lists the category catalog, optionally filtered by type.
func GetCategories(w http.ResponseWriter, r *http.Request) {
	query := "SELECT id, name, type, COALESCE(icon, ''), COALESCE(color, ''), is_default FROM categories"
	args := []interface{}{}

	catType := r.URL.Query().Get("type")
	if catType != "" {
		if catType != models.TypeIncome && catType != models.TypeExpense {
			http.Error(w, "type must be income or expense", http.StatusBadRequest)
			return
		}
		query += " WHERE type = ?"
		args = append(args, catType)
	}
	query += " ORDER BY name"

	rows, err := database.DB.Query(query, args...)
	if err != nil {
		log.Printf("Error querying categories: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Type, &c.Icon, &c.Color, &c.IsDefault); err != nil {
			log.Printf("Error scanning category: %v", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		categories = append(categories, c)
	}
	if categories == nil {
		categories = []models.Category{}
	}

	writeJSON(w, http.StatusOK, categories)
}

// AddCategory inserts a user-defined category. Type is fixed at creation;
// existing transactions depend on it staying put.
func AddCategory(w http.ResponseWriter, r *http.Request) {
	var c models.Category
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}
	if c.Type != models.TypeIncome && c.Type != models.TypeExpense {
		http.Error(w, "type must be income or expense", http.StatusBadRequest)
		return
	}

	c.ID = uuid.NewString()
	c.IsDefault = false
	if c.Color == "" {
		c.Color = generateRandomColor()
	}

	_, err := database.DB.Exec(`
		INSERT INTO categories (id, name, type, icon, color, is_default)
		VALUES (?, ?, ?, ?, ?, 0)
	`, c.ID, c.Name, c.Type, c.Icon, c.Color)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, c)
}

// UpdateCategory applies cosmetic edits (name, icon, color). Type changes
// are rejected because they would invalidate existing transactions.
func UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var request struct {
		Name  string `json:"name"`
		Type  string `json:"type"`
		Icon  string `json:"icon"`
		Color string `json:"color"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var current models.Category
	err := database.DB.QueryRow(
		"SELECT id, name, type, COALESCE(icon, ''), COALESCE(color, ''), is_default FROM categories WHERE id = ?", id,
	).Scan(&current.ID, &current.Name, &current.Type, &current.Icon, &current.Color, &current.IsDefault)
	if err == sql.ErrNoRows {
		http.Error(w, "Category not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if request.Type != "" && request.Type != current.Type {
		http.Error(w, "category type is immutable", http.StatusBadRequest)
		return
	}
	if name := strings.TrimSpace(request.Name); name != "" {
		current.Name = name
	}
	if request.Icon != "" {
		current.Icon = request.Icon
	}
	if request.Color != "" {
		current.Color = request.Color
	}

	_, err = database.DB.Exec(`
		UPDATE categories SET name = ?, icon = ?, color = ? WHERE id = ?
	`, current.Name, current.Icon, current.Color, id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, current)
}

func generateRandomColor() string {
	colors := []string{
		"#FF6B6B", "#4ECDC4", "#45B7D1", "#96CEB4", "#FFEEAD",
		"#D4A5A5", "#9B59B6", "#3498DB", "#1ABC9C", "#F1C40F",
	}
	return colors[rand.Intn(len(colors))]
}
