package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"aureto/database"
	"aureto/middleware"
	"aureto/models"
)

// SyncUser upserts the caller's identity from the external provider. The
// backend never invents users; this mirrors what the provider asserts.
func SyncUser(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
		return
	}

	var request struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	// Prefer the verified email from the token when present
	email := middleware.GetUserEmailFromContext(r)
	if email == "" {
		email = request.Email
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		http.Error(w, "email is required", http.StatusBadRequest)
		return
	}

	name := strings.TrimSpace(request.Name)
	if name == "" {
		name = email
	}

	_, err := database.DB.Exec(`
		INSERT INTO users (id, email, name) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET email = excluded.email, name = excluded.name
	`, userID, email, name)
	if err != nil {
		log.Printf("Error syncing user %s: %v", userID, err)
		http.Error(w, "Failed to sync user: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, models.User{ID: userID, Email: email, Name: name})
}
