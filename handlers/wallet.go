package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"aureto/middleware"
	"aureto/models"
	"aureto/services"

	"github.com/gorilla/mux"
)

// GetWallets returns the wallets visible to the caller with their role,
// member count and goal progress embedded.
func GetWallets(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
		return
	}

	wallets, err := services.ListWallets(userID)
	if err != nil {
		http.Error(w, "Failed to list wallets: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if wallets == nil {
		wallets = []models.WalletSummary{}
	}
	writeJSON(w, http.StatusOK, wallets)
}

// CreateWallet creates a wallet owned by the caller.
func CreateWallet(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
		return
	}

	var request struct {
		Name        string     `json:"name"`
		Description string     `json:"description"`
		Type        string     `json:"type"`
		Currency    string     `json:"currency"`
		GoalAmount  *float64   `json:"goalAmount"`
		GoalDate    *time.Time `json:"goalDate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	wallet, err := services.CreateWallet(userID, services.WalletSpec{
		Name:        request.Name,
		Description: request.Description,
		Type:        request.Type,
		Currency:    request.Currency,
		GoalAmount:  request.GoalAmount,
		GoalDate:    request.GoalDate,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, wallet)
}

// DeleteWallet removes a wallet; owners only.
func DeleteWallet(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
		return
	}

	walletID := mux.Vars(r)["id"]
	if err := services.DeleteWallet(userID, walletID); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}
