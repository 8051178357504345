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

// GetWalletTransactions lists a wallet's transactions, newest first.
func GetWalletTransactions(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
		return
	}

	walletID := mux.Vars(r)["id"]
	transactions, err := services.ListTransactions(userID, walletID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if transactions == nil {
		transactions = []models.Transaction{}
	}
	writeJSON(w, http.StatusOK, transactions)
}

// AddTransaction posts a transaction to a wallet's ledger. The caller is
// recorded as the author regardless of the request body.
func AddTransaction(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
		return
	}

	var request struct {
		WalletID    string    `json:"walletId"`
		CategoryID  string    `json:"categoryId"`
		Type        string    `json:"type"`
		Amount      float64   `json:"amount"`
		Description string    `json:"description"`
		Date        time.Time `json:"date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if request.WalletID == "" {
		http.Error(w, "walletId is required", http.StatusBadRequest)
		return
	}
	if request.CategoryID == "" {
		http.Error(w, "categoryId is required", http.StatusBadRequest)
		return
	}

	tx, err := services.PostTransaction(userID, models.Transaction{
		WalletID:    request.WalletID,
		CategoryID:  request.CategoryID,
		Type:        request.Type,
		Amount:      request.Amount,
		Description: request.Description,
		Date:        request.Date,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, tx)
}
