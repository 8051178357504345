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

// GetBudgets returns a wallet's budgets with derived spend for the current
// month (or an explicit year/month override).
func GetBudgets(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
		return
	}

	walletID := r.URL.Query().Get("walletId")
	if walletID == "" {
		http.Error(w, "walletId is required", http.StatusBadRequest)
		return
	}

	ref := monthFromQuery(r, time.Now().UTC())
	budgets, err := services.ListBudgets(userID, walletID, ref)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if budgets == nil {
		budgets = []models.BudgetStatus{}
	}
	writeJSON(w, http.StatusOK, budgets)
}

// CreateBudget configures a spending limit; managers and up.
func CreateBudget(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
		return
	}

	var request struct {
		WalletID   string  `json:"walletId"`
		CategoryID string  `json:"categoryId"`
		Amount     float64 `json:"amount"`
		Period     string  `json:"period"`
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

	budget, err := services.CreateBudget(userID, request.WalletID, request.CategoryID, request.Amount, request.Period)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, budget)
}

// UpdateBudget changes a budget's limit; managers and up.
func UpdateBudget(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
		return
	}

	budgetID := mux.Vars(r)["id"]

	var request struct {
		Amount float64 `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	budget, err := services.UpdateBudget(userID, budgetID, request.Amount)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, budget)
}

// monthFromQuery reads optional year/month query parameters, falling back
// to the month containing def.
func monthFromQuery(r *http.Request, def time.Time) time.Time {
	year, month := def.Year(), int(def.Month())
	if v := r.URL.Query().Get("year"); v != "" {
		if y, err := parseInt(v); err == nil {
			year = y
		}
	}
	if v := r.URL.Query().Get("month"); v != "" {
		if m, err := parseInt(v); err == nil && m >= 1 && m <= 12 {
			month = m
		}
	}
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
}
