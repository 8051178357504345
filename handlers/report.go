package handlers

import (
	"net/http"
	"strconv"
	"time"

	"aureto/middleware"
	"aureto/services"
)

// GetFinancialSummary aggregates income and expenses across the caller's
// wallets for the current period.
func GetFinancialSummary(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
		return
	}

	ref := monthFromQuery(r, time.Now().UTC())
	summary, err := services.FinancialSummary(userID, ref)
	if err != nil {
		http.Error(w, "Failed to compute summary: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

func parseInt(s string) (int, error) {
	return strconv.Atoi(s)
}
