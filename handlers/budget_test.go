package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"aureto/models"
)

func TestGetBudgetsRequiresWalletID(t *testing.T) {
	SetupTestDB(t)

	req := httptest.NewRequest("GET", "/budgets", nil)
	req = SetupTestAuth(req)
	w := httptest.NewRecorder()

	GetBudgets(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status code %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestCreateAndListBudgets(t *testing.T) {
	SetupTestDB(t)
	walletID := seedWallet(t, TestUserID, "Mine", "shared")
	categoryID := seedCategory(t, "Groceries", "expense")

	jsonBody, _ := json.Marshal(map[string]interface{}{
		"walletId": walletID, "categoryId": categoryID, "amount": 300,
	})
	req := httptest.NewRequest("POST", "/budgets", bytes.NewBuffer(jsonBody))
	req = SetupTestAuth(req)
	w := httptest.NewRecorder()

	CreateBudget(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status code %d, got %d: %s", http.StatusCreated, w.Code, w.Body.String())
	}
	var budget models.Budget
	if err := json.NewDecoder(w.Body).Decode(&budget); err != nil {
		t.Fatal(err)
	}
	if budget.Period != models.PeriodMonthly {
		t.Errorf("Expected monthly default period, got %s", budget.Period)
	}

	req = httptest.NewRequest("GET", "/budgets?walletId="+walletID, nil)
	req = SetupTestAuth(req)
	w = httptest.NewRecorder()

	GetBudgets(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status code %d, got %d", http.StatusOK, w.Code)
	}
	var statuses []models.BudgetStatus
	if err := json.NewDecoder(w.Body).Decode(&statuses); err != nil {
		t.Fatal(err)
	}
	if len(statuses) != 1 {
		t.Fatalf("Expected 1 budget, got %d", len(statuses))
	}
	if statuses[0].Spent != 0 {
		t.Errorf("Expected zero spend, got %v", statuses[0].Spent)
	}
}

func TestCreateBudgetIncomeCategoryRejected(t *testing.T) {
	SetupTestDB(t)
	walletID := seedWallet(t, TestUserID, "Mine", "shared")
	categoryID := seedCategory(t, "Paycheck", "income")

	jsonBody, _ := json.Marshal(map[string]interface{}{
		"walletId": walletID, "categoryId": categoryID, "amount": 300,
	})
	req := httptest.NewRequest("POST", "/budgets", bytes.NewBuffer(jsonBody))
	req = SetupTestAuth(req)
	w := httptest.NewRecorder()

	CreateBudget(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status code %d, got %d", http.StatusBadRequest, w.Code)
	}
}
