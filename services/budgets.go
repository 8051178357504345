package services

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"aureto/database"
	"aureto/models"

	"github.com/google/uuid"
)

// monthBounds returns the half-open [start, end) interval of the calendar
// month containing ref.
func monthBounds(ref time.Time) (time.Time, time.Time) {
	start := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

// CreateBudget configures a per-category spending limit on a wallet.
func CreateBudget(actorID, walletID, categoryID string, amount float64, period string) (*models.Budget, error) {
	if err := Authorize(actorID, walletID, models.ActionManageBudgets); err != nil {
		return nil, err
	}

	cents, err := models.CentsFromAmount(amount)
	if err != nil {
		return nil, fmt.Errorf("%w: budget amount must be positive", ErrInvalidSpec)
	}

	period = strings.TrimSpace(period)
	if period == "" {
		period = models.PeriodMonthly
	}

	var catType string
	err = database.DB.QueryRow("SELECT type FROM categories WHERE id = ?", categoryID).Scan(&catType)
	if err == sql.ErrNoRows {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up category: %w", err)
	}
	if catType != models.TypeExpense {
		return nil, ErrCategoryTypeMismatch
	}

	b := &models.Budget{
		ID:         uuid.NewString(),
		WalletID:   walletID,
		CategoryID: categoryID,
		Amount:     models.AmountFromCents(cents),
		Period:     period,
		CreatedAt:  time.Now().UTC(),
	}

	err = withWriteRetry(func() error {
		_, err := database.DB.Exec(`
			INSERT INTO budgets (id, wallet_id, category_id, amount_cents, period, created_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`, b.ID, b.WalletID, b.CategoryID, cents, b.Period, b.CreatedAt)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create budget: %w", err)
	}

	return b, nil
}

// UpdateBudget changes a budget's limit.
func UpdateBudget(actorID, budgetID string, amount float64) (*models.Budget, error) {
	cents, err := models.CentsFromAmount(amount)
	if err != nil {
		return nil, fmt.Errorf("%w: budget amount must be positive", ErrInvalidSpec)
	}

	b, err := getBudget(budgetID)
	if err != nil {
		return nil, err
	}
	if err := Authorize(actorID, b.WalletID, models.ActionManageBudgets); err != nil {
		return nil, err
	}

	err = withWriteRetry(func() error {
		_, err := database.DB.Exec("UPDATE budgets SET amount_cents = ? WHERE id = ?", cents, budgetID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update budget: %w", err)
	}

	b.Amount = models.AmountFromCents(cents)
	return b, nil
}

func getBudget(budgetID string) (*models.Budget, error) {
	var b models.Budget
	var cents int64
	err := database.DB.QueryRow(`
		SELECT id, wallet_id, category_id, amount_cents, period, created_at
		FROM budgets WHERE id = ?
	`, budgetID).Scan(&b.ID, &b.WalletID, &b.CategoryID, &cents, &b.Period, &b.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrBudgetNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get budget: %w", err)
	}
	b.Amount = models.AmountFromCents(cents)
	return &b, nil
}

// spentCents recomputes a budget's spend from the transaction log: expense
// transactions for the category inside the period bounds. No counters are
// materialized, so the number cannot drift from the ledger.
func spentCents(walletID, categoryID string, start, end time.Time) (int64, error) {
	var cents int64
	err := database.DB.QueryRow(`
		SELECT COALESCE(SUM(amount_cents), 0)
		FROM transactions
		WHERE wallet_id = ? AND category_id = ? AND type = 'expense' AND date >= ? AND date < ?
	`, walletID, categoryID, start, end).Scan(&cents)
	if err != nil {
		return 0, fmt.Errorf("failed to sum spend: %w", err)
	}
	return cents, nil
}

// BudgetStatusFor derives spent and percentage for one budget at a point in
// time. Percentage is unclamped; values over 100 signal overspend.
func BudgetStatusFor(b models.Budget, ref time.Time) (models.BudgetStatus, error) {
	start, end := monthBounds(ref)
	cents, err := spentCents(b.WalletID, b.CategoryID, start, end)
	if err != nil {
		return models.BudgetStatus{}, err
	}

	status := models.BudgetStatus{Budget: b, Spent: models.AmountFromCents(cents)}
	if b.Amount > 0 {
		status.Percentage = status.Spent / b.Amount * 100
	}
	return status, nil
}

// ListBudgets returns a wallet's budgets with their derived status for the
// month containing ref.
func ListBudgets(actorID, walletID string, ref time.Time) ([]models.BudgetStatus, error) {
	if err := Authorize(actorID, walletID, models.ActionViewWallet); err != nil {
		return nil, err
	}

	rows, err := database.DB.Query(`
		SELECT id, wallet_id, category_id, amount_cents, period, created_at
		FROM budgets WHERE wallet_id = ? ORDER BY created_at
	`, walletID)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	defer rows.Close()

	var budgets []models.Budget
	for rows.Next() {
		var b models.Budget
		var cents int64
		if err := rows.Scan(&b.ID, &b.WalletID, &b.CategoryID, &cents, &b.Period, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan budget: %w", err)
		}
		b.Amount = models.AmountFromCents(cents)
		budgets = append(budgets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var statuses []models.BudgetStatus
	for _, b := range budgets {
		status, err := BudgetStatusFor(b, ref)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}
