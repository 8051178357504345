package services

import (
	"fmt"
	"time"

	"aureto/database"
	"aureto/models"
)

// FinancialSummary totals income and expenses across every wallet the user
// belongs to, for the calendar month containing ref.
func FinancialSummary(userID string, ref time.Time) (*models.FinancialSummary, error) {
	start, end := monthBounds(ref)

	rows, err := database.DB.Query(`
		SELECT t.type, COALESCE(SUM(t.amount_cents), 0)
		FROM transactions t
		JOIN wallet_members m ON m.wallet_id = t.wallet_id
		WHERE m.user_id = ? AND t.date >= ? AND t.date < ?
		GROUP BY t.type
	`, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to compute financial summary: %w", err)
	}
	defer rows.Close()

	summary := &models.FinancialSummary{Year: start.Year(), Month: int(start.Month())}
	for rows.Next() {
		var txType string
		var cents int64
		if err := rows.Scan(&txType, &cents); err != nil {
			return nil, fmt.Errorf("failed to scan summary row: %w", err)
		}
		switch txType {
		case models.TypeIncome:
			summary.TotalIncome = models.AmountFromCents(cents)
		case models.TypeExpense:
			summary.TotalExpenses = models.AmountFromCents(cents)
		}
	}
	return summary, rows.Err()
}
