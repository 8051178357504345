package models

// FinancialSummary aggregates signed totals over the caller's wallets for
// one calendar month.
type FinancialSummary struct {
	Year          int     `json:"year"`
	Month         int     `json:"month"`
	TotalIncome   float64 `json:"totalIncome"`
	TotalExpenses float64 `json:"totalExpenses"`
}
