package models

import "time"

type Budget struct {
	ID         string    `json:"id"`
	WalletID   string    `json:"walletId"`
	CategoryID string    `json:"categoryId"`
	Amount     float64   `json:"amount"`
	Period     string    `json:"period"`
	CreatedAt  time.Time `json:"createdAt"`
}

// BudgetStatus carries the derived numbers next to the configured limit.
// Spent is always recomputed from the transaction log, never stored.
type BudgetStatus struct {
	Budget
	Spent      float64 `json:"spent"`
	Percentage float64 `json:"percentage"`
}
