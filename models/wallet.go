package models

import "time"

type Wallet struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Type        string     `json:"type"`
	Currency    string     `json:"currency"`
	Balance     float64    `json:"balance"`
	GoalAmount  *float64   `json:"goalAmount,omitempty"`
	GoalDate    *time.Time `json:"goalDate,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// WalletSummary is what GET /wallets returns: the wallet plus the caller's
// role, the member count and (for savings goals) progress toward the goal.
type WalletSummary struct {
	Wallet
	Role         string   `json:"role"`
	MemberCount  int      `json:"memberCount"`
	GoalProgress *float64 `json:"goalProgress,omitempty"`
}
