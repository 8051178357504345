package models

import "time"

type Transaction struct {
	ID          string    `json:"id"`
	WalletID    string    `json:"walletId"`
	CategoryID  string    `json:"categoryId"`
	UserID      string    `json:"userId"`
	Type        string    `json:"type"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description,omitempty"`
	Date        time.Time `json:"date"`
	CreatedAt   time.Time `json:"createdAt"`
}
