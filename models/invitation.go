package models

import "time"

type Invitation struct {
	ID        string    `json:"id"`
	WalletID  string    `json:"walletId"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	Token     string    `json:"token,omitempty"` // returned once at creation, stored hashed
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}
