package models

import "time"

type WalletMember struct {
	WalletID string    `json:"walletId"`
	UserID   string    `json:"userId"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joinedAt"`
	// Joined from the users table for member listings
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}
