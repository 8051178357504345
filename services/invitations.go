package services

import (
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"aureto/database"
	"aureto/models"
	"aureto/security"

	"github.com/google/uuid"
)

// invitationTTL is how long a pending invitation stays acceptable.
const invitationTTL = 7 * 24 * time.Hour

// Invite creates a pending membership grant for an email address. Sending
// the email itself is an external concern; the returned invitation carries
// the one-time token for that delivery.
func Invite(actorID, walletID, email, role string) (*models.Invitation, error) {
	if err := Authorize(actorID, walletID, models.ActionInviteMember); err != nil {
		return nil, err
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: invalid email address", ErrInvalidSpec)
	}
	if _, ok := RoleHierarchy[role]; !ok {
		return nil, fmt.Errorf("%w: invalid role %q", ErrInvalidSpec, role)
	}

	actorRole, err := GetMemberRole(walletID, actorID)
	if err != nil {
		return nil, err
	}
	if RoleHierarchy[role] > RoleHierarchy[actorRole] {
		return nil, ErrRoleEscalation
	}

	token, err := security.NewInviteToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate invite token: %w", err)
	}

	inv := &models.Invitation{
		ID:        uuid.NewString(),
		WalletID:  walletID,
		Email:     email,
		Role:      role,
		Status:    models.InvitationPending,
		Token:     token,
		CreatedAt: time.Now().UTC(),
		ExpiresAt: time.Now().UTC().Add(invitationTTL),
	}

	// Duplicate checks and the insert share one transaction so two
	// concurrent invites for the same address cannot both pass the checks.
	err = withWriteRetry(func() error {
		tx, err := database.DB.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin transaction: %w", err)
		}
		defer tx.Rollback()

		var memberCount int
		err = tx.QueryRow(`
			SELECT COUNT(*) FROM wallet_members m
			JOIN users u ON u.id = m.user_id
			WHERE m.wallet_id = ? AND LOWER(u.email) = ?
		`, walletID, email).Scan(&memberCount)
		if err != nil {
			return fmt.Errorf("failed to check membership: %w", err)
		}
		if memberCount > 0 {
			return ErrDuplicateMember
		}

		var pendingCount int
		err = tx.QueryRow(`
			SELECT COUNT(*) FROM invitations
			WHERE wallet_id = ? AND email = ? AND status = ? AND expires_at > ?
		`, walletID, email, models.InvitationPending, time.Now().UTC()).Scan(&pendingCount)
		if err != nil {
			return fmt.Errorf("failed to check pending invitations: %w", err)
		}
		if pendingCount > 0 {
			return ErrDuplicateInvitation
		}

		_, err = tx.Exec(`
			INSERT INTO invitations (id, wallet_id, email, role, status, token_hash, created_at, expires_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, inv.ID, inv.WalletID, inv.Email, inv.Role, inv.Status, security.HashToken(token), inv.CreatedAt, inv.ExpiresAt)
		if err != nil {
			return fmt.Errorf("failed to create invitation: %w", err)
		}

		return tx.Commit()
	})
	if err != nil {
		return nil, err
	}

	log.Printf("User %s invited %s to wallet %s as %s", actorID, email, walletID, role)
	return inv, nil
}

// AcceptInvitation resolves a pending invitation for the accepting user.
// The status flip and the membership insert are all-or-nothing.
func AcceptInvitation(invitationID, userID string) (*models.WalletMember, error) {
	var member *models.WalletMember

	err := withWriteRetry(func() error {
		tx, err := database.DB.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin transaction: %w", err)
		}
		defer tx.Rollback()

		var inv models.Invitation
		err = tx.QueryRow(`
			SELECT id, wallet_id, email, role, status, expires_at
			FROM invitations WHERE id = ?
		`, invitationID).Scan(&inv.ID, &inv.WalletID, &inv.Email, &inv.Role, &inv.Status, &inv.ExpiresAt)
		if err == sql.ErrNoRows {
			return ErrInvitationNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to load invitation: %w", err)
		}

		switch inv.Status {
		case models.InvitationPending:
			// acceptable, unless overdue
		case models.InvitationExpired:
			return ErrInvitationExpired
		default:
			return ErrInvitationNotFound
		}

		if time.Now().UTC().After(inv.ExpiresAt) {
			if _, err := tx.Exec("UPDATE invitations SET status = ? WHERE id = ?", models.InvitationExpired, inv.ID); err != nil {
				return fmt.Errorf("failed to mark invitation expired: %w", err)
			}
			if err := tx.Commit(); err != nil {
				return err
			}
			return ErrInvitationExpired
		}

		var userEmail string
		err = tx.QueryRow("SELECT email FROM users WHERE id = ?", userID).Scan(&userEmail)
		if err == sql.ErrNoRows {
			return fmt.Errorf("accepting user %s is not synced", userID)
		}
		if err != nil {
			return fmt.Errorf("failed to load accepting user: %w", err)
		}
		if !strings.EqualFold(userEmail, inv.Email) {
			return ErrEmailMismatch
		}

		var existing int
		err = tx.QueryRow(
			"SELECT COUNT(*) FROM wallet_members WHERE wallet_id = ? AND user_id = ?",
			inv.WalletID, userID,
		).Scan(&existing)
		if err != nil {
			return fmt.Errorf("failed to check existing membership: %w", err)
		}
		if existing > 0 {
			return ErrDuplicateMember
		}

		res, err := tx.Exec(
			"UPDATE invitations SET status = ? WHERE id = ? AND status = ?",
			models.InvitationAccepted, inv.ID, models.InvitationPending,
		)
		if err != nil {
			return fmt.Errorf("failed to accept invitation: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			// Lost a race with a concurrent acceptance
			return ErrInvitationNotFound
		}

		joinedAt := time.Now().UTC()
		_, err = tx.Exec(
			"INSERT INTO wallet_members (wallet_id, user_id, role, joined_at) VALUES (?, ?, ?, ?)",
			inv.WalletID, userID, inv.Role, joinedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert membership: %w", err)
		}

		if err := tx.Commit(); err != nil {
			return err
		}

		member = &models.WalletMember{
			WalletID: inv.WalletID,
			UserID:   userID,
			Role:     inv.Role,
			JoinedAt: joinedAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("User %s accepted invitation %s", userID, invitationID)
	return member, nil
}

// ListInvitations returns a wallet's invitations, newest first.
func ListInvitations(actorID, walletID string) ([]models.Invitation, error) {
	if err := Authorize(actorID, walletID, models.ActionInviteMember); err != nil {
		return nil, err
	}

	rows, err := database.DB.Query(`
		SELECT id, wallet_id, email, role, status, created_at, expires_at
		FROM invitations WHERE wallet_id = ? ORDER BY created_at DESC
	`, walletID)
	if err != nil {
		return nil, fmt.Errorf("failed to list invitations: %w", err)
	}
	defer rows.Close()

	var invitations []models.Invitation
	for rows.Next() {
		var inv models.Invitation
		err := rows.Scan(&inv.ID, &inv.WalletID, &inv.Email, &inv.Role, &inv.Status, &inv.CreatedAt, &inv.ExpiresAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invitation: %w", err)
		}
		invitations = append(invitations, inv)
	}
	return invitations, rows.Err()
}

// ExpireStaleInvitations marks overdue pending invitations as expired.
func ExpireStaleInvitations() error {
	res, err := database.DB.Exec(
		"UPDATE invitations SET status = ? WHERE status = ? AND expires_at <= ?",
		models.InvitationExpired, models.InvitationPending, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to expire invitations: %w", err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		log.Printf("Expired %d stale invitations", n)
	}
	return nil
}
