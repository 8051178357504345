package services

import (
	"database/sql"
	"fmt"
	"time"

	"aureto/database"
	"aureto/models"
)

// RoleHierarchy defines the ordering of wallet roles.
// Higher numbers have more permissions.
var RoleHierarchy = map[string]int{
	models.RoleViewer:      1,
	models.RoleContributor: 2,
	models.RoleManager:     3,
	models.RoleOwner:       4,
}

// ActionRoles maps each gated action to the minimum role that may perform it.
var ActionRoles = map[string]string{
	models.ActionViewWallet:        models.RoleViewer,
	models.ActionCreateTransaction: models.RoleContributor,
	models.ActionManageBudgets:     models.RoleManager,
	models.ActionInviteMember:      models.RoleManager,
	models.ActionChangeRoles:       models.RoleOwner,
	models.ActionDeleteWallet:      models.RoleOwner,
}

// IsRoleAtLeast checks if a role is at least at the required level.
func IsRoleAtLeast(role, requiredRole string) bool {
	level, ok := RoleHierarchy[role]
	requiredLevel, requiredOk := RoleHierarchy[requiredRole]
	if !ok || !requiredOk {
		return role == requiredRole
	}
	return level >= requiredLevel
}

// RoleAllows checks whether a role may perform an action. Pure with respect
// to the role tables; unknown actions are denied.
func RoleAllows(role, action string) bool {
	required, ok := ActionRoles[action]
	if !ok {
		return false
	}
	return IsRoleAtLeast(role, required)
}

// GetMemberRole returns the role a user holds on a wallet.
func GetMemberRole(walletID, userID string) (string, error) {
	var role string
	err := database.DB.QueryRow(
		"SELECT role FROM wallet_members WHERE wallet_id = ? AND user_id = ?",
		walletID, userID,
	).Scan(&role)
	if err == sql.ErrNoRows {
		return "", ErrNotMember
	}
	if err != nil {
		return "", fmt.Errorf("failed to get member role: %w", err)
	}
	return role, nil
}

// Authorize checks whether a user may perform an action on a wallet.
func Authorize(userID, walletID, action string) error {
	if _, ok := ActionRoles[action]; !ok {
		return fmt.Errorf("unknown action: %s", action)
	}
	role, err := GetMemberRole(walletID, userID)
	if err != nil {
		return err
	}
	if !RoleAllows(role, action) {
		return ErrInsufficientRole
	}
	return nil
}

// countOwners counts members holding the owner role, inside a transaction so
// role changes and removals see a consistent snapshot.
func countOwners(tx *sql.Tx, walletID string) (int, error) {
	var count int
	err := tx.QueryRow(
		"SELECT COUNT(*) FROM wallet_members WHERE wallet_id = ? AND role = ?",
		walletID, models.RoleOwner,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count owners: %w", err)
	}
	return count, nil
}

// ChangeMemberRole sets a member's role. Only owners may change roles, and
// the sole owner cannot be demoted without promoting a replacement first.
func ChangeMemberRole(actorID, walletID, targetUserID, newRole string) error {
	if _, ok := RoleHierarchy[newRole]; !ok {
		return fmt.Errorf("%w: invalid role %q", ErrInvalidSpec, newRole)
	}

	if err := Authorize(actorID, walletID, models.ActionChangeRoles); err != nil {
		return err
	}

	return withWriteRetry(func() error {
		tx, err := database.DB.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin transaction: %w", err)
		}
		defer tx.Rollback()

		var currentRole string
		err = tx.QueryRow(
			"SELECT role FROM wallet_members WHERE wallet_id = ? AND user_id = ?",
			walletID, targetUserID,
		).Scan(&currentRole)
		if err == sql.ErrNoRows {
			return ErrNotMember
		}
		if err != nil {
			return fmt.Errorf("failed to get target role: %w", err)
		}

		if currentRole == models.RoleOwner && newRole != models.RoleOwner {
			owners, err := countOwners(tx, walletID)
			if err != nil {
				return err
			}
			if owners <= 1 {
				return ErrLastOwner
			}
		}

		_, err = tx.Exec(
			"UPDATE wallet_members SET role = ? WHERE wallet_id = ? AND user_id = ?",
			newRole, walletID, targetUserID,
		)
		if err != nil {
			return fmt.Errorf("failed to update member role: %w", err)
		}

		return tx.Commit()
	})
}

// RemoveMember removes a member from a wallet. Owners can remove anyone;
// other members may only remove themselves. The last owner cannot leave.
func RemoveMember(actorID, walletID, targetUserID string) error {
	if actorID != targetUserID {
		if err := Authorize(actorID, walletID, models.ActionChangeRoles); err != nil {
			return err
		}
	}

	return withWriteRetry(func() error {
		tx, err := database.DB.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin transaction: %w", err)
		}
		defer tx.Rollback()

		var role string
		err = tx.QueryRow(
			"SELECT role FROM wallet_members WHERE wallet_id = ? AND user_id = ?",
			walletID, targetUserID,
		).Scan(&role)
		if err == sql.ErrNoRows {
			return ErrNotMember
		}
		if err != nil {
			return fmt.Errorf("failed to get member role: %w", err)
		}

		if role == models.RoleOwner {
			owners, err := countOwners(tx, walletID)
			if err != nil {
				return err
			}
			if owners <= 1 {
				return ErrLastOwner
			}
		}

		_, err = tx.Exec(
			"DELETE FROM wallet_members WHERE wallet_id = ? AND user_id = ?",
			walletID, targetUserID,
		)
		if err != nil {
			return fmt.Errorf("failed to remove member: %w", err)
		}

		return tx.Commit()
	})
}

// ListMembers returns a wallet's members with their user details.
func ListMembers(actorID, walletID string) ([]models.WalletMember, error) {
	if err := Authorize(actorID, walletID, models.ActionViewWallet); err != nil {
		return nil, err
	}

	rows, err := database.DB.Query(`
		SELECT m.wallet_id, m.user_id, m.role, m.joined_at, COALESCE(u.name, ''), COALESCE(u.email, '')
		FROM wallet_members m
		LEFT JOIN users u ON u.id = m.user_id
		WHERE m.wallet_id = ?
		ORDER BY m.joined_at
	`, walletID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []models.WalletMember
	for rows.Next() {
		var m models.WalletMember
		var joinedAt time.Time
		if err := rows.Scan(&m.WalletID, &m.UserID, &m.Role, &joinedAt, &m.Name, &m.Email); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		m.JoinedAt = joinedAt
		members = append(members, m)
	}
	return members, rows.Err()
}
