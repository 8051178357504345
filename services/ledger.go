package services

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"aureto/database"
	"aureto/models"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// WalletSpec is the validated input for creating a wallet.
type WalletSpec struct {
	Name        string
	Description string
	Type        string
	Currency    string
	GoalAmount  *float64
	GoalDate    *time.Time
}

func validWalletType(t string) bool {
	return t == models.WalletPersonal || t == models.WalletShared || t == models.WalletSavingsGoal
}

// CreateWallet creates a wallet with balance 0 and a single owner membership
// for the creator. Both rows are written in one transaction.
func CreateWallet(ownerID string, spec WalletSpec) (*models.Wallet, error) {
	if strings.TrimSpace(spec.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidSpec)
	}
	if !validWalletType(spec.Type) {
		return nil, fmt.Errorf("%w: unknown wallet type %q", ErrInvalidSpec, spec.Type)
	}
	currency := strings.ToUpper(strings.TrimSpace(spec.Currency))
	if currency == "" {
		currency = "USD"
	}
	if len(currency) != 3 {
		return nil, fmt.Errorf("%w: currency must be a 3-letter code", ErrInvalidSpec)
	}

	var goalCents *int64
	if spec.Type == models.WalletSavingsGoal {
		if spec.GoalAmount != nil {
			cents, err := models.CentsFromAmount(*spec.GoalAmount)
			if err != nil {
				return nil, fmt.Errorf("%w: goal amount must be positive", ErrInvalidSpec)
			}
			goalCents = &cents
		}
		if spec.GoalDate != nil {
			today := time.Now().Truncate(24 * time.Hour)
			if spec.GoalDate.Before(today) {
				return nil, fmt.Errorf("%w: goal date must be today or later", ErrInvalidSpec)
			}
		}
	} else if spec.GoalAmount != nil || spec.GoalDate != nil {
		return nil, fmt.Errorf("%w: goal fields only apply to savings_goal wallets", ErrInvalidSpec)
	}

	wallet := &models.Wallet{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(spec.Name),
		Description: strings.TrimSpace(spec.Description),
		Type:        spec.Type,
		Currency:    currency,
		Balance:     0,
		GoalAmount:  spec.GoalAmount,
		GoalDate:    spec.GoalDate,
		CreatedAt:   time.Now().UTC(),
	}

	err := withWriteRetry(func() error {
		tx, err := database.DB.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin transaction: %w", err)
		}
		defer tx.Rollback()

		_, err = tx.Exec(`
			INSERT INTO wallets (id, name, description, type, currency, balance_cents, goal_amount_cents, goal_date, created_at)
			VALUES (?, ?, ?, ?, ?, 0, ?, ?, ?)
		`, wallet.ID, wallet.Name, wallet.Description, wallet.Type, wallet.Currency, goalCents, wallet.GoalDate, wallet.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert wallet: %w", err)
		}

		_, err = tx.Exec(`
			INSERT INTO wallet_members (wallet_id, user_id, role, joined_at)
			VALUES (?, ?, ?, ?)
		`, wallet.ID, ownerID, models.RoleOwner, wallet.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert owner membership: %w", err)
		}

		return tx.Commit()
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Created wallet %s (%s) for user %s", wallet.ID, wallet.Type, ownerID)
	return wallet, nil
}

// PostTransaction validates and appends a transaction, adjusting the wallet
// balance in the same SQL transaction. The pair is all-or-nothing: no state
// is observable where one half is applied without the other.
func PostTransaction(actorID string, t models.Transaction) (*models.Transaction, error) {
	if err := Authorize(actorID, t.WalletID, models.ActionCreateTransaction); err != nil {
		return nil, err
	}

	if t.Type != models.TypeIncome && t.Type != models.TypeExpense {
		return nil, fmt.Errorf("%w: unknown transaction type %q", ErrInvalidSpec, t.Type)
	}
	cents, err := models.CentsFromAmount(t.Amount)
	if err != nil {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidSpec)
	}

	t.ID = uuid.NewString()
	t.UserID = actorID
	t.Amount = models.AmountFromCents(cents)
	if t.Date.IsZero() {
		t.Date = time.Now()
	}
	// Stored as text with the offset preserved, so range queries against the
	// UTC period bounds only compare correctly if every row is UTC too.
	t.Date = t.Date.UTC()
	t.CreatedAt = time.Now().UTC()

	signed := cents
	if t.Type == models.TypeExpense {
		signed = -cents
	}

	err = withWriteRetry(func() error {
		tx, err := database.DB.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin transaction: %w", err)
		}
		defer tx.Rollback()

		var catType string
		err = tx.QueryRow("SELECT type FROM categories WHERE id = ?", t.CategoryID).Scan(&catType)
		if err == sql.ErrNoRows {
			return ErrCategoryNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to look up category: %w", err)
		}
		if catType != t.Type {
			return ErrCategoryTypeMismatch
		}

		res, err := tx.Exec(
			"UPDATE wallets SET balance_cents = balance_cents + ? WHERE id = ?",
			signed, t.WalletID,
		)
		if err != nil {
			return fmt.Errorf("failed to update balance: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return ErrWalletNotFound
		}

		_, err = tx.Exec(`
			INSERT INTO transactions (id, wallet_id, category_id, user_id, type, amount_cents, description, date, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, t.ID, t.WalletID, t.CategoryID, t.UserID, t.Type, cents, t.Description, t.Date, t.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert transaction: %w", err)
		}

		return tx.Commit()
	})
	if err != nil {
		return nil, err
	}

	return &t, nil
}

// GetBalance returns the cached balance in cents. The ledger guarantees this
// equals the signed sum of the wallet's transactions at all times.
func GetBalance(walletID string) (int64, error) {
	var cents int64
	err := database.DB.QueryRow("SELECT balance_cents FROM wallets WHERE id = ?", walletID).Scan(&cents)
	if err == sql.ErrNoRows {
		return 0, ErrWalletNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get balance: %w", err)
	}
	return cents, nil
}

// ReplayBalance recomputes the balance from the full transaction log.
func ReplayBalance(walletID string) (int64, error) {
	var cents int64
	err := database.DB.QueryRow(`
		SELECT COALESCE(SUM(CASE WHEN type = 'income' THEN amount_cents ELSE -amount_cents END), 0)
		FROM transactions WHERE wallet_id = ?
	`, walletID).Scan(&cents)
	if err != nil {
		return 0, fmt.Errorf("failed to replay balance: %w", err)
	}
	return cents, nil
}

// RepairWalletBalances compares every cached balance against a full replay
// and rewrites any that drifted. Wallets are independent, so the recompute
// fans out across them.
func RepairWalletBalances(ctx context.Context) error {
	rows, err := database.DB.Query("SELECT id FROM wallets")
	if err != nil {
		return fmt.Errorf("failed to list wallets: %w", err)
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan wallet id: %w", err)
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, walletID := range ids {
		walletID := walletID
		g.Go(func() error {
			replayed, err := ReplayBalance(walletID)
			if err != nil {
				return err
			}
			cached, err := GetBalance(walletID)
			if err != nil {
				return err
			}
			if cached == replayed {
				return nil
			}
			log.Printf("Balance drift on wallet %s: cached=%d replayed=%d, repairing", walletID, cached, replayed)
			return withWriteRetry(func() error {
				_, err := database.DB.Exec("UPDATE wallets SET balance_cents = ? WHERE id = ?", replayed, walletID)
				return err
			})
		})
	}
	return g.Wait()
}

// ListWallets returns the wallets visible to a user with the caller's role,
// the member count, and savings-goal progress.
func ListWallets(userID string) ([]models.WalletSummary, error) {
	rows, err := database.DB.Query(`
		SELECT w.id, w.name, COALESCE(w.description, ''), w.type, w.currency, w.balance_cents,
		       w.goal_amount_cents, w.goal_date, w.created_at, m.role,
		       (SELECT COUNT(*) FROM wallet_members m2 WHERE m2.wallet_id = w.id)
		FROM wallets w
		JOIN wallet_members m ON m.wallet_id = w.id
		WHERE m.user_id = ?
		ORDER BY w.created_at
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list wallets: %w", err)
	}
	defer rows.Close()

	var wallets []models.WalletSummary
	for rows.Next() {
		var ws models.WalletSummary
		var balanceCents int64
		var goalCents sql.NullInt64
		var goalDate sql.NullTime
		err := rows.Scan(&ws.ID, &ws.Name, &ws.Description, &ws.Type, &ws.Currency, &balanceCents,
			&goalCents, &goalDate, &ws.CreatedAt, &ws.Role, &ws.MemberCount)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wallet: %w", err)
		}
		ws.Balance = models.AmountFromCents(balanceCents)
		if goalCents.Valid {
			amount := models.AmountFromCents(goalCents.Int64)
			ws.GoalAmount = &amount
			if goalCents.Int64 > 0 {
				progress := float64(balanceCents) / float64(goalCents.Int64)
				if progress > 1 {
					progress = 1
				}
				ws.GoalProgress = &progress
			}
		}
		if goalDate.Valid {
			d := goalDate.Time
			ws.GoalDate = &d
		}
		wallets = append(wallets, ws)
	}
	return wallets, rows.Err()
}

// ListTransactions returns a wallet's transactions, newest first.
func ListTransactions(actorID, walletID string) ([]models.Transaction, error) {
	if err := Authorize(actorID, walletID, models.ActionViewWallet); err != nil {
		return nil, err
	}

	rows, err := database.DB.Query(`
		SELECT id, wallet_id, category_id, user_id, type, amount_cents, COALESCE(description, ''), date, created_at
		FROM transactions
		WHERE wallet_id = ?
		ORDER BY date DESC, created_at DESC
	`, walletID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		var t models.Transaction
		var cents int64
		err := rows.Scan(&t.ID, &t.WalletID, &t.CategoryID, &t.UserID, &t.Type, &cents, &t.Description, &t.Date, &t.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		t.Amount = models.AmountFromCents(cents)
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

// DeleteWallet removes a wallet and everything hanging off it.
func DeleteWallet(actorID, walletID string) error {
	if err := Authorize(actorID, walletID, models.ActionDeleteWallet); err != nil {
		return err
	}

	return withWriteRetry(func() error {
		tx, err := database.DB.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin transaction: %w", err)
		}
		defer tx.Rollback()

		for _, table := range []string{"transactions", "budgets", "invitations", "wallet_members"} {
			if _, err := tx.Exec("DELETE FROM "+table+" WHERE wallet_id = ?", walletID); err != nil {
				return fmt.Errorf("failed to delete from %s: %w", table, err)
			}
		}
		if _, err := tx.Exec("DELETE FROM wallets WHERE id = ?", walletID); err != nil {
			return fmt.Errorf("failed to delete wallet: %w", err)
		}

		return tx.Commit()
	})
}
