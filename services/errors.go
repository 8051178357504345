package services

import "errors"

// Error taxonomy for the wallet core. Handlers map these to HTTP statuses;
// every rejected operation leaves state unchanged.
var (
	ErrNotMember            = errors.New("user is not a member of this wallet")
	ErrInsufficientRole     = errors.New("insufficient role for this action")
	ErrRoleEscalation       = errors.New("cannot grant a role above your own")
	ErrInvalidSpec          = errors.New("invalid wallet spec")
	ErrCategoryTypeMismatch = errors.New("transaction type does not match category type")
	ErrInvitationNotFound   = errors.New("invitation not found")
	ErrInvitationExpired    = errors.New("invitation expired")
	ErrEmailMismatch        = errors.New("invitation email does not match user")
	ErrDuplicateInvitation  = errors.New("a pending invitation already exists for this email")
	ErrDuplicateMember      = errors.New("user is already a member of this wallet")
	ErrLastOwner            = errors.New("cannot remove or demote the last owner")
	ErrWalletNotFound       = errors.New("wallet not found")
	ErrCategoryNotFound     = errors.New("category not found")
	ErrBudgetNotFound       = errors.New("budget not found")
	ErrStorageConflict      = errors.New("storage conflict, please retry")
)
