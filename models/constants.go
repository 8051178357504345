package models

// Wallet member roles, ordered by capability
const (
	RoleOwner       = "owner"
	RoleManager     = "manager"
	RoleContributor = "contributor"
	RoleViewer      = "viewer"
)

// Actions gated by the role matrix
const (
	ActionViewWallet        = "view_wallet"
	ActionCreateTransaction = "create_transaction"
	ActionManageBudgets     = "manage_budgets"
	ActionInviteMember      = "invite_member"
	ActionChangeRoles       = "change_roles"
	ActionDeleteWallet      = "delete_wallet"
)

// Wallet types
const (
	WalletPersonal    = "personal"
	WalletShared      = "shared"
	WalletSavingsGoal = "savings_goal"
)

// Transaction and category types
const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

// Invitation statuses
const (
	InvitationPending  = "pending"
	InvitationAccepted = "accepted"
	InvitationExpired  = "expired"
)

// Budget periods. Monthly is the only period with computed bounds; other
// values are carried opaquely and still evaluated against the calendar month.
const (
	PeriodMonthly = "monthly"
)
