// Package api defines the request and response messages of the debt
// service RPCs. Messages travel as JSON; decimal amounts accept both JSON
// numbers and strings and are emitted as strings.
package api

import "github.com/shopspring/decimal"

// DebtRecord is one side of a debt in a caller-supplied snapshot.
type DebtRecord struct {
	UserID string          `json:"user_id"`
	Type   string          `json:"type"` // "hutang" or "piutang"
	Amount decimal.Decimal `json:"amount"`
	IsPaid bool            `json:"is_paid"`
}

// UserRef names a user in a snapshot.
type UserRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// UserBalance is a user's signed net balance; positive means owed money.
type UserBalance struct {
	UserID   string          `json:"user_id"`
	UserName string          `json:"user_name"`
	Balance  decimal.Decimal `json:"balance"`
}

// OptimizedDebt is one settling transaction.
type OptimizedDebt struct {
	From     string `json:"from"`
	FromName string `json:"from_name"`
	To       string `json:"to"`
	ToName   string `json:"to_name"`
	Amount   int64  `json:"amount"`
}

type OptimizeRequest struct {
	Debts []DebtRecord `json:"debts"`
	Users []UserRef    `json:"users"`
}

type OptimizeResponse struct {
	Balances          []UserBalance   `json:"balances"`
	OptimizedDebts    []OptimizedDebt `json:"optimized_debts"`
	TotalTransactions int             `json:"total_transactions"`
	TotalAmount       int64           `json:"total_amount"`
}

type SimulateRequest struct {
	Debts      []DebtRecord    `json:"debts"`
	Users      []UserRef       `json:"users"`
	FromUserID string          `json:"from_user_id"`
	ToUserID   string          `json:"to_user_id"`
	Amount     decimal.Decimal `json:"amount"`
}

type SimulateResponse struct {
	Before  []OptimizedDebt `json:"before"`
	After   []OptimizedDebt `json:"after"`
	Impact  string          `json:"impact"` // reduces, no_change or adds
	Delta   int             `json:"delta"`
	Summary string          `json:"summary"`
}

// FindPathRequest takes either a precomputed plan in OptimizedDebts or a
// snapshot in Debts and Users from which the plan is computed.
type FindPathRequest struct {
	FromUserID     string          `json:"from_user_id"`
	ToUserID       string          `json:"to_user_id"`
	OptimizedDebts []OptimizedDebt `json:"optimized_debts"`
	Debts          []DebtRecord    `json:"debts"`
	Users          []UserRef       `json:"users"`
}

type FindPathResponse struct {
	Path  *OptimizedDebt `json:"path"` // null when there is no direct transaction
	Found bool           `json:"found"`
}

// SuggestionsRequest follows the same input rules as FindPathRequest.
type SuggestionsRequest struct {
	UserID         string          `json:"user_id"`
	OptimizedDebts []OptimizedDebt `json:"optimized_debts"`
	Debts          []DebtRecord    `json:"debts"`
	Users          []UserRef       `json:"users"`
}

type SuggestionsResponse struct {
	ShouldPay   []OptimizedDebt `json:"should_pay"`
	WillReceive []OptimizedDebt `json:"will_receive"`
}
