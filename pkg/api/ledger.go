package api

import "github.com/shopspring/decimal"

// Debt is a persisted debt record. Timestamps are Unix seconds.
type Debt struct {
	ID              string          `json:"id"`
	UserID          string          `json:"user_id"`
	Type            string          `json:"type"`
	Name            string          `json:"name"`
	OtherUserID     string          `json:"other_user_id,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description"`
	Date            int64           `json:"date"`
	IsPaid          bool            `json:"is_paid"`
	GroupID         string          `json:"group_id,omitempty"`
	Status          string          `json:"status"`
	InitiatedBy     string          `json:"initiated_by"`
	RejectionReason string          `json:"rejection_reason,omitempty"`
	CreatedAt       int64           `json:"created_at"`
	UpdatedAt       int64           `json:"updated_at"`
}

type CreateDebtRequest struct {
	Type        string          `json:"type"`
	Name        string          `json:"name"`
	OtherUserID string          `json:"other_user_id,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Date        int64           `json:"date,omitempty"` // zero means now
	GroupID     string          `json:"group_id,omitempty"`
	Status      string          `json:"status,omitempty"`
}

type GetDebtRequest struct {
	ID string `json:"id"`
}

type DebtResponse struct {
	Debt Debt `json:"debt"`
}

// ListDebtsRequest filters the caller's debts; nil fields match everything.
type ListDebtsRequest struct {
	Type   *string `json:"type,omitempty"`
	IsPaid *bool   `json:"is_paid,omitempty"`
	Status *string `json:"status,omitempty"`
}

type ListDebtsResponse struct {
	Debts []Debt `json:"debts"`
}

// UpdateDebtRequest changes only the fields that are set.
type UpdateDebtRequest struct {
	ID              string           `json:"id"`
	Type            *string          `json:"type,omitempty"`
	Name            *string          `json:"name,omitempty"`
	OtherUserID     *string          `json:"other_user_id,omitempty"`
	Amount          *decimal.Decimal `json:"amount,omitempty"`
	Description     *string          `json:"description,omitempty"`
	Date            *int64           `json:"date,omitempty"`
	IsPaid          *bool            `json:"is_paid,omitempty"`
	Status          *string          `json:"status,omitempty"`
	RejectionReason *string          `json:"rejection_reason,omitempty"`
}

type DeleteDebtRequest struct {
	ID string `json:"id"`
}

type DeleteDebtResponse struct{}

type MarkPaidRequest struct {
	ID string `json:"id"`
}

type MarkUnpaidRequest struct {
	ID string `json:"id"`
}

type GetSummaryRequest struct{}

type SummaryResponse struct {
	TotalHutang      decimal.Decimal `json:"total_hutang"`
	TotalPiutang     decimal.Decimal `json:"total_piutang"`
	TotalPaidHutang  decimal.Decimal `json:"total_paid_hutang"`
	TotalPaidPiutang decimal.Decimal `json:"total_paid_piutang"`
	NetBalance       decimal.Decimal `json:"net_balance"`
	TotalDebts       int             `json:"total_debts"`
	UnpaidDebts      int             `json:"unpaid_debts"`
	PaidDebts        int             `json:"paid_debts"`
}

type GetLedgerGraphRequest struct{}
