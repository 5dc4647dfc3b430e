package models

import (
	"github.com/shopspring/decimal"

	"github.com/ArdhikaRizki/debTBE/internal/calculator"
)

// DebtStatus tracks where a debt is in its confirmation lifecycle.
type DebtStatus string

const (
	StatusPending             DebtStatus = "pending"
	StatusConfirmed           DebtStatus = "confirmed"
	StatusRejected            DebtStatus = "rejected"
	StatusSettlementRequested DebtStatus = "settlement_requested"
)

// Valid reports whether s is a known status.
func (s DebtStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusRejected, StatusSettlementRequested:
		return true
	}
	return false
}

// Debt is a hutang or piutang record owned by one user.
type Debt struct {
	// ID is the unique identifier for the debt (UUID format).
	ID string

	// UserID is the owner of the record.
	UserID string

	// Type is hutang when the owner owes, piutang when the owner is owed.
	Type calculator.DebtType

	// Name is the display name of the counterparty.
	Name string

	// OtherUserID optionally links the counterparty's account.
	OtherUserID string

	// Amount is the outstanding amount.
	Amount decimal.Decimal

	// Description is a free-form note.
	Description string

	// Date is the Unix timestamp the debt was incurred.
	Date int64

	// IsPaid marks the debt as settled.
	IsPaid bool

	// GroupID optionally ties the debt to a group.
	GroupID string

	// Status defaults to confirmed.
	Status DebtStatus

	// InitiatedBy is the user who recorded the debt.
	InitiatedBy string

	// RejectionReason is set when the counterparty rejects the debt.
	RejectionReason string

	// CreatedAt is the Unix timestamp when the record was created.
	CreatedAt int64

	// UpdatedAt is the Unix timestamp of the last change.
	UpdatedAt int64
}

// DebtFilter narrows a debt listing. Nil fields match everything.
type DebtFilter struct {
	Type   *calculator.DebtType
	IsPaid *bool
	Status *DebtStatus
}

// Record converts the debt into the owner's side of a balance calculation.
func (d *Debt) Record() calculator.DebtRecord {
	return calculator.DebtRecord{
		UserID: d.UserID,
		Type:   d.Type,
		Amount: d.Amount,
		IsPaid: d.IsPaid,
	}
}

// MirrorRecord returns the counterparty's side of the debt. ok is false when
// the counterparty is not a registered user or the type is unknown.
func (d *Debt) MirrorRecord() (calculator.DebtRecord, bool) {
	if d.OtherUserID == "" || !d.Type.Valid() {
		return calculator.DebtRecord{}, false
	}

	mirror := calculator.Piutang
	if d.Type == calculator.Piutang {
		mirror = calculator.Hutang
	}
	return calculator.DebtRecord{
		UserID: d.OtherUserID,
		Type:   mirror,
		Amount: d.Amount,
		IsPaid: d.IsPaid,
	}, true
}
