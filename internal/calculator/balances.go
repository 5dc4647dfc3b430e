package calculator

import "github.com/shopspring/decimal"

// DebtType is the direction of a debt record from its owner's point of view.
type DebtType string

const (
	// Hutang means the record's owner owes the amount.
	Hutang DebtType = "hutang"
	// Piutang means the record's owner is owed the amount.
	Piutang DebtType = "piutang"
)

// Valid reports whether t is one of the known debt types.
func (t DebtType) Valid() bool {
	return t == Hutang || t == Piutang
}

// DebtRecord represents a debt with the minimal information needed for balance calculations.
type DebtRecord struct {
	UserID string
	Type   DebtType
	Amount decimal.Decimal
	IsPaid bool
}

// UserRecord identifies a user taking part in a settlement.
type UserRecord struct {
	ID   string
	Name string
}

// UserBalance represents the net balance of one user.
type UserBalance struct {
	UserID   string
	UserName string
	Balance  decimal.Decimal // Positive = owed money, Negative = owes money
}

// CalculateUserBalances reduces debt records into one signed net balance per user.
//
// Algorithm:
// - Every user starts at zero, in the order users are given
// - Paid debts are ignored
// - piutang adds the amount to the owner's balance, hutang subtracts it
// - Debts whose owner is not in users, or whose type is unknown, are skipped
func CalculateUserBalances(debts []DebtRecord, users []UserRecord) []UserBalance {
	// Track position per user so output follows the order of users
	index := make(map[string]int, len(users))
	balances := make([]UserBalance, 0, len(users))

	for _, user := range users {
		if i, exists := index[user.ID]; exists {
			balances[i].UserName = user.Name
			continue
		}
		index[user.ID] = len(balances)
		balances = append(balances, UserBalance{
			UserID:   user.ID,
			UserName: user.Name,
			Balance:  decimal.Zero,
		})
	}

	for _, debt := range debts {
		if debt.IsPaid || !debt.Type.Valid() {
			continue
		}

		// Skip debts for unknown users (caller's snapshot is inconsistent)
		i, exists := index[debt.UserID]
		if !exists {
			continue
		}

		if debt.Type == Piutang {
			balances[i].Balance = balances[i].Balance.Add(debt.Amount)
		} else {
			balances[i].Balance = balances[i].Balance.Sub(debt.Amount)
		}
	}

	return balances
}
