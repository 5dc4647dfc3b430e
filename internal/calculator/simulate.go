package calculator

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Impact classifies how a hypothetical payment changes the settlement plan.
type Impact string

const (
	ImpactReduces  Impact = "reduces"
	ImpactNoChange Impact = "no_change"
	ImpactAdds     Impact = "adds"
)

// SimulationInput describes a hypothetical payment against a debt snapshot.
type SimulationInput struct {
	Debts      []DebtRecord
	Users      []UserRecord
	FromUserID string // Becomes a creditor by Amount
	ToUserID   string // Becomes a debtor by Amount
	Amount     decimal.Decimal
}

// SimulationResult holds the plans before and after the simulated payment.
type SimulationResult struct {
	Before []OptimizedDebt
	After  []OptimizedDebt
	Impact Impact
	// Delta is the number of transactions saved; zero unless Impact is ImpactReduces.
	Delta int
	// Summary is a human-readable description of the impact.
	Summary string
}

// SimulatePayment re-optimizes the snapshot with the payment recorded as a
// new pair of debts and reports the difference in transaction count.
func SimulatePayment(in SimulationInput) SimulationResult {
	before := OptimizeDebts(CalculateUserBalances(in.Debts, in.Users))
	after := OptimizeDebts(CalculateUserBalances(in.withPayment(), in.Users))

	result := SimulationResult{Before: before, After: after}
	switch {
	case len(before) > len(after):
		result.Impact = ImpactReduces
		result.Delta = len(before) - len(after)
		result.Summary = fmt.Sprintf("reduces %d transactions", result.Delta)
	case len(before) == len(after):
		result.Impact = ImpactNoChange
		result.Summary = "no change"
	default:
		result.Impact = ImpactAdds
		result.Summary = "adds transactions"
	}

	return result
}

// Check reports ErrAmountOutOfRange when the snapshot, with or without the
// payment, cannot be settled within MaxSettlement.
func (in SimulationInput) Check() error {
	if in.Amount.Abs().GreaterThan(MaxSettlement) {
		return fmt.Errorf("%w: payment of %s", ErrAmountOutOfRange, in.Amount)
	}
	if err := CheckBalances(CalculateUserBalances(in.Debts, in.Users)); err != nil {
		return err
	}
	return CheckBalances(CalculateUserBalances(in.withPayment(), in.Users))
}

// withPayment returns a copy of the debts with the payment recorded as a
// piutang for FromUserID and a hutang for ToUserID.
func (in SimulationInput) withPayment() []DebtRecord {
	simulated := make([]DebtRecord, 0, len(in.Debts)+2)
	simulated = append(simulated, in.Debts...)
	return append(simulated,
		DebtRecord{UserID: in.FromUserID, Type: Piutang, Amount: in.Amount},
		DebtRecord{UserID: in.ToUserID, Type: Hutang, Amount: in.Amount},
	)
}
