package calculator

import (
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// Epsilon is the tolerance below which a balance counts as settled.
var Epsilon = decimal.New(1, -2)

// MaxSettlement bounds the money owed across one plan so that every
// transaction amount and the plan total fit in an int64.
var MaxSettlement = decimal.New(1, 15)

// ErrAmountOutOfRange is returned by CheckBalances when a snapshot moves more
// money than MaxSettlement.
var ErrAmountOutOfRange = errors.New("amounts exceed the settlement range")

// OptimizedDebt represents one settling transaction: From pays To.
type OptimizedDebt struct {
	From     string // Person who owes
	FromName string
	To       string // Person who is owed
	ToName   string
	Amount   int64
}

// OptimizeDebts produces a settlement plan for the given balances using
// greedy matching of creditors against debtors.
//
// Creditors are sorted by balance descending and debtors by balance ascending
// (most negative first); ties keep their input order. The largest remaining
// creditor is matched with the largest remaining debtor, the smaller of the
// two amounts changes hands, and whoever is settled is moved past. The plan
// is not guaranteed to be globally minimal.
func OptimizeDebts(balances []UserBalance) []OptimizedDebt {
	// Work on copies so the caller's balances stay untouched
	var creditors, debtors []UserBalance
	for _, b := range balances {
		if b.Balance.GreaterThan(Epsilon) {
			creditors = append(creditors, b)
		} else if b.Balance.LessThan(Epsilon.Neg()) {
			debtors = append(debtors, b)
		}
	}

	sort.SliceStable(creditors, func(a, b int) bool {
		return creditors[a].Balance.GreaterThan(creditors[b].Balance)
	})
	sort.SliceStable(debtors, func(a, b int) bool {
		return debtors[a].Balance.LessThan(debtors[b].Balance)
	})

	var debts []OptimizedDebt
	i, j := 0, 0
	for i < len(creditors) && j < len(debtors) {
		creditor := &creditors[i]
		debtor := &debtors[j]

		amount := decimal.Min(creditor.Balance, debtor.Balance.Abs())

		if amount.GreaterThan(Epsilon) {
			// Sub-unit transfers still move balance but are not worth a transaction
			if rounded := amount.Round(0).IntPart(); rounded > 0 {
				debts = append(debts, OptimizedDebt{
					From:     debtor.UserID,
					FromName: debtor.UserName,
					To:       creditor.UserID,
					ToName:   creditor.UserName,
					Amount:   rounded,
				})
			}

			creditor.Balance = creditor.Balance.Sub(amount)
			debtor.Balance = debtor.Balance.Add(amount)
		}

		if settled(creditor.Balance) {
			i++
		}
		if settled(debtor.Balance) {
			j++
		}
	}

	return debts
}

// CheckBalances reports ErrAmountOutOfRange when the total owed to creditors
// or by debtors exceeds MaxSettlement. OptimizeDebts must only be given
// balances that pass this check.
func CheckBalances(balances []UserBalance) error {
	owed, owing := decimal.Zero, decimal.Zero
	for _, b := range balances {
		if b.Balance.IsPositive() {
			owed = owed.Add(b.Balance)
		} else {
			owing = owing.Sub(b.Balance)
		}
	}
	if owed.GreaterThan(MaxSettlement) || owing.GreaterThan(MaxSettlement) {
		return fmt.Errorf("%w: %s owed, %s owing", ErrAmountOutOfRange, owed, owing)
	}
	return nil
}

func settled(balance decimal.Decimal) bool {
	return balance.Abs().LessThanOrEqual(Epsilon)
}
