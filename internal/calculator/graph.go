package calculator

// DebtGraph is the settlement plan for a snapshot of debts together with
// the balances it was derived from.
type DebtGraph struct {
	Balances          []UserBalance
	OptimizedDebts    []OptimizedDebt
	TotalTransactions int
	TotalAmount       int64
}

// Suggestions partitions a settlement plan from one user's point of view.
type Suggestions struct {
	ShouldPay   []OptimizedDebt // Transactions where the user pays
	WillReceive []OptimizedDebt // Transactions where the user is paid
}

// OptimizedDebtGraph calculates balances and the settlement plan in one pass.
func OptimizedDebtGraph(debts []DebtRecord, users []UserRecord) DebtGraph {
	balances := CalculateUserBalances(debts, users)
	optimized := OptimizeDebts(balances)

	var total int64
	for _, d := range optimized {
		total += d.Amount
	}

	return DebtGraph{
		Balances:          balances,
		OptimizedDebts:    optimized,
		TotalTransactions: len(optimized),
		TotalAmount:       total,
	}
}

// FindDirectPath returns the first transaction in which fromUserID pays
// toUserID directly. Multi-hop paths are not considered.
func FindDirectPath(fromUserID, toUserID string, debts []OptimizedDebt) (OptimizedDebt, bool) {
	for _, d := range debts {
		if d.From == fromUserID && d.To == toUserID {
			return d, true
		}
	}
	return OptimizedDebt{}, false
}

// UserSuggestions lists what userID should pay and will receive under the plan.
func UserSuggestions(userID string, debts []OptimizedDebt) Suggestions {
	var s Suggestions
	for _, d := range debts {
		if d.From == userID {
			s.ShouldPay = append(s.ShouldPay, d)
		}
		if d.To == userID {
			s.WillReceive = append(s.WillReceive, d)
		}
	}
	return s
}
