package calculator

import (
	"testing"

	"github.com/shopspring/decimal"
)

func d(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func TestCalculateUserBalances(t *testing.T) {
	users := []UserRecord{
		{ID: "A", Name: "Alice"},
		{ID: "B", Name: "Bob"},
		{ID: "C", Name: "Charlie"},
	}

	tests := []struct {
		name  string
		debts []DebtRecord
		users []UserRecord
		want  map[string]int64
		order []string
	}{
		{
			name: "hutang subtracts and piutang adds",
			debts: []DebtRecord{
				{UserID: "A", Type: Hutang, Amount: d(100)},
				{UserID: "B", Type: Piutang, Amount: d(100)},
			},
			users: users,
			want:  map[string]int64{"A": -100, "B": 100, "C": 0},
			order: []string{"A", "B", "C"},
		},
		{
			name: "paid debts are ignored",
			debts: []DebtRecord{
				{UserID: "A", Type: Hutang, Amount: d(100), IsPaid: true},
				{UserID: "B", Type: Piutang, Amount: d(100), IsPaid: true},
				{UserID: "C", Type: Piutang, Amount: d(30)},
				{UserID: "A", Type: Hutang, Amount: d(30)},
			},
			users: users,
			want:  map[string]int64{"A": -30, "B": 0, "C": 30},
			order: []string{"A", "B", "C"},
		},
		{
			name: "unknown user is skipped",
			debts: []DebtRecord{
				{UserID: "A", Type: Hutang, Amount: d(50)},
				{UserID: "Z", Type: Piutang, Amount: d(50)},
			},
			users: users,
			want:  map[string]int64{"A": -50, "B": 0, "C": 0},
			order: []string{"A", "B", "C"},
		},
		{
			name: "unknown type is skipped",
			debts: []DebtRecord{
				{UserID: "A", Type: DebtType("lunas"), Amount: d(50)},
				{UserID: "B", Type: Piutang, Amount: d(20)},
			},
			users: users,
			want:  map[string]int64{"A": 0, "B": 20, "C": 0},
			order: []string{"A", "B", "C"},
		},
		{
			name:  "output follows user order",
			debts: nil,
			users: []UserRecord{{ID: "C"}, {ID: "A"}, {ID: "B"}},
			want:  map[string]int64{"A": 0, "B": 0, "C": 0},
			order: []string{"C", "A", "B"},
		},
		{
			name:  "no users",
			debts: []DebtRecord{{UserID: "A", Type: Hutang, Amount: d(10)}},
			users: nil,
			want:  map[string]int64{},
			order: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			balances := CalculateUserBalances(tt.debts, tt.users)

			if len(balances) != len(tt.order) {
				t.Fatalf("got %d balances, want %d", len(balances), len(tt.order))
			}
			for i, b := range balances {
				if b.UserID != tt.order[i] {
					t.Errorf("balances[%d].UserID = %s, want %s", i, b.UserID, tt.order[i])
				}
				if !b.Balance.Equal(d(tt.want[b.UserID])) {
					t.Errorf("%s balance = %s, want %d", b.UserID, b.Balance, tt.want[b.UserID])
				}
			}
		})
	}
}

func TestCalculateUserBalancesKeepsNames(t *testing.T) {
	balances := CalculateUserBalances(nil, []UserRecord{{ID: "A", Name: "Alice"}})
	if balances[0].UserName != "Alice" {
		t.Errorf("UserName = %q, want Alice", balances[0].UserName)
	}
}

func TestCalculateUserBalancesZeroSum(t *testing.T) {
	users := []UserRecord{{ID: "A"}, {ID: "B"}, {ID: "C"}, {ID: "D"}}

	// Every debt is recorded from both sides
	pairs := []struct {
		debtor, creditor string
		amount           string
	}{
		{"A", "B", "100.50"},
		{"B", "C", "40.25"},
		{"C", "A", "12"},
		{"D", "A", "77.75"},
		{"D", "C", "3.10"},
	}

	var debts []DebtRecord
	for _, p := range pairs {
		amount := decimal.RequireFromString(p.amount)
		debts = append(debts,
			DebtRecord{UserID: p.debtor, Type: Hutang, Amount: amount},
			DebtRecord{UserID: p.creditor, Type: Piutang, Amount: amount},
		)
	}

	sum := decimal.Zero
	for _, b := range CalculateUserBalances(debts, users) {
		sum = sum.Add(b.Balance)
	}
	if !sum.IsZero() {
		t.Errorf("sum of balances = %s, want 0", sum)
	}
}
