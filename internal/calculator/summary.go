package calculator

import "github.com/shopspring/decimal"

// Summary aggregates one owner's debt records.
type Summary struct {
	TotalHutang      decimal.Decimal // Unpaid amounts the owner owes
	TotalPiutang     decimal.Decimal // Unpaid amounts the owner is owed
	TotalPaidHutang  decimal.Decimal
	TotalPaidPiutang decimal.Decimal
	NetBalance       decimal.Decimal // TotalPiutang - TotalHutang
	TotalDebts       int
	UnpaidDebts      int
	PaidDebts        int
}

// Summarize totals paid and unpaid hutang/piutang across debts.
// Records with an unknown type still count towards the record counts.
func Summarize(debts []DebtRecord) Summary {
	s := Summary{
		TotalHutang:      decimal.Zero,
		TotalPiutang:     decimal.Zero,
		TotalPaidHutang:  decimal.Zero,
		TotalPaidPiutang: decimal.Zero,
		TotalDebts:       len(debts),
	}

	for _, d := range debts {
		if d.IsPaid {
			s.PaidDebts++
		} else {
			s.UnpaidDebts++
		}

		switch {
		case d.Type == Hutang && !d.IsPaid:
			s.TotalHutang = s.TotalHutang.Add(d.Amount)
		case d.Type == Piutang && !d.IsPaid:
			s.TotalPiutang = s.TotalPiutang.Add(d.Amount)
		case d.Type == Hutang:
			s.TotalPaidHutang = s.TotalPaidHutang.Add(d.Amount)
		case d.Type == Piutang:
			s.TotalPaidPiutang = s.TotalPaidPiutang.Add(d.Amount)
		}
	}

	s.NetBalance = s.TotalPiutang.Sub(s.TotalHutang)
	return s
}
