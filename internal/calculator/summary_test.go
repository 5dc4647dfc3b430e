package calculator

import "testing"

func TestSummarize(t *testing.T) {
	got := Summarize([]DebtRecord{
		{UserID: "A", Type: Hutang, Amount: d(100)},
		{UserID: "A", Type: Hutang, Amount: d(25), IsPaid: true},
		{UserID: "A", Type: Piutang, Amount: d(40)},
		{UserID: "A", Type: Piutang, Amount: d(10), IsPaid: true},
		{UserID: "A", Type: "pinjaman", Amount: d(999)},
	})

	checks := []struct {
		name string
		got  string
		want string
	}{
		{"TotalHutang", got.TotalHutang.String(), "100"},
		{"TotalPiutang", got.TotalPiutang.String(), "40"},
		{"TotalPaidHutang", got.TotalPaidHutang.String(), "25"},
		{"TotalPaidPiutang", got.TotalPaidPiutang.String(), "10"},
		{"NetBalance", got.NetBalance.String(), "-60"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %s, want %s", c.name, c.got, c.want)
		}
	}

	// Unknown types are counted but not totalled
	if got.TotalDebts != 5 || got.UnpaidDebts != 3 || got.PaidDebts != 2 {
		t.Errorf("counts = %d/%d/%d, want 5/3/2", got.TotalDebts, got.UnpaidDebts, got.PaidDebts)
	}
}

func TestSummarize_Empty(t *testing.T) {
	got := Summarize(nil)
	if !got.NetBalance.IsZero() || got.TotalDebts != 0 {
		t.Errorf("expected zero summary, got %+v", got)
	}
}
