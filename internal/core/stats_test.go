package core

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestComputeTotals(t *testing.T) {
	tests := []struct {
		name string
		txs  []Transaction
		want Totals
	}{
		{
			name: "empty input yields zero totals",
			txs:  nil,
			want: Totals{},
		},
		{
			name: "arabic scenario",
			txs: []Transaction{
				{Amount: 100, Type: TypeIncome, Category: "راتب", CreatedAt: date(2024, time.January, 15)},
				{Amount: 40, Type: TypeExpense, Category: "طعام", CreatedAt: date(2024, time.January, 20)},
			},
			want: Totals{Income: 100, Expense: 40, Balance: 60},
		},
		{
			name: "multiple per type",
			txs: []Transaction{
				{Amount: 1000, Type: TypeIncome, Category: "Salary"},
				{Amount: 250, Type: TypeIncome, Category: "Freelance"},
				{Amount: 300, Type: TypeExpense, Category: "Food"},
				{Amount: 120, Type: TypeExpense, Category: "Bills"},
			},
			want: Totals{Income: 1250, Expense: 420, Balance: 830},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeTotals(tt.txs)
			if got != tt.want {
				t.Errorf("ComputeTotals() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestComputeTotals_BalanceIdentity(t *testing.T) {
	txs := []Transaction{
		{Amount: 13.37, Type: TypeIncome},
		{Amount: 0.01, Type: TypeExpense},
		{Amount: 99.99, Type: TypeExpense},
		{Amount: 500, Type: TypeIncome},
	}
	got := ComputeTotals(txs)
	if got.Balance != got.Income-got.Expense {
		t.Errorf("balance %v != income %v - expense %v", got.Balance, got.Income, got.Expense)
	}
}

func TestComputeCategoryBreakdown(t *testing.T) {
	t.Run("expense only, first-appearance order", func(t *testing.T) {
		txs := []Transaction{
			{Amount: 100, Type: TypeIncome, Category: "راتب"},
			{Amount: 40, Type: TypeExpense, Category: "طعام"},
			{Amount: 25, Type: TypeExpense, Category: "مواصلات"},
			{Amount: 10, Type: TypeExpense, Category: "طعام"},
		}
		got := ComputeCategoryBreakdown(txs)
		want := []CategoryAmount{
			{Category: "طعام", Amount: 50},
			{Category: "مواصلات", Amount: 25},
		}
		if len(got) != len(want) {
			t.Fatalf("got %d groups, want %d", len(got), len(want))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("group %d = %+v, want %+v", i, got[i], want[i])
			}
		}
	})

	t.Run("case-sensitive grouping", func(t *testing.T) {
		txs := []Transaction{
			{Amount: 10, Type: TypeExpense, Category: "Food"},
			{Amount: 20, Type: TypeExpense, Category: "food"},
		}
		got := ComputeCategoryBreakdown(txs)
		if len(got) != 2 {
			t.Fatalf("got %d groups, want 2 (labels must not be merged across case)", len(got))
		}
	})

	t.Run("empty input yields empty breakdown", func(t *testing.T) {
		if got := ComputeCategoryBreakdown(nil); len(got) != 0 {
			t.Errorf("got %d groups, want 0", len(got))
		}
	})

	t.Run("breakdown sum equals expense total", func(t *testing.T) {
		txs := []Transaction{
			{Amount: 12.5, Type: TypeExpense, Category: "a"},
			{Amount: 7.5, Type: TypeExpense, Category: "b"},
			{Amount: 5, Type: TypeExpense, Category: "a"},
			{Amount: 99, Type: TypeIncome, Category: "c"},
		}
		var sum float64
		for _, g := range ComputeCategoryBreakdown(txs) {
			sum += g.Amount
		}
		if want := ComputeTotals(txs).Expense; sum != want {
			t.Errorf("breakdown sum = %v, want expense total %v", sum, want)
		}
	})
}

func TestComputeMonthlySeries(t *testing.T) {
	ref := date(2024, time.June, 15)

	t.Run("always exactly six buckets", func(t *testing.T) {
		for _, txs := range [][]Transaction{nil, {{Amount: 1, Type: TypeIncome, CreatedAt: ref}}} {
			got := ComputeMonthlySeries(txs, ref)
			if len(got) != SeriesMonths {
				t.Fatalf("got %d buckets, want %d", len(got), SeriesMonths)
			}
		}
	})

	t.Run("window spans ref month back five months, oldest first", func(t *testing.T) {
		got := ComputeMonthlySeries(nil, ref)
		wantMonths := []time.Month{time.January, time.February, time.March, time.April, time.May, time.June}
		for i, m := range wantMonths {
			if got[i].Month != m || got[i].Year != 2024 {
				t.Errorf("bucket %d = %d-%v, want 2024-%v", i, got[i].Year, got[i].Month, m)
			}
		}
	})

	t.Run("window crossing a year boundary", func(t *testing.T) {
		got := ComputeMonthlySeries(nil, date(2024, time.February, 1))
		if got[0].Year != 2023 || got[0].Month != time.September {
			t.Errorf("oldest bucket = %d-%v, want 2023-September", got[0].Year, got[0].Month)
		}
		if got[5].Year != 2024 || got[5].Month != time.February {
			t.Errorf("newest bucket = %d-%v, want 2024-February", got[5].Year, got[5].Month)
		}
	})

	t.Run("amounts folded into the right bucket", func(t *testing.T) {
		txs := []Transaction{
			{Amount: 100, Type: TypeIncome, CreatedAt: date(2024, time.June, 1)},
			{Amount: 30, Type: TypeExpense, CreatedAt: date(2024, time.June, 28)},
			{Amount: 55, Type: TypeExpense, CreatedAt: date(2024, time.March, 3)},
		}
		got := ComputeMonthlySeries(txs, ref)
		if got[5].Income != 100 || got[5].Expense != 30 {
			t.Errorf("June bucket = %+v, want income 100 expense 30", got[5])
		}
		if got[2].Expense != 55 {
			t.Errorf("March bucket = %+v, want expense 55", got[2])
		}
	})

	t.Run("out-of-window transaction dropped from series but kept in totals", func(t *testing.T) {
		old := Transaction{Amount: 77, Type: TypeExpense, Category: "x", CreatedAt: date(2023, time.June, 10)}
		got := ComputeMonthlySeries([]Transaction{old}, ref)
		for i, b := range got {
			if b.Income != 0 || b.Expense != 0 {
				t.Errorf("bucket %d = %+v, want zero", i, b)
			}
		}
		if totals := ComputeTotals([]Transaction{old}); totals.Expense != 77 {
			t.Errorf("totals expense = %v, want 77", totals.Expense)
		}
	})

	t.Run("same month of a prior year is not mis-bucketed", func(t *testing.T) {
		// 2023-06 shares June's label with the 2024-06 bucket but must not
		// land in it.
		tx := Transaction{Amount: 10, Type: TypeIncome, CreatedAt: date(2023, time.June, 1)}
		got := ComputeMonthlySeries([]Transaction{tx}, ref)
		if got[5].Income != 0 {
			t.Errorf("June 2024 bucket income = %v, want 0", got[5].Income)
		}
	})

	t.Run("month arithmetic anchored on day one", func(t *testing.T) {
		// A reference on the 31st must not skip short months.
		got := ComputeMonthlySeries(nil, date(2024, time.March, 31))
		wantMonths := []time.Month{time.October, time.November, time.December, time.January, time.February, time.March}
		for i, m := range wantMonths {
			if got[i].Month != m {
				t.Errorf("bucket %d month = %v, want %v", i, got[i].Month, m)
			}
		}
	})
}
