// Package core holds the Mizan domain model and the aggregation engine.
//
// The aggregation functions are pure and deterministic: they are recomputed
// from the full transaction snapshot on every call and hold no state, so they
// are safe to invoke from any number of call sites.
package core

import "time"

// Totals is the derived income/expense/balance snapshot.
type Totals struct {
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Balance float64 `json:"balance"`
}

// CategoryAmount is one expense group in a category breakdown.
type CategoryAmount struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// MonthBucket is one calendar-month slot of the rolling series.
type MonthBucket struct {
	Year    int        `json:"year"`
	Month   time.Month `json:"month"`
	Income  float64    `json:"income"`
	Expense float64    `json:"expense"`
}

// SeriesMonths is the fixed size of the rolling monthly series.
const SeriesMonths = 6

// ComputeTotals partitions transactions by type and sums the amounts.
// An empty input yields all-zero totals. The result is order-independent up
// to floating-point summation order, which is acceptable at display
// precision.
func ComputeTotals(txs []Transaction) Totals {
	var t Totals
	for _, tx := range txs {
		switch tx.Type {
		case TypeIncome:
			t.Income += tx.Amount
		case TypeExpense:
			t.Expense += tx.Amount
		}
	}
	t.Balance = t.Income - t.Expense
	return t
}

// ComputeCategoryBreakdown sums expense amounts per category label.
// Grouping is by exact string match, case-sensitive, with no trimming or
// normalization. Groups appear in order of first occurrence in the input.
func ComputeCategoryBreakdown(txs []Transaction) []CategoryAmount {
	groups := make([]CategoryAmount, 0)
	index := make(map[string]int)
	for _, tx := range txs {
		if tx.Type != TypeExpense {
			continue
		}
		i, ok := index[tx.Category]
		if !ok {
			i = len(groups)
			index[tx.Category] = i
			groups = append(groups, CategoryAmount{Category: tx.Category})
		}
		groups[i].Amount += tx.Amount
	}
	return groups
}

// ComputeMonthlySeries folds transactions into exactly SeriesMonths buckets,
// one per calendar month ending at ref's month, oldest first. Buckets are
// keyed by (year, month), so a transaction from the same month of a prior
// year is dropped from the series rather than mis-bucketed. Transactions
// outside the window are dropped here but still count in ComputeTotals and
// ComputeCategoryBreakdown.
func ComputeMonthlySeries(txs []Transaction, ref time.Time) []MonthBucket {
	type ym struct {
		year  int
		month time.Month
	}

	buckets := make([]MonthBucket, SeriesMonths)
	index := make(map[ym]int, SeriesMonths)

	// Anchor on the first of ref's month so month arithmetic never
	// normalizes past a short month.
	first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < SeriesMonths; i++ {
		m := first.AddDate(0, i-(SeriesMonths-1), 0)
		buckets[i] = MonthBucket{Year: m.Year(), Month: m.Month()}
		index[ym{m.Year(), m.Month()}] = i
	}

	for _, tx := range txs {
		i, ok := index[ym{tx.CreatedAt.Year(), tx.CreatedAt.Month()}]
		if !ok {
			continue
		}
		switch tx.Type {
		case TypeIncome:
			buckets[i].Income += tx.Amount
		case TypeExpense:
			buckets[i].Expense += tx.Amount
		}
	}
	return buckets
}
