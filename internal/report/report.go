// Package report turns a raw transaction list into downloadable artifacts.
//
// The exporters are format-only: they echo the rows they are given in input
// order and never recompute aggregates. Column labels and the date layout
// are passed in by the caller, so export fidelity stays decoupled from the
// localization policy.
package report

import (
	"fmt"
	"strconv"
	"time"
)

// AppName is the fixed title used in document headers and file names.
const AppName = "Mizan"

// Columns is the number of logical export columns: date, title, category,
// amount.
const Columns = 4

// Filename builds the artifact name with the current date embedded, e.g.
// "mizan-transactions-2026-08-23.csv".
func Filename(ext string, now time.Time) string {
	return fmt.Sprintf("mizan-transactions-%s.%s", now.Format("2006-01-02"), ext)
}

// formatAmount renders the raw numeric value without a currency suffix and
// without padded zeros (100 stays "100", 40.5 stays "40.5").
func formatAmount(a float64) string {
	return strconv.FormatFloat(a, 'f', -1, 64)
}
