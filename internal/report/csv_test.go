package report

import (
	"strings"
	"testing"
	"time"

	"mizan/internal/core"
	"mizan/internal/locale"
)

func sampleTxs() []core.Transaction {
	return []core.Transaction{
		{Title: "راتب الشهر", Amount: 1000, Category: "راتب", Type: core.TypeIncome,
			CreatedAt: time.Date(2024, time.January, 15, 10, 0, 0, 0, time.UTC)},
		{Title: "Groceries", Amount: 40.5, Category: "Food", Type: core.TypeExpense,
			CreatedAt: time.Date(2024, time.January, 20, 18, 30, 0, 0, time.UTC)},
	}
}

func TestExportCSV(t *testing.T) {
	labels := locale.ColumnLabels(locale.English)
	layout := locale.DateLayout(locale.English)

	data, err := ExportCSV(sampleTxs(), labels, layout)
	if err != nil {
		t.Fatalf("ExportCSV() error: %v", err)
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3 (header + 2 rows): %q", len(lines), lines)
	}
	if lines[0] != "Date,Title,Category,Amount" {
		t.Errorf("header = %q", lines[0])
	}
	// Order-preserving: row i corresponds to transaction i.
	if lines[1] != "1/15/2024,راتب الشهر,راتب,1000" {
		t.Errorf("row 1 = %q", lines[1])
	}
	if lines[2] != "1/20/2024,Groceries,Food,40.5" {
		t.Errorf("row 2 = %q", lines[2])
	}
}

func TestExportCSV_Empty(t *testing.T) {
	data, err := ExportCSV(nil, locale.ColumnLabels(locale.Arabic), locale.DateLayout(locale.Arabic))
	if err != nil {
		t.Fatalf("ExportCSV() error: %v", err)
	}
	if got := strings.TrimRight(string(data), "\n"); got != "التاريخ,العنوان,الفئة,المبلغ" {
		t.Errorf("empty export = %q, want header row only", got)
	}
}

func TestExportCSV_QuotesSpecialFields(t *testing.T) {
	txs := []core.Transaction{{
		Title:     `coffee, "large"`,
		Amount:    7,
		Category:  "Food",
		Type:      core.TypeExpense,
		CreatedAt: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
	}}
	data, err := ExportCSV(txs, locale.ColumnLabels(locale.English), locale.DateLayout(locale.English))
	if err != nil {
		t.Fatalf("ExportCSV() error: %v", err)
	}
	if !strings.Contains(string(data), `"coffee, ""large"""`) {
		t.Errorf("title not RFC 4180-quoted: %q", string(data))
	}
}

func TestExportCSV_LabelCount(t *testing.T) {
	if _, err := ExportCSV(nil, []string{"a", "b"}, "2006-01-02"); err == nil {
		t.Error("ExportCSV() = nil error, want label-count error")
	}
}

func TestFilename(t *testing.T) {
	now := time.Date(2024, time.February, 3, 9, 0, 0, 0, time.UTC)
	if got := Filename("csv", now); got != "mizan-transactions-2024-02-03.csv" {
		t.Errorf("Filename() = %q", got)
	}
}
