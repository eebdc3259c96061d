package report

import (
	"bytes"
	"testing"
	"time"

	"mizan/internal/locale"
)

func TestExportPDF(t *testing.T) {
	opts := PDFOptions{
		Currency:    locale.CurrencyCode,
		GeneratedAt: time.Date(2024, time.May, 1, 8, 0, 0, 0, time.UTC),
	}

	data, err := ExportPDF(sampleTxs(), locale.ColumnLabels(locale.English), locale.DateLayout(locale.English), opts)
	if err != nil {
		t.Fatalf("ExportPDF() error: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("output does not start with %%PDF header")
	}
	if len(data) < 500 {
		t.Errorf("suspiciously small document: %d bytes", len(data))
	}
}

func TestExportPDF_EmptyList(t *testing.T) {
	data, err := ExportPDF(nil, locale.ColumnLabels(locale.English), locale.DateLayout(locale.English), PDFOptions{Currency: "SAR"})
	if err != nil {
		t.Fatalf("ExportPDF() error on empty list: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("empty-list document is not a valid PDF")
	}
}

func TestExportPDF_LabelCount(t *testing.T) {
	if _, err := ExportPDF(nil, []string{"only one"}, "2006-01-02", PDFOptions{}); err == nil {
		t.Error("ExportPDF() = nil error, want label-count error")
	}
}
