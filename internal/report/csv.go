package report

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"mizan/internal/core"
)

// MIMECSV is the content type of the delimited-text artifact.
const MIMECSV = "text/csv; charset=utf-8"

// ExportCSV renders a header row from labels followed by one row per
// transaction in the order given. Dates use dateLayout; amounts are the raw
// numeric value. Fields containing delimiters, quotes or line breaks are
// RFC 4180-quoted.
func ExportCSV(txs []core.Transaction, labels []string, dateLayout string) ([]byte, error) {
	if len(labels) != Columns {
		return nil, fmt.Errorf("expected %d column labels, got %d", Columns, len(labels))
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(labels); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	for _, tx := range txs {
		row := []string{
			tx.CreatedAt.Format(dateLayout),
			tx.Title,
			tx.Category,
			formatAmount(tx.Amount),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
