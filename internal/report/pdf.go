package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"mizan/internal/core"
)

// MIMEPDF is the content type of the paginated-document artifact.
const MIMEPDF = "application/pdf"

// PDFOptions configures the paginated-document exporter.
type PDFOptions struct {
	// Currency is appended to every amount cell.
	Currency string
	// FontPath optionally points at a UTF-8 TTF file. The built-in core
	// fonts cover Latin-1 only, so Arabic labels need an embedded font.
	FontPath string
	// GeneratedAt stamps the title block; the zero value means time.Now().
	GeneratedAt time.Time
}

var pdfColWidths = [Columns]float64{32, 72, 46, 40}

// ExportPDF renders the transaction list as a paginated A4 document: a fixed
// title block (application name plus generation timestamp) followed by a
// 4-column table in input order, auto-paginating when content exceeds one
// page. Any list, including the empty one, produces a valid document.
func ExportPDF(txs []core.Transaction, labels []string, dateLayout string, opts PDFOptions) ([]byte, error) {
	if len(labels) != Columns {
		return nil, fmt.Errorf("expected %d column labels, got %d", Columns, len(labels))
	}
	generated := opts.GeneratedAt
	if generated.IsZero() {
		generated = time.Now()
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	font := "Helvetica"
	if opts.FontPath != "" {
		pdf.AddUTF8Font("report", "", opts.FontPath)
		pdf.AddUTF8Font("report", "B", opts.FontPath)
		font = "report"
	}
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	// Title block.
	pdf.SetFont(font, "B", 16)
	pdf.CellFormat(0, 10, AppName, "", 1, "L", false, 0, "")
	pdf.SetFont(font, "", 9)
	pdf.CellFormat(0, 6, "Generated "+generated.Format("2006-01-02 15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	// Header row.
	pdf.SetFont(font, "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for i, label := range labels {
		pdf.CellFormat(pdfColWidths[i], 8, label, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	// Data rows, input order preserved.
	pdf.SetFont(font, "", 10)
	for _, tx := range txs {
		cells := [Columns]string{
			tx.CreatedAt.Format(dateLayout),
			tx.Title,
			tx.Category,
			formatAmount(tx.Amount) + " " + opts.Currency,
		}
		for i, cell := range cells {
			align := "L"
			if i == Columns-1 {
				align = "R"
			}
			pdf.CellFormat(pdfColWidths[i], 7, cell, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
