package http

import (
	"log/slog"
	"net/http"
	"time"

	"mizan/internal/core"
	"mizan/internal/locale"
	"mizan/internal/report"
)

// statsResponse aggregates the derived views the dashboard renders.
type statsResponse struct {
	Totals     core.Totals           `json:"totals"`
	ByCategory []core.CategoryAmount `json:"by_category"`
	Monthly    []monthPoint          `json:"monthly"`
}

type monthPoint struct {
	Label   string  `json:"label"`
	Year    int     `json:"year"`
	Month   int     `json:"month"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	user, _ := userFrom(r.Context())
	lang := requestLang(r)

	txs, err := s.store.ListTransactions(r.Context(), user.ID)
	if err != nil {
		slog.ErrorContext(r.Context(), "List transactions failed", "error", err, "user_id", user.ID)
		respondDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	series := core.ComputeMonthlySeries(txs, time.Now())
	monthly := make([]monthPoint, 0, len(series))
	for _, b := range series {
		monthly = append(monthly, monthPoint{
			Label:   locale.MonthName(b.Month, lang),
			Year:    b.Year,
			Month:   int(b.Month),
			Income:  b.Income,
			Expense: b.Expense,
		})
	}

	resp := statsResponse{
		Totals:     core.ComputeTotals(txs),
		ByCategory: core.ComputeCategoryBreakdown(txs),
		Monthly:    monthly,
	}
	if resp.ByCategory == nil {
		resp.ByCategory = []core.CategoryAmount{}
	}
	respondJSON(w, http.StatusOK, resp)
}

// handleCategoryOptions returns the selectable category labels for a
// transaction type: built-ins for the requested language followed by the
// user's own, plus the default pick.
func (s *Server) handleCategoryOptions(w http.ResponseWriter, r *http.Request) {
	user, _ := userFrom(r.Context())
	lang := requestLang(r)

	t := core.TransactionType(r.URL.Query().Get("type"))
	if !t.Valid() {
		t = core.TypeExpense
	}

	userCats, err := s.store.ListCategories(r.Context(), user.ID)
	if err != nil {
		slog.ErrorContext(r.Context(), "List categories failed", "error", err, "user_id", user.ID)
		respondDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	builtins := locale.Builtins(t, lang)
	respondJSON(w, http.StatusOK, struct {
		Options []string `json:"options"`
		Default string   `json:"default"`
	}{
		Options: core.CategoryOptions(builtins, userCats, t),
		Default: core.DefaultCategory(builtins, userCats, t),
	})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	lang := requestLang(r)

	// The client submits the transaction set it is displaying, matching the
	// original contract.
	var txs []core.Transaction
	if err := decodeJSON(r, &txs); err != nil {
		respondDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	analysis := s.analyzer.Analyze(r.Context(), txs, lang)
	respondJSON(w, http.StatusOK, analysis)
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	user, _ := userFrom(r.Context())
	lang := requestLang(r)

	txs, err := s.store.ListTransactions(r.Context(), user.ID)
	if err != nil {
		slog.ErrorContext(r.Context(), "List transactions failed", "error", err, "user_id", user.ID)
		respondDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	data, err := report.ExportCSV(txs, locale.ColumnLabels(lang), locale.DateLayout(lang))
	if err != nil {
		slog.ErrorContext(r.Context(), "CSV export failed", "error", err, "user_id", user.ID)
		respondDetail(w, http.StatusInternalServerError, "Export failed")
		return
	}

	w.Header().Set("Content-Type", report.MIMECSV)
	w.Header().Set("Content-Disposition", `attachment; filename="`+report.Filename("csv", time.Now())+`"`)
	_, _ = w.Write(data)
}

func (s *Server) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	user, _ := userFrom(r.Context())
	lang := requestLang(r)

	txs, err := s.store.ListTransactions(r.Context(), user.ID)
	if err != nil {
		slog.ErrorContext(r.Context(), "List transactions failed", "error", err, "user_id", user.ID)
		respondDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	opts := s.pdfOptions
	opts.GeneratedAt = time.Now()
	data, err := report.ExportPDF(txs, locale.ColumnLabels(lang), locale.DateLayout(lang), opts)
	if err != nil {
		slog.ErrorContext(r.Context(), "PDF export failed", "error", err, "user_id", user.ID)
		respondDetail(w, http.StatusInternalServerError, "Export failed")
		return
	}

	w.Header().Set("Content-Type", report.MIMEPDF)
	w.Header().Set("Content-Disposition", `attachment; filename="`+report.Filename("pdf", time.Now())+`"`)
	_, _ = w.Write(data)
}

func (s *Server) handleExportSheets(w http.ResponseWriter, r *http.Request) {
	if s.reportSink == nil {
		respondDetail(w, http.StatusNotImplemented, "Spreadsheet export is not configured")
		return
	}

	user, _ := userFrom(r.Context())
	lang := requestLang(r)

	txs, err := s.store.ListTransactions(r.Context(), user.ID)
	if err != nil {
		slog.ErrorContext(r.Context(), "List transactions failed", "error", err, "user_id", user.ID)
		respondDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if err := s.reportSink.AppendReport(r.Context(), txs, locale.ColumnLabels(lang), locale.DateLayout(lang)); err != nil {
		slog.ErrorContext(r.Context(), "Sheets export failed", "error", err, "user_id", user.ID)
		respondDetail(w, http.StatusBadGateway, "Spreadsheet export failed")
		return
	}
	respondDetail(w, http.StatusOK, "Exported to spreadsheet")
}
