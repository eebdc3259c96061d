// Package http exposes the JSON API and the embedded frontend shell.
package http

import (
	"context"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"

	"mizan/internal/auth"
	"mizan/internal/insight"
	applog "mizan/internal/log"
	"mizan/internal/report"
	"mizan/internal/services"
	"mizan/internal/sheets"
	"mizan/internal/store"
	appweb "mizan/web"
)

// Options carries the server's collaborators and policy knobs.
type Options struct {
	Addr           string
	Store          store.Store
	Users          *services.UserService
	Tokens         *auth.TokenService
	Analyzer       insight.Analyzer
	ReportSink     sheets.ReportSink // nil disables the sheets export
	AllowedOrigins []string
	TrustedProxies []string
	PDFOptions     report.PDFOptions
	Logger         *applog.Logger // defaults to a text logger on stdout
}

type Server struct {
	http.Server

	store          store.Store
	users          *services.UserService
	tokens         *auth.TokenService
	analyzer       insight.Analyzer
	reportSink     sheets.ReportSink
	allowedOrigins []string
	trustedProxies []*net.IPNet
	pdfOptions     report.PDFOptions

	logger       *applog.StructuredLogger
	loginLimiter *loginLimiter
	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run
// http.Server.
func NewServer(opts Options) *Server {
	mux := http.NewServeMux()

	logger := opts.Logger
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}

	s := &Server{
		store:          opts.Store,
		users:          opts.Users,
		tokens:         opts.Tokens,
		analyzer:       opts.Analyzer,
		reportSink:     opts.ReportSink,
		allowedOrigins: opts.AllowedOrigins,
		trustedProxies: buildTrustedProxies(opts.TrustedProxies),
		pdfOptions:     opts.PDFOptions,
		logger:         applog.NewStructuredLogger(logger.WithComponent(applog.ComponentHTTP)),
		loginLimiter:   newLoginLimiter(),
	}
	s.Server = http.Server{
		Addr:    opts.Addr,
		Handler: applog.Middleware(logger)(s.withObservability(mux)),
	}

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	// Account lifecycle
	mux.HandleFunc("POST /api/register", s.handleRegister)
	mux.HandleFunc("GET /api/verify-email/{token}", s.handleVerifyEmail)
	mux.HandleFunc("POST /api/login", s.handleLogin)
	mux.HandleFunc("POST /api/forgot-password", s.handleForgotPassword)
	mux.HandleFunc("POST /api/reset-password", s.handleResetPassword)
	mux.HandleFunc("POST /api/change-password", s.requireUser(s.handleChangePassword))

	// Ledger
	mux.HandleFunc("GET /api/transactions", s.requireUser(s.handleListTransactions))
	mux.HandleFunc("POST /api/transactions", s.requireUser(s.handleCreateTransaction))
	mux.HandleFunc("DELETE /api/transactions/{id}", s.requireUser(s.handleDeleteTransaction))
	mux.HandleFunc("GET /api/categories", s.requireUser(s.handleListCategories))
	mux.HandleFunc("POST /api/categories", s.requireUser(s.handleCreateCategory))
	mux.HandleFunc("DELETE /api/categories/{id}", s.requireUser(s.handleDeleteCategory))
	mux.HandleFunc("GET /api/categories/options", s.requireUser(s.handleCategoryOptions))

	// Derived views and artifacts
	mux.HandleFunc("GET /api/stats", s.requireUser(s.handleStats))
	mux.HandleFunc("POST /api/analyze", s.requireUser(s.handleAnalyze))
	mux.HandleFunc("GET /api/export/csv", s.requireUser(s.handleExportCSV))
	mux.HandleFunc("GET /api/export/pdf", s.requireUser(s.handleExportPDF))
	mux.HandleFunc("POST /api/export/sheets", s.requireUser(s.handleExportSheets))

	// Embedded frontend with index fallback for client-side routing
	mux.Handle("/", spaHandler())

	return s
}

// spaHandler serves the embedded frontend, falling back to index.html for
// paths the client router owns.
func spaHandler() http.Handler {
	dist, err := fs.Sub(appweb.DistFS, "dist")
	if err != nil {
		slog.Warn("Failed to mount embedded frontend", "error", err)
		return http.NotFoundHandler()
	}
	fileServer := http.FileServer(http.FS(dist))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") {
			respondDetail(w, http.StatusNotFound, "Not found")
			return
		}

		path := strings.TrimPrefix(r.URL.Path, "/")
		if path != "" {
			if _, err := fs.Stat(dist, path); err == nil {
				w.Header().Set("Cache-Control", "public, max-age=3600")
				fileServer.ServeHTTP(w, r)
				return
			}
		}

		index, err := fs.ReadFile(dist, "index.html")
		if err != nil {
			http.Error(w, "frontend not available", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(index)
	})
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// Shutdown gracefully shuts down the server and cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		if s.loginLimiter != nil {
			s.loginLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}
