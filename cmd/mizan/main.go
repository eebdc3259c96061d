package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	appamqp "mizan/internal/amqp"
	"mizan/internal/auth"
	"mizan/internal/config"
	apphttp "mizan/internal/http"
	"mizan/internal/insight"
	applog "mizan/internal/log"
	"mizan/internal/mail"
	"mizan/internal/report"
	"mizan/internal/services"
	"mizan/internal/sheets"
	"mizan/internal/storage"
	"mizan/internal/store"
	mem "mizan/internal/store/memory"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	// Setup structured logging
	logger := applog.New(applog.DefaultConfig())
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	// Choose data backend
	var dataStore store.Store
	switch cfg.DataBackend {
	case "sqlite":
		repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
		if err != nil {
			logger.Error("Failed to initialize SQLite repository", "error", err, "path", cfg.SQLiteDBPath)
			os.Exit(1)
		}
		defer repo.Close()
		dataStore = repo
		logger.Info("Initialized SQLite backend", "path", cfg.SQLiteDBPath)
	default:
		dataStore = mem.New()
		logger.Info("Initialized memory backend")
	}

	// Choose mail backend
	var mailer mail.Mailer
	switch cfg.MailBackend {
	case "smtp":
		mailer = &mail.SMTPMailer{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			From:     cfg.SMTPFrom,
			Password: cfg.SMTPPassword,
		}
		logger.Info("Initialized SMTP mailer", "host", cfg.SMTPHost)
	case "amqp":
		client, err := appamqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", "error", err)
			os.Exit(1)
		}
		defer client.Close()
		mailer = client
		logger.Info("Initialized queued mailer", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	default:
		mailer = mail.LogMailer{}
		logger.Info("Initialized log mailer")
	}

	// Optional Google Sheets report sink
	var reportSink sheets.ReportSink
	if os.Getenv("GOOGLE_SPREADSHEET_ID") != "" {
		sink, err := sheets.NewFromEnv(context.Background())
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", "error", err)
			os.Exit(1)
		}
		reportSink = sink
		logger.Info("Spreadsheet export enabled")
	}

	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	users := services.NewUserService(dataStore, tokens, mailer, cfg.FrontendBaseURL)
	analyzer := insight.NewClient(cfg.InsightAPIURL, cfg.InsightAPIKey, cfg.InsightModel)

	srv := apphttp.NewServer(apphttp.Options{
		Addr:           ":" + cfg.Port,
		Store:          dataStore,
		Users:          users,
		Tokens:         tokens,
		Analyzer:       analyzer,
		ReportSink:     reportSink,
		AllowedOrigins: cfg.AllowedOrigins,
		TrustedProxies: cfg.TrustedProxies,
		PDFOptions: report.PDFOptions{
			Currency: "SAR",
			FontPath: cfg.PDFFontPath,
		},
		Logger: logger,
	})

	// Configure server timeouts and limits
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 30 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	// Graceful shutdown handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		cancel()
	}()

	logger.Info("Starting mizan server", "port", cfg.Port, "backend", cfg.DataBackend)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
