package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/DukeRupert/carecrm/internal"
	"github.com/DukeRupert/carecrm/internal/handler"
	"github.com/DukeRupert/carecrm/internal/jobs"
	"github.com/DukeRupert/carecrm/internal/metrics"
	"github.com/DukeRupert/carecrm/internal/middleware"
	"github.com/DukeRupert/carecrm/internal/report"
	"github.com/DukeRupert/carecrm/internal/repository"
	"github.com/DukeRupert/carecrm/internal/selection"
	"github.com/DukeRupert/carecrm/internal/service"
	"github.com/DukeRupert/carecrm/internal/storage"
	"github.com/DukeRupert/carecrm/internal/worker"
	_ "github.com/jackc/pgx/v5/stdlib"
)

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// Initialize database connection
	db, err := sql.Open("pgx", cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	if cfg.AutoMigrate {
		if err := internal.RunMigrations(ctx, db, logger); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	logger.Info("Database ready")

	repo := repository.New(db)

	photoStore, err := newStorage(cfg, logger)
	if err != nil {
		return fmt.Errorf("storage initialization failed: %w", err)
	}

	// Workspace selections
	store, err := selection.NewStore(selection.StoreConfig{
		IdleTTL:       cfg.WorkspaceIdleTTL,
		SweepInterval: cfg.WorkspaceSweepInterval,
		MaxWorkspaces: cfg.WorkspaceMax,
		OnMismatch:    metrics.SelectionMismatch,
	}, logger)
	if err != nil {
		return fmt.Errorf("workspace store initialization failed: %w", err)
	}
	defer store.Close()

	// Initialize services
	rosterService := service.NewRosterService(repo, logger)
	reportService := service.NewMedicationReportService(repo, logger)
	photoService := service.NewPhotoService(repo, photoStore, logger)

	// Background thumbnail warm-up
	workerCfg := worker.DefaultConfig()
	workerCfg.Concurrency = cfg.WorkerConcurrency
	workerCfg.QueueSize = cfg.WorkerQueueSize
	bg, err := worker.New(workerCfg, logger.With("component", "worker"))
	if err != nil {
		return fmt.Errorf("worker initialization failed: %w", err)
	}
	bg.Register(jobs.NewWarmThumbnailHandler(photoService, logger))
	bg.Start(ctx)
	defer bg.Stop()

	// Initialize middleware
	isSecure := cfg.IsSecure()
	securityMw := middleware.NewSecurityHeadersMiddleware(isSecure)
	loggingMw := middleware.NewRequestLoggingMiddleware(logger)
	csrfMw := middleware.NewCSRFMiddleware(logger, isSecure)
	workspaceMw := middleware.NewWorkspaceMiddleware(store, logger, isSecure)
	metricsAuthMw := middleware.NewMetricsAuthMiddleware(cfg.MetricsUsername, cfg.MetricsPassword)

	limiter := middleware.NewRateLimiter(cfg.SelectionRateLimit, cfg.SelectionRateWindow)
	defer limiter.Stop()
	rateLimitMw := middleware.NewRateLimitMiddleware(limiter, logger)

	// Initialize handlers
	selectionHandler := handler.NewSelectionHandler(rosterService, logger)
	rosterHandler := handler.NewRosterHandler(rosterService, bg, logger, isSecure)
	reportHandler := handler.NewReportHandler(reportService, photoService, report.NewPDFGenerator(), handler.SidebarConfig{
		Headline: cfg.SidebarHeadline,
		Body:     cfg.SidebarBody,
		LinkURL:  cfg.SidebarLinkURL,
	}, logger)
	photoHandler := handler.NewPhotoHandler(photoService, logger)

	// ==========================================================================
	// Create router and register routes
	// ==========================================================================

	mux := http.NewServeMux()

	// Static files
	staticFS := http.FileServer(http.Dir("web/static"))
	mux.Handle("GET /static/", http.StripPrefix("/static/", staticFS))

	// Health check
	mux.Handle("GET /health", metrics.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			logger.Warn("Health check failed", "error", err)
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})))

	if !metricsAuthMw.Enabled() {
		logger.Warn("Metrics endpoint is unprotected; set METRICS_USERNAME and METRICS_PASSWORD")
	}
	mux.Handle("GET /metrics", metricsAuthMw.Handler(promhttp.Handler()))

	// Workspace routes
	app := http.NewServeMux()

	app.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, handler.ReportPath, http.StatusSeeOther)
	})
	app.HandleFunc("POST /workspace/end", func(w http.ResponseWriter, r *http.Request) {
		workspaceMw.EndWorkspace(w, r)
		http.Redirect(w, r, handler.ReportPath, http.StatusSeeOther)
	})

	selectionHandler.RegisterRoutes(app, rateLimitMw.Limit)
	rosterHandler.RegisterRoutes(app, rateLimitMw.Limit)
	reportHandler.RegisterRoutes(app)
	photoHandler.RegisterRoutes(app)

	// metrics.Middleware sits innermost so it sees the pattern app matched.
	withWorkspace := middleware.Stack(csrfMw.Protect, workspaceMw.WithWorkspace, metrics.Middleware)
	mux.Handle("/", withWorkspace(app))

	// ==========================================================================
	// Start server
	// ==========================================================================

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           middleware.Stack(securityMw.Handler, loggingMw.Handler)(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Server started", "address", server.Addr, "env", cfg.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}
	logger.Info("Shutdown signal received, initiating graceful shutdown...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Graceful shutdown complete")
	return nil
}

// newStorage builds the photo store for the configured provider.
func newStorage(cfg *internal.Config, logger *slog.Logger) (storage.Storage, error) {
	switch cfg.StorageProvider {
	case "s3":
		return storage.NewS3Storage(storage.S3Config{
			Endpoint:        cfg.S3Endpoint,
			Region:          cfg.S3Region,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			BucketName:      cfg.S3BucketName,
		}, logger)
	default:
		return storage.NewLocalStorage(storage.LocalConfig{BasePath: cfg.LocalStoragePath}, logger)
	}
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
