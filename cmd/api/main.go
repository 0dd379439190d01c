package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "talentplay/docs" // swagger spec registration
	"talentplay/internal/auth"
	"talentplay/internal/config"
	"talentplay/internal/database"
	"talentplay/internal/handlers"
	"talentplay/internal/live"
	"talentplay/internal/logger"
	"talentplay/internal/middleware"
	"talentplay/internal/repository"
	"talentplay/internal/scheduler"
	"talentplay/internal/service"
)

// @title TalentPlay Results API
// @version 1.0
// @description Evaluation result tracking and report generation for the TalentPlay assessment platform

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger.Setup(logger.Config{Level: cfg.Log.Level})

	slog.Info("Starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"env", cfg.App.Env,
		"log_level", cfg.Log.Level,
	)

	db, err := database.New(&cfg.Database)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()

	slog.Info("Database connection established")

	migrator := database.NewMigrationExecutor(db.DB)
	if err := migrator.RunMigrations("./migrations"); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database migrations completed")

	// unipdf refuses to write documents without a registered license, so
	// the report pipeline is dead on arrival if this is skipped.
	if cfg.PDF.LicenseKey == "" {
		slog.Warn("UNIDOC_LICENSE_API_KEY is not set, report generation will fail")
	} else if err := service.SetupPDFLicense(cfg.PDF.LicenseKey); err != nil {
		slog.Error("Failed to initialize PDF license", "error", err)
		os.Exit(1)
	}

	// Repositories and services
	resultRepo := repository.NewResultRepository(db.DB)
	hub := live.NewHub()
	resultService := service.NewResultService(resultRepo, hub)
	reportService := service.NewReportService(resultRepo)
	authService := auth.NewService(&cfg.JWT)

	// Scheduler: background reconciliation backs up the on-read self-heal
	schedulerService := scheduler.NewScheduler(resultService, resultRepo, &cfg.Scheduler)
	schedulerService.Start()
	defer schedulerService.Stop()

	// Middleware
	authMw := middleware.NewAuthMiddleware(authService)
	corsMw := middleware.NewCORSMiddleware(&cfg.CORS)
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, &cfg.Admin)
	resultHandler := handlers.NewResultHandler(resultService)
	reportHandler := handlers.NewReportHandler(reportService)
	healthHandler := handlers.NewHealthHandler(db)

	// Router
	mux := http.NewServeMux()

	protected := func(route string, handler http.HandlerFunc) http.Handler {
		return middleware.MetricsMiddleware(route, authMw.Authenticate(handler))
	}

	// Public routes
	mux.Handle("POST /api/login", middleware.MetricsMiddleware("login", http.HandlerFunc(authHandler.Login)))
	mux.HandleFunc("GET /healthz", healthHandler.Health)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	// Live channel. The upgrade request cannot carry an Authorization
	// header from a browser, and the frames carry no record data; clients
	// fetch the authoritative list through the authenticated API.
	mux.Handle("GET /api/live", hub.Handler())

	// Protected routes
	mux.Handle("GET /api/user-results", protected("user_results", resultHandler.GetUserResults))
	mux.Handle("POST /api/create-result", protected("create_result", resultHandler.CreateResult))
	mux.Handle("POST /api/update-result-status", protected("update_result_status", resultHandler.UpdateResultStatus))
	mux.Handle("DELETE /api/delete-result", protected("delete_result", resultHandler.DeleteResult))
	mux.Handle("GET /api/preview-pdf", protected("preview_pdf", reportHandler.PreviewPDF))
	mux.Handle("POST /api/evaluation/generatePDF", protected("generate_pdf", reportHandler.GeneratePDF))

	handler := corsMw.Handler(middleware.LoggingMiddleware(rateLimiter.Limit(mux)))

	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.TimeoutRead,
		WriteTimeout: cfg.Server.TimeoutWrite,
		IdleTimeout:  cfg.Server.TimeoutIdle,
	}

	go func() {
		slog.Info("Server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Live channel connections are hijacked and invisible to
	// server.Shutdown; close them explicitly.
	hub.Shutdown()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Forced shutdown", "error", err)
	}

	slog.Info("Server stopped")
}
