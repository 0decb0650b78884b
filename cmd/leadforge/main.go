package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/leadforge/leadforge/internal/app"
	"github.com/leadforge/leadforge/internal/auth"
	"github.com/leadforge/leadforge/internal/calendar"
	"github.com/leadforge/leadforge/internal/company"
	"github.com/leadforge/leadforge/internal/forms"
	"github.com/leadforge/leadforge/internal/observability"
	"github.com/leadforge/leadforge/internal/platform/blob"
	"github.com/leadforge/leadforge/internal/platform/cache"
	"github.com/leadforge/leadforge/internal/platform/db"
	"github.com/leadforge/leadforge/internal/shared"
	"github.com/leadforge/leadforge/internal/submissions"
	"github.com/leadforge/leadforge/jobs"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	asynqClient := asynq.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := asynqClient.Close(); err != nil {
			logger.Warn("asynq close", slog.Any("error", err))
		}
	}()

	var blobs blob.Store
	switch cfg.BlobDriver {
	case "s3":
		blobs, err = blob.NewS3Store(ctx, cfg.S3Bucket, cfg.S3Region)
		if err != nil {
			logger.Error("init s3 blob store", slog.Any("error", err))
			os.Exit(1)
		}
	default:
		blobs = blob.NewLocalStore(cfg.BlobLocalDir)
	}

	clock := shared.NewDisplayClock(cfg.DisplayTimezone)
	auditLogger := shared.NewAuditLogger(dbpool)
	metrics := observability.NewMetrics()
	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL)

	companyRepo := company.NewRepository(dbpool)
	authRepo := auth.NewRepository(dbpool)
	companyService := company.NewService(companyRepo, authRepo, auditLogger, logger)
	companyHandler := company.NewHandler(logger, companyService, clock)

	otpStore := auth.NewOTPStore(redisClient, cfg.OTPTTL)
	authService := auth.NewService(authRepo, otpStore, tokens, asynqClient, companyService, logger)
	authHandler := auth.NewHandler(logger, authService, clock)

	formsRepo := forms.NewRepository(dbpool)
	formsService := forms.NewService(formsRepo, auditLogger, logger)
	formsHandler := forms.NewHandler(logger, formsService, clock)

	submissionsRepo := submissions.NewRepository(dbpool)
	submissionsService := submissions.NewService(submissionsRepo, formsRepo, blobs, auditLogger, metrics, logger)
	submissionsHandler := submissions.NewHandler(logger, submissionsService, clock, cfg.MaxUploadBytes)

	calendarRepo := calendar.NewRepository(dbpool)
	calendarService := calendar.NewService(calendarRepo, authRepo, auditLogger, clock, logger)
	calendarHandler := calendar.NewHandler(logger, calendarService, clock)

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobHandler := jobs.NewHandler(inspector, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:             logger,
		Config:             cfg,
		Tokens:             tokens,
		AuthHandler:        authHandler,
		FormsHandler:       formsHandler,
		SubmissionsHandler: submissionsHandler,
		CompanyHandler:     companyHandler,
		CalendarHandler:    calendarHandler,
		JobHandler:         jobHandler,
		Metrics:            metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
