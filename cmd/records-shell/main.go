package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/student-records/api/swagger"
	"github.com/noah-isme/student-records/internal/gateway"
	"github.com/noah-isme/student-records/internal/handler"
	internalmiddleware "github.com/noah-isme/student-records/internal/middleware"
	"github.com/noah-isme/student-records/internal/repository"
	"github.com/noah-isme/student-records/internal/service"
	"github.com/noah-isme/student-records/internal/state"
	"github.com/noah-isme/student-records/pkg/cache"
	"github.com/noah-isme/student-records/pkg/config"
	"github.com/noah-isme/student-records/pkg/export"
	"github.com/noah-isme/student-records/pkg/logger"
	corsmiddleware "github.com/noah-isme/student-records/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/student-records/pkg/middleware/requestid"
	"github.com/noah-isme/student-records/pkg/storage"
)

// @title Student Records Shell API
// @version 1.0.0
// @description Operator shell over the remote student records backend
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

const (
	shutdownTimeout   = 5 * time.Second
	recentListLimit   = 5
	readHeaderTimeout = 10 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	checks := map[string]handler.ReadinessCheck{}

	var sessionRepo repository.SessionStore
	switch cfg.Session.Driver {
	case config.SessionDriverRedis:
		client, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Fatal("failed to connect redis", zap.Error(err))
		}
		redisRepo := repository.NewRedisSessionRepository(client, logr)
		defer redisRepo.Close() //nolint:errcheck
		sessionRepo = redisRepo
		checks["session_store"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
	default:
		sessionRepo = repository.NewFileSessionRepository(cfg.Session.File)
	}
	checks["backend"] = func(context.Context) error {
		if cfg.Backend.DataURL == "" || cfg.Backend.AuthURL == "" {
			return errors.New("backend endpoints not configured")
		}
		return nil
	}

	metrics := service.NewMetricsService()
	validate := service.NewValidator()

	client := gateway.NewClient(cfg.Backend, cfg.Settings, logr, metrics)
	store := state.NewStore(state.Initial(), logr)
	sessions := service.NewSessionService(sessionRepo, cfg.Session, logr)
	shell := service.NewShellService(client, store, sessions, cfg.Toast.TTL, validate, logr)

	hub := service.NewStateHub(store, metrics, logr)
	defer hub.Close()

	fileStore, err := storage.NewLocalStorage(cfg.Reports.StorageDir)
	if err != nil {
		logr.Fatal("failed to prepare export storage", zap.Error(err))
	}
	exports := service.NewExportService(fileStore, storage.NewSignedURLSigner(cfg.Reports.SignedURLSecret, cfg.Reports.SignedURLTTL), service.ExportConfig{
		APIPrefix:       cfg.APIPrefix,
		ResultTTL:       cfg.Reports.SignedURLTTL,
		CleanupInterval: cfg.Reports.CleanupInterval,
	}, logr)
	go exports.StartCleanup(ctx)

	lists := service.NewListingService(shell)
	profiles := service.NewProfileFormService(shell, validate, logr)
	enrollments := service.NewEnrollmentFormService(shell, client, validate, logr)
	details := service.NewDetailService(shell)
	dashboard := service.NewDashboardService(shell, service.DashboardServiceConfig{RecentLimit: recentListLimit}, logr)
	migration := service.NewMigrationService(client, shell, logr)
	reports := service.NewReportService(service.ReportServiceParams{
		Source:    shell,
		Finder:    shell,
		Lists:     lists,
		Exports:   exports,
		PDF:       export.NewPDFExporter(cfg.Reports.FontPath),
		Metrics:   metrics,
		Validator: validate,
		Logger:    logr,
	})

	restored, err := shell.Restore(ctx)
	if err != nil {
		logr.Warn("session restore failed", zap.Error(err))
	}
	logr.Info("operator session", zap.Bool("restored", restored))

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metrics))
	r.Use(internalmiddleware.WithResponseMeta())

	handler.RegisterProbes(r, handler.NewMetricsHandler(metrics, checks))
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handler.RegisterRoutes(r.Group(cfg.APIPrefix), handler.Handlers{
		Auth:       handler.NewAuthHandler(shell),
		Shell:      handler.NewShellHandler(shell),
		Stream:     handler.NewStreamHandler(hub, shell, cfg.CORS.AllowedOrigins, logr),
		Dashboard:  handler.NewDashboardHandler(dashboard),
		Profile:    handler.NewProfileHandler(lists, profiles, shell, details, reports),
		Enrollment: handler.NewEnrollmentHandler(lists, enrollments, shell),
		Report:     handler.NewReportHandler(lists, reports, exports),
		Migration:  handler.NewMigrationHandler(migration),
	}, internalmiddleware.Session(sessions), logr)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Warn("graceful shutdown failed", zap.Error(err))
	}
}
