package main

import (
	"context"
	"crypto/tls"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/primind-slot-scheduler/internal/config"
	"github.com/KasumiMercury/primind-slot-scheduler/internal/domain"
	"github.com/KasumiMercury/primind-slot-scheduler/internal/handler"
	"github.com/KasumiMercury/primind-slot-scheduler/internal/health"
	"github.com/KasumiMercury/primind-slot-scheduler/internal/infra/calendar"
	"github.com/KasumiMercury/primind-slot-scheduler/internal/infra/repository"
	"github.com/KasumiMercury/primind-slot-scheduler/internal/infra/syncrecorder"
	"github.com/KasumiMercury/primind-slot-scheduler/internal/observability/logging"
	"github.com/KasumiMercury/primind-slot-scheduler/internal/observability/metrics"
	"github.com/KasumiMercury/primind-slot-scheduler/internal/observability/middleware"
	"github.com/KasumiMercury/primind-slot-scheduler/internal/service/detect"
	"github.com/KasumiMercury/primind-slot-scheduler/internal/service/dispatch"
	"github.com/KasumiMercury/primind-slot-scheduler/internal/service/integration"
	"github.com/KasumiMercury/primind-slot-scheduler/internal/service/notify"
	"github.com/KasumiMercury/primind-slot-scheduler/internal/service/settings"
	"github.com/KasumiMercury/primind-slot-scheduler/internal/service/slots"
	"github.com/KasumiMercury/primind-slot-scheduler/internal/service/syncer"
)

const serviceModule = logging.Module("slot-scheduler")

// Version is set via ldflags at build time
var Version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		return 1
	}

	obs, err := initObservability(ctx, cfg.LogLevel)
	if err != nil {
		slog.Error("failed to initialize observability", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := obs.Shutdown(shutdownCtx); err != nil {
			slog.Warn("observability shutdown error", slog.String("error", err.Error()))
		}
	}()

	slog.SetDefault(obs.Logger())

	if err := config.ValidateForRun(cfg); err != nil {
		slog.Error("configuration validation error", slog.String("error", err.Error()))
		return 1
	}

	if err := cfg.TaskQueue.Validate(); err != nil {
		slog.Error("task queue configuration error", slog.String("error", err.Error()))
		return 1
	}

	httpMetrics, err := metrics.NewHTTPMetrics()
	if err != nil {
		slog.Error("failed to initialize HTTP metrics", slog.String("error", err.Error()))
		return 1
	}

	schedulerMetrics, err := metrics.NewSchedulerMetrics()
	if err != nil {
		slog.Error("failed to initialize scheduler metrics", slog.String("error", err.Error()))
		return 1
	}

	// Sync results go to InfluxDB locally and BigQuery under gcloud
	syncRecorder, err := syncrecorder.NewRecorder(ctx, syncrecorder.LoadConfig())
	if err != nil {
		slog.Error("failed to initialize sync result recorder", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		if err := syncRecorder.Close(); err != nil {
			slog.Warn("failed to close sync result recorder", slog.String("error", err.Error()))
		}
	}()

	taskQueue, cleanup, err := initTaskQueue(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize task queue", slog.String("error", err.Error()))
		return 1
	}
	if cleanup != nil {
		defer func() {
			if err := cleanup(); err != nil {
				slog.Error("task queue cleanup error", slog.String("error", err.Error()))
			}
		}()
	}

	redisOpts := &redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
	if cfg.Redis.TLS {
		redisOpts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	redisClient := redis.NewClient(redisOpts)

	if err := redisotel.InstrumentTracing(redisClient); err != nil {
		slog.Error("failed to instrument redis tracing",
			slog.String("event", "redis.otel.tracing.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}

	if err := redisotel.InstrumentMetrics(redisClient); err != nil {
		slog.Error("failed to instrument redis metrics",
			slog.String("event", "redis.otel.metrics.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}

	if err := redisClient.Ping(ctx).Err(); err != nil {
		slog.Error("failed to connect redis",
			slog.String("event", "redis.connect.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}

	defer func() {
		if err := redisClient.Close(); err != nil {
			slog.Warn("failed to close redis client", slog.String("error", err.Error()))
		}
	}()

	slog.Info("redis connected",
		slog.String("addr", cfg.Redis.Addr),
	)

	healthChecker := health.NewChecker(redisClient, Version)

	actionCatalogue, closeCatalogue, err := initCatalogue(ctx, cfg.Catalogue, healthChecker)
	if err != nil {
		slog.Error("failed to initialize action catalogue", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		if err := closeCatalogue(); err != nil {
			slog.Warn("failed to close action catalogue", slog.String("error", err.Error()))
		}
	}()

	slotRepo := repository.NewSlotRepository(redisClient)
	notificationRepo := repository.NewNotificationRepository(redisClient)
	settingsRepo := repository.NewSettingsRepository(redisClient)
	integrationRepo := repository.NewIntegrationRepository(redisClient)

	eventSource := calendar.NewRouter(map[domain.CalendarProvider]calendar.Provider{
		domain.ProviderGoogleCalendar: calendar.NewGoogleProvider(calendar.GoogleConfig{
			MaxResults: int64(cfg.Sync.CalendarMaxResults),
		}),
		domain.ProviderICS: calendar.NewICSProvider(cfg.Sync.Timeout()),
	})

	detector := detect.NewDetector()
	settingsService := settings.NewService(settingsRepo)
	notifyService := notify.NewService(notificationRepo, slotRepo, schedulerMetrics, cfg.Notification.PendingLimit)
	slotsService := slots.NewService(slotRepo, actionCatalogue, settingsService)
	integrationService := integration.NewService(integrationRepo, slotRepo)
	syncService := syncer.NewService(
		integrationRepo,
		slotRepo,
		eventSource,
		actionCatalogue,
		settingsService,
		detector,
		notifyService,
		syncRecorder,
		schedulerMetrics,
		syncer.Config{
			Horizon:      cfg.Sync.Horizon(),
			FetchTimeout: cfg.Sync.Timeout(),
		},
	)

	var dispatchService *dispatch.Service
	if taskQueue != nil {
		dispatchService = dispatch.NewService(notificationRepo, notifyService, taskQueue, schedulerMetrics, cfg.Notification.DispatchBatchLimit)
	}

	if dispatchService != nil && cfg.Notification.DispatchCron != "" {
		pump, err := dispatch.NewPump(dispatchService, cfg.Notification.DispatchCron, 0)
		if err != nil {
			slog.Error("failed to schedule notification dispatch", slog.String("error", err.Error()))
			return 1
		}
		pump.Start()
		defer func() {
			stopCtx, stopCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer stopCancel()
			if err := pump.Stop(stopCtx); err != nil {
				slog.Warn("dispatch pump did not stop cleanly", slog.String("error", err.Error()))
			}
		}()
		slog.Info("notification dispatch scheduled",
			slog.String("schedule", cfg.Notification.DispatchCron),
		)
	} else if cfg.Notification.DispatchCron != "" {
		slog.Warn("DISPATCH_CRON set but no task queue configured, dispatch pump disabled")
	}

	r := gin.New()
	r.Use(middleware.Gin(middleware.GinConfig{
		SkipPaths:   []string{"/health", "/health/live", "/health/ready"},
		Module:      serviceModule,
		TracerName:  "github.com/KasumiMercury/primind-slot-scheduler/internal/observability/middleware",
		HTTPMetrics: httpMetrics,
	}))
	r.Use(middleware.PanicRecoveryGin(httpMetrics))

	r.GET("/health/live", healthChecker.LiveHandler())
	r.GET("/health/ready", healthChecker.ReadyHandler())
	r.GET("/health", healthChecker.ReadyHandler())

	handler.RegisterRoutes(r.Group("/api/v1"),
		handler.NewSlotHandler(slotsService, settingsService, detector, actionCatalogue),
		handler.NewIntegrationHandler(integrationService, syncService),
		handler.NewNotificationHandler(notifyService, dispatchService),
	)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Port),
			slog.Int("sync_horizon_hours", cfg.Sync.HorizonHours),
			slog.Int("pending_notification_limit", cfg.Notification.PendingLimit),
			slog.Bool("dispatch_enabled", dispatchService != nil),
		)
		serverErr <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shutdown server", slog.String("error", err.Error()))
			return 1
		}

		if err := syncRecorder.Flush(shutdownCtx); err != nil {
			slog.Warn("failed to flush sync results", slog.String("error", err.Error()))
		}

		slog.Info("server exited properly")
		return 0

	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return 0
		}
		slog.Error("server exited with error", slog.String("error", err.Error()))
		return 1
	}
}
