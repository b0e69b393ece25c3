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

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/primind-habit-reminder/internal/config"
	"github.com/KasumiMercury/primind-habit-reminder/internal/handler"
	"github.com/KasumiMercury/primind-habit-reminder/internal/health"
	"github.com/KasumiMercury/primind-habit-reminder/internal/infra/reminderrecorder"
	"github.com/KasumiMercury/primind-habit-reminder/internal/infra/repository"
	"github.com/KasumiMercury/primind-habit-reminder/internal/observability/logging"
	"github.com/KasumiMercury/primind-habit-reminder/internal/observability/metrics"
	"github.com/KasumiMercury/primind-habit-reminder/internal/observability/middleware"
	"github.com/KasumiMercury/primind-habit-reminder/internal/service/interval"
	"github.com/KasumiMercury/primind-habit-reminder/internal/service/reminder"
	"github.com/KasumiMercury/primind-habit-reminder/internal/service/tracker"
)

// Version is set via ldflags at build time
var Version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	obs, err := initObservability(ctx)
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

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		return 1
	}

	if err := config.ValidateForRun(cfg); err != nil {
		slog.Error("configuration validation error", slog.String("error", err.Error()))
		return 1
	}

	httpMetrics, err := metrics.NewHTTPMetrics()
	if err != nil {
		slog.Error("failed to initialize HTTP metrics", slog.String("error", err.Error()))
		return 1
	}

	reminderMetrics, err := metrics.NewReminderMetrics()
	if err != nil {
		slog.Error("failed to initialize reminder metrics", slog.String("error", err.Error()))
		return 1
	}

	// InfluxDB for local, BigQuery for gcloud
	eventRecorder, err := reminderrecorder.NewRecorder(ctx, reminderrecorder.LoadConfig())
	if err != nil {
		slog.Error("failed to initialize reminder event recorder", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		if err := eventRecorder.Close(); err != nil {
			slog.Warn("failed to close reminder event recorder", slog.String("error", err.Error()))
		}
	}()

	notifier, cleanup, err := initNotifier(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize notifier", slog.String("error", err.Error()))
		return 1
	}
	if cleanup != nil {
		defer func() {
			if err := cleanup(); err != nil {
				slog.Error("notifier cleanup error", slog.String("error", err.Error()))
			}
		}()
	}

	redisClient := redis.NewClient(cfg.Redis.Options())

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

	trackerService := tracker.NewService(
		repository.NewRecordRepository(redisClient),
		repository.NewGoalRepository(redisClient),
		repository.NewSettingsRepository(redisClient),
		reminder.Deps{
			Clock:      reminder.NewSystemClock(cfg.Reminder.Location),
			Calculator: interval.NewCalculator(),
			Notifier:   notifier,
			Recorder:   eventRecorder,
			Metrics:    reminderMetrics,
			Conditions: cfg.Reminder.Conditions(),
		},
	)
	trackerService.OnReminder(func(ctx context.Context, r reminder.Reminder) {
		slog.DebugContext(ctx, "reminder callback",
			slog.String("event", "reminder.fired"),
			slog.String("user_id", r.UserID),
			slog.String("tracker", r.Tracker.String()),
			slog.Float64("recommended_amount", r.RecommendedAmount),
		)
	})

	if err := trackerService.Restore(ctx); err != nil {
		slog.Warn("failed to restore reminders", slog.String("error", err.Error()))
	}
	defer trackerService.StopAll()

	r := gin.New()
	r.Use(middleware.Gin(middleware.GinConfig{
		SkipPaths:   []string{"/health", "/health/live", "/health/ready", "/metrics"},
		Module:      logging.Module("habit-reminder"),
		TracerName:  "github.com/KasumiMercury/primind-habit-reminder/internal/observability/middleware",
		HTTPMetrics: httpMetrics,
	}))
	r.Use(middleware.PanicRecoveryGin())

	healthChecker := health.NewChecker(redisClient, trackerService, Version)
	r.GET("/health/live", healthChecker.LiveHandler())
	r.GET("/health/ready", healthChecker.ReadyHandler())
	r.GET("/health", healthChecker.ReadyHandler())

	handler.NewTrackerHandler(trackerService).Register(r.Group("/api/v1"))

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Port),
			slog.String("timezone", cfg.Reminder.Location.String()),
			slog.String("default_activity", cfg.Reminder.DefaultActivity.String()),
			slog.Float64("default_weather_factor", cfg.Reminder.DefaultWeatherFactor),
		)
		serverErr <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
		cancel()

		// Stop timers before the notifier and recorder are closed by the deferred cleanups.
		trackerService.StopAll()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shutdown server", slog.String("error", err.Error()))
			return 1
		}

		if err := eventRecorder.Flush(shutdownCtx); err != nil {
			slog.Warn("failed to flush reminder events", slog.String("error", err.Error()))
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
