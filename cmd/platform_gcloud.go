//go:build gcloud

package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/KasumiMercury/primind-habit-reminder/internal/config"
	"github.com/KasumiMercury/primind-habit-reminder/internal/domain"
	"github.com/KasumiMercury/primind-habit-reminder/internal/infra/notifier"
	"github.com/KasumiMercury/primind-habit-reminder/internal/observability"
	"github.com/KasumiMercury/primind-habit-reminder/internal/observability/logging"
)

func initNotifier(ctx context.Context, cfg *config.Config) (domain.Notifier, func() error, error) {
	if !cfg.Notify.CloudTasksConfigured() {
		slog.Warn("cloud tasks not configured, falling back to webhook or log notifier")
		return notifier.New(cfg.Notify.WebhookURL, cfg.Notify.MaxRetries), nil, nil
	}

	tasksNotifier, err := notifier.NewCloudTasksNotifier(ctx, notifier.CloudTasksConfig{
		ProjectID:  cfg.Notify.GCloudProjectID,
		LocationID: cfg.Notify.GCloudLocationID,
		QueueID:    cfg.Notify.GCloudQueueID,
		TargetURL:  cfg.Notify.GCloudTargetURL,
		MaxRetries: cfg.Notify.MaxRetries,
	})
	if err != nil {
		return nil, nil, err
	}

	slog.Info("notifier initialized",
		slog.String("type", "cloud_tasks"),
		slog.String("project", cfg.Notify.GCloudProjectID),
		slog.String("location", cfg.Notify.GCloudLocationID),
		slog.String("queue", cfg.Notify.GCloudQueueID),
	)

	cleanup := func() error {
		if err := tasksNotifier.Close(); err != nil {
			slog.Warn("failed to close cloud tasks client", slog.String("error", err.Error()))

			return err
		}

		return nil
	}

	return tasksNotifier, cleanup, nil
}

func initObservability(ctx context.Context) (*observability.Resources, error) {
	serviceName := os.Getenv("K_SERVICE")
	if serviceName == "" {
		serviceName = "habit-reminder"
	}

	env := logging.EnvProd
	if e := os.Getenv("ENV"); e != "" {
		env = logging.Environment(e)
	}

	projectID := os.Getenv("GOOGLE_CLOUD_PROJECT")
	if projectID == "" {
		projectID = os.Getenv("GCLOUD_PROJECT_ID")
	}

	return observability.Init(ctx, observability.Config{
		ServiceInfo: logging.ServiceInfo{
			Name:     serviceName,
			Version:  Version,
			Revision: os.Getenv("K_REVISION"),
		},
		Environment:   env,
		GCPProjectID:  projectID,
		SamplingRate:  1.0,
		DefaultModule: logging.Module("habit-reminder"),
		LogLevel:      logging.ParseLevel(os.Getenv("LOG_LEVEL")),
	})
}
