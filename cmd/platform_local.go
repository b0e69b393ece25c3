//go:build !gcloud

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

func initNotifier(_ context.Context, cfg *config.Config) (domain.Notifier, func() error, error) {
	if cfg.Notify.WebhookURL == "" {
		slog.Warn("NOTIFY_WEBHOOK_URL not set, reminders are only logged")
	} else {
		slog.Info("notifier initialized",
			slog.String("type", "webhook"),
			slog.String("url", cfg.Notify.WebhookURL),
			slog.Int("max_retries", cfg.Notify.MaxRetries),
		)
	}

	return notifier.New(cfg.Notify.WebhookURL, cfg.Notify.MaxRetries), nil, nil
}

func initObservability(ctx context.Context) (*observability.Resources, error) {
	serviceName := os.Getenv("SERVICE_NAME")
	if serviceName == "" {
		serviceName = "habit-reminder"
	}

	env := logging.EnvDev
	if e := os.Getenv("ENV"); e != "" {
		env = logging.Environment(e)
	}

	return observability.Init(ctx, observability.Config{
		ServiceInfo: logging.ServiceInfo{
			Name:     serviceName,
			Version:  Version,
			Revision: "",
		},
		Environment:   env,
		GCPProjectID:  "",
		SamplingRate:  1.0,
		DefaultModule: logging.Module("habit-reminder"),
		LogLevel:      logging.ParseLevel(os.Getenv("LOG_LEVEL")),
	})
}
