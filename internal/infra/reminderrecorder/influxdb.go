//go:build !gcloud

package reminderrecorder

import (
	"context"
	"log/slog"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"

	"github.com/KasumiMercury/primind-habit-reminder/internal/domain"
)

const reminderEventMeasurement = "reminder_event"

type influxDBRecorder struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
}

func NewRecorder(ctx context.Context, cfg *Config) (domain.ReminderEventRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "reminder event recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.InfluxDBToken == "" || cfg.InfluxDBOrg == "" {
		slog.WarnContext(ctx, "InfluxDB token or org not configured, reminder event recording disabled",
			slog.String("url", cfg.InfluxDBURL),
		)
		return NewNoopRecorder(), nil
	}

	client := influxdb2.NewClient(cfg.InfluxDBURL, cfg.InfluxDBToken)

	slog.InfoContext(ctx, "reminder event recorder initialized",
		slog.String("type", "influxdb"),
		slog.String("url", cfg.InfluxDBURL),
		slog.String("bucket", cfg.InfluxDBBucket),
	)

	return &influxDBRecorder{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.InfluxDBOrg, cfg.InfluxDBBucket),
	}, nil
}

func (r *influxDBRecorder) RecordEvent(ctx context.Context, event domain.ReminderEvent) error {
	point := influxdb2.NewPoint(
		reminderEventMeasurement,
		map[string]string{
			"tracker":     event.Tracker.String(),
			"mode":        event.Mode.String(),
			"skip_reason": skipReasonTag(event.SkipReason),
		},
		map[string]any{
			"user_id":            event.UserID,
			"interval_minutes":   event.IntervalMinutes,
			"recommended_amount": event.RecommendedAmount,
			"delivered":          event.Delivered,
			"skipped":            event.Skipped,
		},
		event.FiredAt,
	)

	return r.writeAPI.WritePoint(ctx, point)
}

func (r *influxDBRecorder) Flush(ctx context.Context) error {
	return r.writeAPI.Flush(ctx)
}

func (r *influxDBRecorder) Close() error {
	if r.client != nil {
		r.client.Close()
	}
	return nil
}

func skipReasonTag(reason string) string {
	if reason == "" {
		return "none"
	}
	return reason
}
