//go:build gcloud

package reminderrecorder

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/option"

	"github.com/KasumiMercury/primind-habit-reminder/internal/domain"
)

type reminderEventRow struct {
	UserID            string    `bigquery:"user_id"`
	Tracker           string    `bigquery:"tracker"`
	Mode              string    `bigquery:"mode"`
	FiredAt           time.Time `bigquery:"fired_at"`
	IntervalMinutes   int       `bigquery:"interval_minutes"`
	RecommendedAmount float64   `bigquery:"recommended_amount"`
	Delivered         bool      `bigquery:"delivered"`
	Skipped           bool      `bigquery:"skipped"`
	SkipReason        string    `bigquery:"skip_reason"`
	RecordedAt        time.Time `bigquery:"recorded_at"`
}

type bigQueryRecorder struct {
	client    *bigquery.Client
	inserter  *bigquery.Inserter
	batchSize int

	mu      sync.Mutex
	pending []*reminderEventRow
}

func NewRecorder(ctx context.Context, cfg *Config) (domain.ReminderEventRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "reminder event recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.BigQueryProjectID == "" {
		slog.WarnContext(ctx, "BigQuery project ID not configured, reminder event recording disabled")
		return NewNoopRecorder(), nil
	}

	var opts []option.ClientOption
	if cfg.BigQueryEndpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.BigQueryEndpoint), option.WithoutAuthentication())
	}

	client, err := bigquery.NewClient(ctx, cfg.BigQueryProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create BigQuery client: %w", err)
	}

	inserter := client.Dataset(cfg.BigQueryDataset).Table(cfg.BigQueryTable).Inserter()

	slog.InfoContext(ctx, "reminder event recorder initialized",
		slog.String("type", "bigquery"),
		slog.String("project_id", cfg.BigQueryProjectID),
		slog.String("dataset", cfg.BigQueryDataset),
		slog.String("table", cfg.BigQueryTable),
	)

	return &bigQueryRecorder{
		client:    client,
		inserter:  inserter,
		batchSize: cfg.BigQueryBatchSize,
	}, nil
}

func (r *bigQueryRecorder) RecordEvent(ctx context.Context, event domain.ReminderEvent) error {
	row := &reminderEventRow{
		UserID:            event.UserID,
		Tracker:           event.Tracker.String(),
		Mode:              event.Mode.String(),
		FiredAt:           event.FiredAt,
		IntervalMinutes:   event.IntervalMinutes,
		RecommendedAmount: event.RecommendedAmount,
		Delivered:         event.Delivered,
		Skipped:           event.Skipped,
		SkipReason:        event.SkipReason,
		RecordedAt:        time.Now(),
	}

	r.mu.Lock()
	r.pending = append(r.pending, row)
	full := len(r.pending) >= r.batchSize
	r.mu.Unlock()

	if full {
		return r.Flush(ctx)
	}
	return nil
}

func (r *bigQueryRecorder) Flush(ctx context.Context) error {
	r.mu.Lock()
	rows := r.pending
	r.pending = nil
	r.mu.Unlock()

	if len(rows) == 0 {
		return nil
	}

	if err := r.inserter.Put(ctx, rows); err != nil {
		return fmt.Errorf("failed to insert %d reminder events: %w", len(rows), err)
	}

	return nil
}

func (r *bigQueryRecorder) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := r.Flush(ctx); err != nil {
		slog.Warn("failed to flush reminder events on close", slog.String("error", err.Error()))
	}

	if r.client != nil {
		return r.client.Close()
	}
	return nil
}
