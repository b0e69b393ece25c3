package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	reminderMeterName = "reminder.scheduler"
)

type ReminderMetrics struct {
	remindersFired       metric.Int64Counter
	remindersSkipped     metric.Int64Counter
	deliveries           metric.Int64Counter
	calculationFallbacks metric.Int64Counter
	intervalMinutes      metric.Int64Histogram
	calculationDuration  metric.Float64Histogram
	recommendedAmount    metric.Float64Histogram
}

func NewReminderMetrics() (*ReminderMetrics, error) {
	meter := otel.Meter(reminderMeterName)

	remindersFired, err := meter.Int64Counter(
		"reminder_fired_total",
		metric.WithDescription("Total number of reminders fired"),
		metric.WithUnit("{reminder}"),
	)
	if err != nil {
		return nil, err
	}

	remindersSkipped, err := meter.Int64Counter(
		"reminder_skipped_total",
		metric.WithDescription("Total number of ticks that did not fire a reminder"),
		metric.WithUnit("{tick}"),
	)
	if err != nil {
		return nil, err
	}

	deliveries, err := meter.Int64Counter(
		"reminder_deliveries_total",
		metric.WithDescription("Notification delivery attempts by outcome"),
		metric.WithUnit("{delivery}"),
	)
	if err != nil {
		return nil, err
	}

	calculationFallbacks, err := meter.Int64Counter(
		"reminder_calculation_fallback_total",
		metric.WithDescription("Adaptive calculations that fell back to the fixed estimate"),
		metric.WithUnit("{calculation}"),
	)
	if err != nil {
		return nil, err
	}

	intervalMinutes, err := meter.Int64Histogram(
		"reminder_interval_minutes",
		metric.WithDescription("Interval armed until the next reminder"),
		metric.WithUnit("min"),
		metric.WithExplicitBucketBoundaries(
			15, 30, 45, 60, 90, 120, 150, 180,
		),
	)
	if err != nil {
		return nil, err
	}

	calculationDuration, err := meter.Float64Histogram(
		"reminder_calculation_duration_seconds",
		metric.WithDescription("Time spent calculating the next reminder"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05,
		),
	)
	if err != nil {
		return nil, err
	}

	recommendedAmount, err := meter.Float64Histogram(
		"reminder_recommended_amount",
		metric.WithDescription("Recommended single dose attached to fired reminders"),
		metric.WithExplicitBucketBoundaries(
			100, 150, 200, 250, 300, 350, 400,
		),
	)
	if err != nil {
		return nil, err
	}

	return &ReminderMetrics{
		remindersFired:       remindersFired,
		remindersSkipped:     remindersSkipped,
		deliveries:           deliveries,
		calculationFallbacks: calculationFallbacks,
		intervalMinutes:      intervalMinutes,
		calculationDuration:  calculationDuration,
		recommendedAmount:    recommendedAmount,
	}, nil
}

func (m *ReminderMetrics) RecordFired(ctx context.Context, tracker, mode string, amount float64) {
	attrs := metric.WithAttributes(
		attribute.String("tracker", tracker),
		attribute.String("mode", mode),
	)
	m.remindersFired.Add(ctx, 1, attrs)
	m.recommendedAmount.Record(ctx, amount, attrs)
}

func (m *ReminderMetrics) RecordSkipped(ctx context.Context, tracker, reason string) {
	m.remindersSkipped.Add(ctx, 1, metric.WithAttributes(
		attribute.String("tracker", tracker),
		attribute.String("reason", reason),
	))
}

func (m *ReminderMetrics) RecordDelivery(ctx context.Context, tracker, outcome string) {
	m.deliveries.Add(ctx, 1, metric.WithAttributes(
		attribute.String("tracker", tracker),
		attribute.String("outcome", outcome),
	))
}

func (m *ReminderMetrics) RecordCalculationFallback(ctx context.Context, tracker string) {
	m.calculationFallbacks.Add(ctx, 1, metric.WithAttributes(
		attribute.String("tracker", tracker),
	))
}

func (m *ReminderMetrics) RecordArmedInterval(ctx context.Context, tracker, mode string, interval time.Duration) {
	m.intervalMinutes.Record(ctx, int64(interval.Minutes()), metric.WithAttributes(
		attribute.String("tracker", tracker),
		attribute.String("mode", mode),
	))
}

func (m *ReminderMetrics) RecordCalculationDuration(ctx context.Context, tracker string, duration time.Duration) {
	m.calculationDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("tracker", tracker),
	))
}
