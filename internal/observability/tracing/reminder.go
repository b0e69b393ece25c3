package tracing

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const reminderTracerName = "github.com/KasumiMercury/primind-habit-reminder/internal/service/reminder"

func ReminderTracer() trace.Tracer {
	return otel.Tracer(reminderTracerName)
}

func StartTickSpan(ctx context.Context, userID, tracker, mode string) (context.Context, trace.Span) {
	return ReminderTracer().Start(ctx, "reminder.tick",
		trace.WithAttributes(
			attribute.String("user_id", userID),
			attribute.String("tracker", tracker),
			attribute.String("mode", mode),
		),
	)
}

func StartCalculationSpan(ctx context.Context, tracker string, recordCount int) (context.Context, trace.Span) {
	return ReminderTracer().Start(ctx, "reminder.calculate_next",
		trace.WithAttributes(
			attribute.String("tracker", tracker),
			attribute.Int("records.count", recordCount),
		),
	)
}

func StartDeliverySpan(ctx context.Context, sink, url string) (context.Context, trace.Span) {
	return ReminderTracer().Start(ctx, "reminder.deliver."+sink,
		trace.WithAttributes(
			attribute.String("url", url),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

func RecordTickResult(span trace.Span, fired bool, skipReason string, nextFireAt time.Time) {
	span.SetAttributes(
		attribute.Bool("tick.fired", fired),
	)
	if skipReason != "" {
		span.SetAttributes(attribute.String("tick.skip_reason", skipReason))
	}
	if !nextFireAt.IsZero() {
		span.SetAttributes(attribute.String("tick.next_fire_at", nextFireAt.Format(time.RFC3339)))
	}
	span.SetStatus(codes.Ok, "")
}

func RecordCalculationResult(span trace.Span, intervalMinutes int, amount float64, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return
	}
	span.SetAttributes(
		attribute.Int("calculation.interval_minutes", intervalMinutes),
		attribute.Float64("calculation.recommended_amount", amount),
	)
	span.SetStatus(codes.Ok, "")
}

func RecordError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
}
