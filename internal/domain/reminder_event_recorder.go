package domain

import (
	"context"
	"time"
)

//go:generate mockgen -source=reminder_event_recorder.go -destination=reminder_event_recorder_mock.go -package=domain

type ReminderEvent struct {
	UserID            string
	Tracker           Tracker
	Mode              Mode
	FiredAt           time.Time
	IntervalMinutes   int
	RecommendedAmount float64
	Delivered         bool
	Skipped           bool
	SkipReason        string
}

type ReminderEventRecorder interface {
	RecordEvent(ctx context.Context, event ReminderEvent) error
	Flush(ctx context.Context) error
	Close() error
}
