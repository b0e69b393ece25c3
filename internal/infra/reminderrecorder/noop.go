package reminderrecorder

import (
	"context"

	"github.com/KasumiMercury/primind-habit-reminder/internal/domain"
)

type noopRecorder struct{}

func NewNoopRecorder() domain.ReminderEventRecorder {
	return &noopRecorder{}
}

func (n *noopRecorder) RecordEvent(_ context.Context, _ domain.ReminderEvent) error {
	return nil
}

func (n *noopRecorder) Flush(_ context.Context) error {
	return nil
}

func (n *noopRecorder) Close() error {
	return nil
}
