package domain

import "context"

//go:generate mockgen -source=settings_repository.go -destination=settings_repository_mock.go -package=domain

// ReminderTarget identifies one independently scheduled reminder.
type ReminderTarget struct {
	UserID  string
	Tracker Tracker
}

type SettingsRepository interface {
	GetSettings(ctx context.Context, userID string, tracker Tracker) (*ReminderSettings, error)
	SaveSettings(ctx context.Context, userID string, tracker Tracker, settings ReminderSettings) error
	// ListEnabled returns every target whose saved settings are enabled.
	ListEnabled(ctx context.Context) ([]ReminderTarget, error)
}
