package notifier

import (
	"context"
	"log/slog"

	"github.com/KasumiMercury/primind-habit-reminder/internal/domain"
)

// LogNotifier writes reminders to the structured log. It is used when no
// webhook is configured.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) Deliver(ctx context.Context, notification domain.Notification) error {
	slog.InfoContext(ctx, "reminder notification",
		slog.String("user_id", notification.UserID),
		slog.String("tracker", notification.Tracker.String()),
		slog.String("title", notification.Title),
		slog.String("body", notification.Body),
		slog.Float64("recommended_amount", notification.RecommendedAmount),
	)
	return nil
}
