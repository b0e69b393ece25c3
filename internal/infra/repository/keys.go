package repository

import (
	"strings"

	"github.com/KasumiMercury/primind-habit-reminder/internal/domain"
)

const (
	recordKeyPrefix      = "habit:records:"
	recordIndexKeyPrefix = "habit:records:index:"
	goalKeyPrefix        = "habit:goal:"
	settingsKeyPrefix    = "habit:settings:"
	enabledSettingsKey   = "habit:settings:enabled"
)

// scope is the per-user, per-tracker key suffix. The tracker goes first
// because user IDs may contain the separator.
func scope(userID string, tracker domain.Tracker) string {
	return tracker.String() + ":" + userID
}

func parseScope(s string) (domain.ReminderTarget, bool) {
	tracker, userID, ok := strings.Cut(s, ":")
	if !ok || tracker == "" || userID == "" {
		return domain.ReminderTarget{}, false
	}
	return domain.ReminderTarget{UserID: userID, Tracker: domain.Tracker(tracker)}, true
}
