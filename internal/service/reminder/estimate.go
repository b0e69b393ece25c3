package reminder

import (
	"time"

	"github.com/KasumiMercury/primind-habit-reminder/internal/domain"
	"github.com/KasumiMercury/primind-habit-reminder/internal/service/window"
)

// overdueAfter is how long since the last record before acting now is advised.
const overdueAfter = 120 * time.Minute

// Estimate is the fixed-interval view of the next reminder.
type Estimate struct {
	NextReminderTime time.Time  `json:"next_reminder_time"`
	LastRecordAt     *time.Time `json:"last_record_at,omitempty"`
	MinutesSinceLast int        `json:"minutes_since_last"`
	MinutesUntilNext int        `json:"minutes_until_next"`
	ActNow           bool       `json:"act_now"`
}

// EstimateNext places the next reminder one interval after today's latest
// record, or one interval from now when nothing was recorded today. A
// candidate outside the window moves to the next window start.
func EstimateNext(records []domain.Record, settings domain.ReminderSettings, now time.Time) Estimate {
	interval := time.Duration(settings.IntervalMinutes) * time.Minute
	snapshot := domain.NewDailySnapshot(records, 0, now)

	var est Estimate
	next := now.Add(interval)
	if last := domain.Latest(snapshot.TodayRecords); last != nil {
		ts := last.Timestamp
		est.LastRecordAt = &ts
		est.MinutesSinceLast = int(now.Sub(ts).Minutes())
		next = ts.Add(interval)
	}

	if !window.IsWithinWindow(next, settings.StartTime, settings.EndTime) {
		next = window.NextStart(next, settings.StartTime)
	}
	est.NextReminderTime = next

	if !next.After(now) {
		est.ActNow = true
	} else {
		est.MinutesUntilNext = int(next.Sub(now).Minutes())
	}
	if est.LastRecordAt != nil && now.Sub(*est.LastRecordAt) >= overdueAfter {
		est.ActNow = true
	}

	return est
}
