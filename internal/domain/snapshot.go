package domain

import (
	"math"
	"sort"
	"time"
)

// DailySnapshot is today's intake, derived from a record list and a clock.
type DailySnapshot struct {
	TodayRecords  []Record
	TodayIntake   float64
	RemainingGoal float64
}

// NewDailySnapshot filters records to now's local calendar day.
func NewDailySnapshot(records []Record, dailyGoal float64, now time.Time) DailySnapshot {
	dayStart := StartOfDay(now)
	dayEnd := dayStart.AddDate(0, 0, 1)

	today := make([]Record, 0, len(records))
	intake := 0.0
	for _, r := range records {
		if r.Timestamp.Before(dayStart) || !r.Timestamp.Before(dayEnd) {
			continue
		}
		today = append(today, r)
		intake += r.Amount
	}
	sort.Slice(today, func(i, j int) bool {
		return today[i].Timestamp.Before(today[j].Timestamp)
	})

	return DailySnapshot{
		TodayRecords:  today,
		TodayIntake:   intake,
		RemainingGoal: math.Max(0, dailyGoal-intake),
	}
}

func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
