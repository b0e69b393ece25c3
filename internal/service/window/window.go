// Package window decides whether an instant falls inside a daily
// reminder window given as two HH:MM wall-clock strings.
package window

import (
	"time"

	"github.com/KasumiMercury/primind-habit-reminder/internal/domain"
)

// IsWithinWindow reports whether t lies in [start, end] on the wall clock.
// When end is earlier than start the window crosses midnight.
// Unparsable bounds are treated as 00:00.
func IsWithinWindow(t time.Time, start, end string) bool {
	now := MinuteOfDay(t)
	s := clockOrMidnight(start)
	e := clockOrMidnight(end)

	if s <= e {
		return now >= s && now <= e
	}
	return now >= s || now <= e
}

// MinuteOfDay returns minutes since local midnight.
func MinuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// NextStart returns the next instant at or after t where the window opens.
func NextStart(t time.Time, start string) time.Time {
	mins := clockOrMidnight(start)
	candidate := time.Date(t.Year(), t.Month(), t.Day(), mins/60, mins%60, 0, 0, t.Location())
	if candidate.Before(t) {
		candidate = candidate.AddDate(0, 0, 1)
	}
	return candidate
}

func clockOrMidnight(s string) int {
	mins, err := domain.ParseClock(s)
	if err != nil {
		return 0
	}
	return mins
}
