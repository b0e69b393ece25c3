// Package pattern derives an interval adjustment from how often the user
// habitually records at the current time of day.
package pattern

import (
	"time"

	"github.com/KasumiMercury/primind-habit-reminder/internal/domain"
)

const (
	// MinRecords is the history size below which no adjustment is made.
	MinRecords = 7

	lookback     = 7 * 24 * time.Hour
	lookbackDays = 7.0
	hourSpread   = 1

	frequentPerDay = 2.0
	rarePerDay     = 0.5

	// Adjustment is the magnitude of a habitual shift in minutes.
	Adjustment = 15
)

// HabitualAdjustment returns a signed minute delta: negative when the user
// often records around this hour, positive when they rarely do.
func HabitualAdjustment(records []domain.Record, now time.Time) int {
	if len(records) < MinRecords {
		return 0
	}

	hour := now.Hour()
	similar := 0
	for _, r := range records {
		if now.Sub(r.Timestamp) > lookback {
			continue
		}
		diff := r.Timestamp.In(now.Location()).Hour() - hour
		if diff < 0 {
			diff = -diff
		}
		if diff <= hourSpread {
			similar++
		}
	}

	if similar == 0 {
		return 0
	}

	avgPerDay := float64(similar) / lookbackDays
	switch {
	case avgPerDay > frequentPerDay:
		return -Adjustment
	case avgPerDay < rarePerDay:
		return Adjustment
	default:
		return 0
	}
}
