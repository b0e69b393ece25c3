package interval

import (
	"sort"
	"time"

	"github.com/KasumiMercury/primind-habit-reminder/internal/service/window"
)

type slot struct {
	hour, minute int
}

// Wake, mid-morning, after lunch, afternoon, evening, night.
var optimalSlots = []slot{
	{7, 0},
	{10, 0},
	{12, 30},
	{15, 0},
	{18, 0},
	{20, 0},
}

// GenerateDailySchedule returns today's remaining canonical reminder times
// that fall inside the window, ascending. The slots do not vary with
// dailyGoal yet.
func GenerateDailySchedule(dailyGoal float64, start, end string, now time.Time) []time.Time {
	schedule := make([]time.Time, 0, len(optimalSlots))
	for _, s := range optimalSlots {
		t := time.Date(now.Year(), now.Month(), now.Day(), s.hour, s.minute, 0, 0, now.Location())
		if !t.After(now) {
			continue
		}
		if !window.IsWithinWindow(t, start, end) {
			continue
		}
		schedule = append(schedule, t)
	}

	sort.Slice(schedule, func(i, j int) bool {
		return schedule[i].Before(schedule[j])
	})
	return schedule
}
