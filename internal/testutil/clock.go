package testutil

import (
	"time"

	"github.com/jmhodges/clock"

	"github.com/KasumiMercury/primind-habit-reminder/internal/service/reminder"
)

// NewFakeClock returns a fake clock set to now together with the scheduler
// clock reading it in now's location.
func NewFakeClock(now time.Time) (clock.FakeClock, reminder.Clock) {
	fake := clock.NewFake()
	fake.Set(now)
	return fake, reminder.NewClock(fake, now.Location())
}
