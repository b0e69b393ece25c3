package reminder

import (
	"sync"
	"time"

	"github.com/jmhodges/clock"
)

// Timer is a pending callback that can be cancelled.
type Timer interface {
	Stop() bool
}

// Clock is the time source of a scheduler.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

type zonedClock struct {
	clk clock.Clock
	loc *time.Location
}

// NewClock adapts clk to the scheduler and reports time in loc. A nil loc
// means time.Local. Pass a clock.NewFake() to run schedulers on simulated time.
func NewClock(clk clock.Clock, loc *time.Location) Clock {
	if loc == nil {
		loc = time.Local
	}
	return zonedClock{clk: clk, loc: loc}
}

// NewSystemClock returns the wall clock reporting time in loc.
func NewSystemClock(loc *time.Location) Clock {
	return NewClock(clock.New(), loc)
}

func (c zonedClock) Now() time.Time {
	return c.clk.Now().In(c.loc)
}

// AfterFunc calls f on its own goroutine once d has passed on the clock.
func (c zonedClock) AfterFunc(d time.Duration, f func()) Timer {
	t := &funcTimer{
		timer: c.clk.NewTimer(d),
		stop:  make(chan struct{}),
	}
	go func() {
		select {
		case <-t.timer.C:
			f()
		case <-t.stop:
		}
	}()
	return t
}

type funcTimer struct {
	timer *clock.Timer
	stop  chan struct{}
	once  sync.Once
}

func (t *funcTimer) Stop() bool {
	stopped := t.timer.Stop()
	t.once.Do(func() { close(t.stop) })
	return stopped
}
