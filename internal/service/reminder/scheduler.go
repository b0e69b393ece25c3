// Package reminder owns the per-tracker reminder timer.
//
// A Scheduler keeps at most one pending timer. Manual mode re-arms a fixed
// period and gates each tick on the window and the time since the last
// reminder. Adaptive mode recomputes the next instant from the record history
// after every tick.
package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/KasumiMercury/primind-habit-reminder/internal/domain"
	"github.com/KasumiMercury/primind-habit-reminder/internal/observability/metrics"
	"github.com/KasumiMercury/primind-habit-reminder/internal/observability/tracing"
	"github.com/KasumiMercury/primind-habit-reminder/internal/service/interval"
	"github.com/KasumiMercury/primind-habit-reminder/internal/service/recommend"
	"github.com/KasumiMercury/primind-habit-reminder/internal/service/window"
)

const (
	// MinimumDelay is armed when a computed fire instant is already due.
	MinimumDelay = 15 * time.Minute

	// PlainAutoPeriod is the period used by auto mode without smart timing.
	PlainAutoPeriod = 60 * time.Minute
)

const (
	skipOutsideWindow = "outside_window"
	skipTooSoon       = "too_soon"
)

// Reminder is what a tick hands to the callback when it fires.
type Reminder struct {
	UserID            string
	Tracker           domain.Tracker
	FiredAt           time.Time
	RecommendedAmount float64
	Reason            string
}

// Callback is invoked on the timer goroutine, outside the scheduler lock and
// after the next tick is armed. It may call Stop or Start.
type Callback func(ctx context.Context, r Reminder)

// State is a point-in-time view for status endpoints.
type State struct {
	Armed             bool      `json:"armed"`
	Enabled           bool      `json:"enabled"`
	Mode              string    `json:"mode,omitempty"`
	NextFireAt        time.Time `json:"next_fire_at,omitzero"`
	LastFiredAt       time.Time `json:"last_fired_at,omitzero"`
	IntervalMinutes   int       `json:"interval_minutes,omitempty"`
	RecommendedAmount float64   `json:"recommended_amount,omitempty"`
	Reason            string    `json:"reason,omitempty"`
	Fallback          bool      `json:"fallback"`
}

type Deps struct {
	Clock      Clock
	Calculator *interval.Calculator
	Notifier   domain.Notifier
	Recorder   domain.ReminderEventRecorder
	Metrics    *metrics.ReminderMetrics
	Conditions domain.Conditions
}

// plan is the outcome of one scheduling decision.
type plan struct {
	delay    time.Duration
	result   domain.RecommendationResult
	fallback bool
}

type Scheduler struct {
	userID  string
	tracker domain.TrackerConfig

	clock      Clock
	calculator *interval.Calculator
	notifier   domain.Notifier
	recorder   domain.ReminderEventRecorder
	metrics    *metrics.ReminderMetrics
	conditions domain.Conditions

	mu          sync.Mutex
	ctx         context.Context
	timer       Timer
	generation  uint64
	settings    domain.ReminderSettings
	onReminder  Callback
	records     []domain.Record
	goal        float64
	pending     plan
	nextFireAt  time.Time
	lastFiredAt time.Time
}

func NewScheduler(userID string, tracker domain.TrackerConfig, deps Deps) *Scheduler {
	clock := deps.Clock
	if clock == nil {
		clock = NewSystemClock(nil)
	}
	calculator := deps.Calculator
	if calculator == nil {
		calculator = interval.NewCalculator()
	}
	conditions := deps.Conditions
	if conditions == (domain.Conditions{}) {
		conditions = domain.NeutralConditions()
	}

	return &Scheduler{
		userID:     userID,
		tracker:    tracker,
		clock:      clock,
		calculator: calculator,
		notifier:   deps.Notifier,
		recorder:   deps.Recorder,
		metrics:    deps.Metrics,
		conditions: conditions,
		ctx:        context.Background(),
	}
}

// Start replaces any pending timer with one derived from settings. Disabled
// settings leave the scheduler idle. The last fire time survives restarts.
func (s *Scheduler) Start(ctx context.Context, settings domain.ReminderSettings, onReminder Callback, records []domain.Record, goal float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelLocked()
	s.settings = settings

	if !settings.Enabled {
		slog.DebugContext(ctx, "reminder disabled, scheduler idle",
			slog.String("user_id", s.userID),
			slog.String("tracker", s.tracker.Tracker.String()),
		)
		return
	}

	s.ctx = context.WithoutCancel(ctx)
	s.onReminder = onReminder
	s.records = cloneRecords(records)
	s.goal = goal

	s.armLocked(s.ctx)
}

// Stop cancels the pending timer. Calling it on an idle scheduler is a no-op.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelLocked()
}

// UpdateHistory replaces the records and goal read by the next tick
// without touching the pending timer.
func (s *Scheduler) UpdateHistory(records []domain.Record, goal float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = cloneRecords(records)
	s.goal = goal
}

func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := State{
		Armed:       s.timer != nil,
		Enabled:     s.settings.Enabled,
		LastFiredAt: s.lastFiredAt,
	}
	if s.settings.Enabled {
		st.Mode = s.settings.Mode.String()
	}
	if s.timer != nil {
		st.NextFireAt = s.nextFireAt
		st.IntervalMinutes = int(s.pending.delay / time.Minute)
		st.RecommendedAmount = s.pending.result.RecommendedAmount
		st.Reason = s.pending.result.Reason
		st.Fallback = s.pending.fallback
	}
	return st
}

func (s *Scheduler) cancelLocked() {
	s.generation++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.nextFireAt = time.Time{}
	s.pending = plan{}
}

// armLocked computes the next plan and starts its timer. Each arm bumps the
// generation so callbacks of replaced timers become no-ops.
func (s *Scheduler) armLocked(ctx context.Context) {
	now := s.clock.Now()
	p := s.planLocked(ctx, now)

	s.generation++
	gen := s.generation
	s.pending = p
	s.nextFireAt = now.Add(p.delay)
	s.timer = s.clock.AfterFunc(p.delay, func() {
		s.fire(gen)
	})

	if s.metrics != nil {
		s.metrics.RecordArmedInterval(ctx, s.tracker.Tracker.String(), s.settings.Mode.String(), p.delay)
	}

	slog.DebugContext(ctx, "reminder armed",
		slog.String("user_id", s.userID),
		slog.String("tracker", s.tracker.Tracker.String()),
		slog.String("mode", s.settings.Mode.String()),
		slog.Time("next_fire_at", s.nextFireAt),
		slog.Bool("fallback", p.fallback),
	)
}

func (s *Scheduler) planLocked(ctx context.Context, now time.Time) plan {
	if !s.settings.SmartTiming() {
		return plan{delay: fixedPeriod(s.settings)}
	}

	cond := s.conditions.Apply(s.settings)

	calcCtx, span := tracing.StartCalculationSpan(ctx, s.tracker.Tracker.String(), len(s.records))
	started := time.Now()
	result, err := s.calculator.CalculateNext(s.records, s.goal, cond.WeatherFactor, cond.Activity, now)
	if s.metrics != nil {
		s.metrics.RecordCalculationDuration(calcCtx, s.tracker.Tracker.String(), time.Since(started))
	}
	tracing.RecordCalculationResult(span, result.IntervalMinutes, result.RecommendedAmount, err)
	span.End()

	p := plan{result: result}
	if err != nil {
		slog.WarnContext(ctx, "adaptive calculation failed, using fixed estimate",
			slog.String("event", "reminder.calculate.fallback"),
			slog.String("user_id", s.userID),
			slog.String("tracker", s.tracker.Tracker.String()),
			slog.String("error", err.Error()),
		)
		if s.metrics != nil {
			s.metrics.RecordCalculationFallback(ctx, s.tracker.Tracker.String())
		}

		est := EstimateNext(s.records, s.settings, now)
		remaining := domain.NewDailySnapshot(s.records, s.goal, now).RemainingGoal
		amount := recommend.RecommendManualAmount(remaining, s.settings.IntervalMinutes, now)
		p = plan{
			result: domain.RecommendationResult{
				NextReminderTime:        est.NextReminderTime,
				IntervalMinutes:         s.settings.IntervalMinutes,
				Reason:                  fmt.Sprintf("fixed %d-minute estimate", s.settings.IntervalMinutes),
				RecommendedAmount:       amount.Amount,
				RecommendedAmountReason: amount.Reason,
			},
			fallback: true,
		}
	}

	p.delay = p.result.NextReminderTime.Sub(now)
	if p.delay <= 0 {
		p.delay = MinimumDelay
	}
	return p
}

// fire runs one tick for the timer armed under gen. The next timer is armed
// before the callback and delivery run, so a slow sink never holds up the
// cadence.
func (s *Scheduler) fire(gen uint64) {
	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		return
	}
	s.timer = nil

	now := s.clock.Now()
	settings := s.settings
	callback := s.onReminder
	pending := s.pending

	ctx, span := tracing.StartTickSpan(s.ctx, s.userID, s.tracker.Tracker.String(), settings.Mode.String())
	defer span.End()

	skipReason := ""
	switch {
	case !window.IsWithinWindow(now, settings.StartTime, settings.EndTime):
		skipReason = skipOutsideWindow
	case !settings.SmartTiming() && !s.lastFiredAt.IsZero() &&
		now.Sub(s.lastFiredAt) < fixedPeriod(settings):
		skipReason = skipTooSoon
	}

	amount := pending.result.RecommendedAmount
	reason := pending.result.RecommendedAmountReason
	if !settings.SmartTiming() {
		remaining := domain.NewDailySnapshot(s.records, s.goal, now).RemainingGoal
		rec := recommend.RecommendManualAmount(remaining, int(fixedPeriod(settings)/time.Minute), now)
		amount, reason = rec.Amount, rec.Reason
	}

	if skipReason == "" {
		s.lastFiredAt = now
	}

	// Stop or Start from the callback replaces this timer.
	s.armLocked(ctx)
	nextFireAt := s.nextFireAt
	s.mu.Unlock()

	event := domain.ReminderEvent{
		UserID:            s.userID,
		Tracker:           s.tracker.Tracker,
		Mode:              settings.Mode,
		FiredAt:           now,
		IntervalMinutes:   int(pending.delay / time.Minute),
		RecommendedAmount: amount,
		Skipped:           skipReason != "",
		SkipReason:        skipReason,
	}

	if skipReason != "" {
		slog.DebugContext(ctx, "reminder tick skipped",
			slog.String("user_id", s.userID),
			slog.String("tracker", s.tracker.Tracker.String()),
			slog.String("reason", skipReason),
		)
		if s.metrics != nil {
			s.metrics.RecordSkipped(ctx, s.tracker.Tracker.String(), skipReason)
		}
	} else {
		if callback != nil {
			callback(ctx, Reminder{
				UserID:            s.userID,
				Tracker:           s.tracker.Tracker,
				FiredAt:           now,
				RecommendedAmount: amount,
				Reason:            reason,
			})
		}
		event.Delivered = s.deliver(ctx, amount)

		if s.metrics != nil {
			s.metrics.RecordFired(ctx, s.tracker.Tracker.String(), settings.Mode.String(), amount)
		}
		slog.InfoContext(ctx, "reminder fired",
			slog.String("user_id", s.userID),
			slog.String("tracker", s.tracker.Tracker.String()),
			slog.String("mode", settings.Mode.String()),
			slog.Float64("recommended_amount", amount),
			slog.Bool("delivered", event.Delivered),
		)
	}

	s.record(ctx, event)
	tracing.RecordTickResult(span, skipReason == "", skipReason, nextFireAt)
}

func (s *Scheduler) deliver(ctx context.Context, amount float64) bool {
	if s.notifier == nil {
		return false
	}

	n := domain.Notification{
		UserID:            s.userID,
		Tracker:           s.tracker.Tracker,
		Title:             s.tracker.ReminderTitle,
		Body:              fmt.Sprintf("%s (recommended: %.0f %s)", s.tracker.ReminderBody, amount, s.tracker.Unit),
		RecommendedAmount: amount,
	}

	if err := s.notifier.Deliver(ctx, n); err != nil {
		slog.WarnContext(ctx, "failed to deliver reminder",
			slog.String("event", "reminder.deliver.fail"),
			slog.String("user_id", s.userID),
			slog.String("tracker", s.tracker.Tracker.String()),
			slog.String("error", err.Error()),
		)
		if s.metrics != nil {
			s.metrics.RecordDelivery(ctx, s.tracker.Tracker.String(), "failed")
		}
		return false
	}

	if s.metrics != nil {
		s.metrics.RecordDelivery(ctx, s.tracker.Tracker.String(), "delivered")
	}
	return true
}

func (s *Scheduler) record(ctx context.Context, event domain.ReminderEvent) {
	if s.recorder == nil {
		return
	}
	if err := s.recorder.RecordEvent(ctx, event); err != nil {
		slog.WarnContext(ctx, "failed to record reminder event",
			slog.String("event", "reminder.record.fail"),
			slog.String("user_id", s.userID),
			slog.String("tracker", s.tracker.Tracker.String()),
			slog.String("error", err.Error()),
		)
	}
}

// fixedPeriod is the tick period of manual mode and of auto mode without
// smart timing.
func fixedPeriod(settings domain.ReminderSettings) time.Duration {
	if settings.Mode.IsAuto() {
		return PlainAutoPeriod
	}
	period := time.Duration(settings.IntervalMinutes) * time.Minute
	if period <= 0 {
		return MinimumDelay
	}
	return period
}

func cloneRecords(records []domain.Record) []domain.Record {
	if len(records) == 0 {
		return nil
	}
	out := make([]domain.Record, len(records))
	copy(out, records)
	return out
}
