// Package tracker coordinates records, goals and reminder schedulers for
// every (user, tracker) pair served by this process.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/KasumiMercury/primind-habit-reminder/internal/domain"
	"github.com/KasumiMercury/primind-habit-reminder/internal/service/interval"
	"github.com/KasumiMercury/primind-habit-reminder/internal/service/recommend"
	"github.com/KasumiMercury/primind-habit-reminder/internal/service/reminder"
	"github.com/google/uuid"
)

// ReminderStatus is the combined scheduler and estimate view of a reminder.
type ReminderStatus struct {
	Settings domain.ReminderSettings `json:"settings"`
	State    reminder.State          `json:"state"`
	Estimate reminder.Estimate       `json:"estimate"`
}

type Service struct {
	recordRepo   domain.RecordRepository
	goalRepo     domain.GoalRepository
	settingsRepo domain.SettingsRepository
	deps         reminder.Deps
	onReminder   reminder.Callback
	newID        func() string

	mu          sync.Mutex
	schedulers  map[domain.ReminderTarget]*reminder.Scheduler
	targetLocks map[domain.ReminderTarget]*sync.Mutex
}

func NewService(
	recordRepo domain.RecordRepository,
	goalRepo domain.GoalRepository,
	settingsRepo domain.SettingsRepository,
	deps reminder.Deps,
) *Service {
	if deps.Clock == nil {
		deps.Clock = reminder.NewSystemClock(nil)
	}
	if deps.Calculator == nil {
		deps.Calculator = interval.NewCalculator()
	}
	if deps.Conditions == (domain.Conditions{}) {
		deps.Conditions = domain.NeutralConditions()
	}

	return &Service{
		recordRepo:   recordRepo,
		goalRepo:     goalRepo,
		settingsRepo: settingsRepo,
		deps:         deps,
		newID:        func() string { return uuid.New().String() },
		schedulers:   make(map[domain.ReminderTarget]*reminder.Scheduler),
		targetLocks:  make(map[domain.ReminderTarget]*sync.Mutex),
	}
}

// OnReminder registers a callback run on every fired reminder, in addition
// to notifier delivery. It applies to schedulers created afterwards.
func (s *Service) OnReminder(cb reminder.Callback) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onReminder = cb
}

func (s *Service) ListRecords(ctx context.Context, userID, tracker string) ([]domain.Record, error) {
	cfg, err := domain.LookupTracker(tracker)
	if err != nil {
		return nil, err
	}

	records, err := s.recordRepo.List(ctx, userID, cfg.Tracker)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return records, nil
}

// AddRecord stores a new measurement. A nil timestamp means now.
func (s *Service) AddRecord(ctx context.Context, userID, tracker string, amount float64, note string, timestamp *time.Time) (*domain.Record, error) {
	cfg, err := domain.LookupTracker(tracker)
	if err != nil {
		return nil, err
	}

	ts := s.deps.Clock.Now()
	if timestamp != nil {
		ts = *timestamp
	}

	record, err := domain.NewRecord(s.newID(), userID, cfg.Tracker, amount, ts, note)
	if err != nil {
		return nil, err
	}

	if err := s.recordRepo.Save(ctx, record); err != nil {
		return nil, fmt.Errorf("save record: %w", err)
	}

	slog.InfoContext(ctx, "record added",
		slog.String("user_id", userID),
		slog.String("tracker", cfg.Tracker.String()),
		slog.String("record_id", record.ID),
		slog.Float64("amount", amount),
	)

	s.refreshReminder(ctx, userID, cfg)
	return record, nil
}

func (s *Service) EditRecord(ctx context.Context, userID, tracker, recordID string, amount float64, note string) (*domain.Record, error) {
	cfg, err := domain.LookupTracker(tracker)
	if err != nil {
		return nil, err
	}

	record, err := s.recordRepo.Get(ctx, userID, cfg.Tracker, recordID)
	if err != nil {
		return nil, fmt.Errorf("get record: %w", err)
	}

	if err := record.Edit(amount, note); err != nil {
		return nil, err
	}

	if err := s.recordRepo.Save(ctx, record); err != nil {
		return nil, fmt.Errorf("save record: %w", err)
	}

	s.refreshReminder(ctx, userID, cfg)
	return record, nil
}

func (s *Service) DeleteRecord(ctx context.Context, userID, tracker, recordID string) error {
	cfg, err := domain.LookupTracker(tracker)
	if err != nil {
		return err
	}

	if err := s.recordRepo.Delete(ctx, userID, cfg.Tracker, recordID); err != nil {
		return fmt.Errorf("delete record: %w", err)
	}

	s.refreshReminder(ctx, userID, cfg)
	return nil
}

// DailyGoal returns the stored goal, or the tracker default when none is set.
func (s *Service) DailyGoal(ctx context.Context, userID, tracker string) (float64, error) {
	cfg, err := domain.LookupTracker(tracker)
	if err != nil {
		return 0, err
	}
	return s.dailyGoal(ctx, userID, cfg)
}

func (s *Service) SetDailyGoal(ctx context.Context, userID, tracker string, goal float64) error {
	cfg, err := domain.LookupTracker(tracker)
	if err != nil {
		return err
	}
	if goal <= 0 {
		return domain.ErrInvalidGoal
	}

	if err := s.goalRepo.SetDailyGoal(ctx, userID, cfg.Tracker, goal); err != nil {
		return fmt.Errorf("set daily goal: %w", err)
	}

	s.refreshReminder(ctx, userID, cfg)
	return nil
}

// ReminderSettings returns the stored settings, or the defaults when none are saved.
func (s *Service) ReminderSettings(ctx context.Context, userID, tracker string) (domain.ReminderSettings, error) {
	cfg, err := domain.LookupTracker(tracker)
	if err != nil {
		return domain.ReminderSettings{}, err
	}
	return s.reminderSettings(ctx, userID, cfg)
}

// UpdateReminderSettings validates, saves and applies settings.
func (s *Service) UpdateReminderSettings(ctx context.Context, userID, tracker string, settings domain.ReminderSettings) (*ReminderStatus, error) {
	cfg, err := domain.LookupTracker(tracker)
	if err != nil {
		return nil, err
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	if err := s.applySettings(ctx, userID, cfg, settings); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "reminder settings updated",
		slog.String("user_id", userID),
		slog.String("tracker", cfg.Tracker.String()),
		slog.Bool("enabled", settings.Enabled),
		slog.String("mode", settings.Mode.String()),
	)

	return s.reminderStatus(ctx, userID, cfg, settings)
}

// DisableReminder stops the scheduler and persists the disabled settings.
func (s *Service) DisableReminder(ctx context.Context, userID, tracker string) error {
	cfg, err := domain.LookupTracker(tracker)
	if err != nil {
		return err
	}

	target := domain.ReminderTarget{UserID: userID, Tracker: cfg.Tracker}
	unlock := s.lockTarget(target)
	defer unlock()

	settings, err := s.reminderSettings(ctx, userID, cfg)
	if err != nil {
		return err
	}
	settings.Enabled = false

	if err := s.settingsRepo.SaveSettings(ctx, userID, cfg.Tracker, settings); err != nil {
		return fmt.Errorf("save reminder settings: %w", err)
	}

	s.scheduler(target, cfg).Stop()

	slog.InfoContext(ctx, "reminder disabled",
		slog.String("user_id", userID),
		slog.String("tracker", cfg.Tracker.String()),
	)
	return nil
}

func (s *Service) ReminderStatus(ctx context.Context, userID, tracker string) (*ReminderStatus, error) {
	cfg, err := domain.LookupTracker(tracker)
	if err != nil {
		return nil, err
	}

	settings, err := s.reminderSettings(ctx, userID, cfg)
	if err != nil {
		return nil, err
	}
	return s.reminderStatus(ctx, userID, cfg, settings)
}

// Recommendation runs the adaptive calculation with explicit conditions.
// Zero values fall back to the configured defaults.
func (s *Service) Recommendation(ctx context.Context, userID, tracker string, weatherFactor float64, activity domain.ActivityLevel) (domain.RecommendationResult, error) {
	cfg, err := domain.LookupTracker(tracker)
	if err != nil {
		return domain.RecommendationResult{}, err
	}

	records, goal, err := s.history(ctx, userID, cfg)
	if err != nil {
		return domain.RecommendationResult{}, err
	}

	if weatherFactor == 0 {
		weatherFactor = s.deps.Conditions.WeatherFactor
	}
	if activity == "" {
		activity = s.deps.Conditions.Activity
	}

	return s.deps.Calculator.CalculateNext(records, goal, weatherFactor, activity, s.deps.Clock.Now())
}

func (s *Service) ManualRecommendation(ctx context.Context, userID, tracker string, intervalMinutes int) (domain.AmountRecommendation, error) {
	cfg, err := domain.LookupTracker(tracker)
	if err != nil {
		return domain.AmountRecommendation{}, err
	}
	if intervalMinutes <= 0 {
		return domain.AmountRecommendation{}, domain.ErrInvalidInterval
	}

	records, goal, err := s.history(ctx, userID, cfg)
	if err != nil {
		return domain.AmountRecommendation{}, err
	}

	now := s.deps.Clock.Now()
	remaining := domain.NewDailySnapshot(records, goal, now).RemainingGoal
	return recommend.RecommendManualAmount(remaining, intervalMinutes, now), nil
}

func (s *Service) DailySchedule(ctx context.Context, userID, tracker string) ([]time.Time, error) {
	cfg, err := domain.LookupTracker(tracker)
	if err != nil {
		return nil, err
	}

	settings, err := s.reminderSettings(ctx, userID, cfg)
	if err != nil {
		return nil, err
	}
	goal, err := s.dailyGoal(ctx, userID, cfg)
	if err != nil {
		return nil, err
	}

	return interval.GenerateDailySchedule(goal, settings.StartTime, settings.EndTime, s.deps.Clock.Now()), nil
}

// Restore re-arms every persisted enabled reminder from record history.
func (s *Service) Restore(ctx context.Context) error {
	targets, err := s.settingsRepo.ListEnabled(ctx)
	if err != nil {
		return fmt.Errorf("list enabled reminders: %w", err)
	}

	restored := 0
	for _, target := range targets {
		cfg, err := domain.LookupTracker(target.Tracker.String())
		if err != nil {
			slog.WarnContext(ctx, "skipping reminder for unknown tracker",
				slog.String("user_id", target.UserID),
				slog.String("tracker", target.Tracker.String()),
			)
			continue
		}

		if err := s.restoreTarget(ctx, target, cfg); err != nil {
			slog.WarnContext(ctx, "failed to restore reminder",
				slog.String("user_id", target.UserID),
				slog.String("tracker", target.Tracker.String()),
				slog.String("error", err.Error()),
			)
			continue
		}
		restored++
	}

	slog.InfoContext(ctx, "reminders restored",
		slog.Int("enabled_count", len(targets)),
		slog.Int("restored_count", restored),
	)
	return nil
}

func (s *Service) restoreTarget(ctx context.Context, target domain.ReminderTarget, cfg domain.TrackerConfig) error {
	unlock := s.lockTarget(target)
	defer unlock()

	settings, err := s.reminderSettings(ctx, target.UserID, cfg)
	if err != nil {
		return err
	}
	return s.startReminder(ctx, target.UserID, cfg, settings)
}

// StopAll cancels every scheduler owned by the service.
func (s *Service) StopAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, sched := range s.schedulers {
		sched.Stop()
	}
}

// ActiveReminders counts schedulers with a pending timer.
func (s *Service) ActiveReminders() int {
	s.mu.Lock()
	scheds := make([]*reminder.Scheduler, 0, len(s.schedulers))
	for _, sched := range s.schedulers {
		scheds = append(scheds, sched)
	}
	s.mu.Unlock()

	active := 0
	for _, sched := range scheds {
		if sched.State().Armed {
			active++
		}
	}
	return active
}

// applySettings persists settings and applies them to the scheduler as one
// step for the target.
func (s *Service) applySettings(ctx context.Context, userID string, cfg domain.TrackerConfig, settings domain.ReminderSettings) error {
	unlock := s.lockTarget(domain.ReminderTarget{UserID: userID, Tracker: cfg.Tracker})
	defer unlock()

	if err := s.settingsRepo.SaveSettings(ctx, userID, cfg.Tracker, settings); err != nil {
		return fmt.Errorf("save reminder settings: %w", err)
	}
	return s.startReminder(ctx, userID, cfg, settings)
}

// startReminder must run under the target lock.
func (s *Service) startReminder(ctx context.Context, userID string, cfg domain.TrackerConfig, settings domain.ReminderSettings) error {
	records, goal, err := s.history(ctx, userID, cfg)
	if err != nil {
		return err
	}

	s.mu.Lock()
	cb := s.onReminder
	s.mu.Unlock()

	sched := s.scheduler(domain.ReminderTarget{UserID: userID, Tracker: cfg.Tracker}, cfg)
	sched.Start(ctx, settings, cb, records, goal)
	return nil
}

// refreshReminder feeds fresh history to the scheduler after a change.
// Adaptive reminders are re-armed; fixed-period ones keep their timer. The
// settings read and the re-arm share the target lock so a concurrent disable
// cannot be overwritten by a stale read.
func (s *Service) refreshReminder(ctx context.Context, userID string, cfg domain.TrackerConfig) {
	target := domain.ReminderTarget{UserID: userID, Tracker: cfg.Tracker}

	s.mu.Lock()
	sched, ok := s.schedulers[target]
	s.mu.Unlock()
	if !ok {
		return
	}

	unlock := s.lockTarget(target)
	defer unlock()

	settings, err := s.reminderSettings(ctx, userID, cfg)
	if err != nil {
		slog.WarnContext(ctx, "failed to load reminder settings for refresh",
			slog.String("user_id", userID),
			slog.String("tracker", cfg.Tracker.String()),
			slog.String("error", err.Error()),
		)
		return
	}

	if settings.Enabled && settings.SmartTiming() {
		if err := s.startReminder(ctx, userID, cfg, settings); err != nil {
			slog.WarnContext(ctx, "failed to re-arm reminder",
				slog.String("user_id", userID),
				slog.String("tracker", cfg.Tracker.String()),
				slog.String("error", err.Error()),
			)
		}
		return
	}

	records, goal, err := s.history(ctx, userID, cfg)
	if err != nil {
		slog.WarnContext(ctx, "failed to load history for refresh",
			slog.String("user_id", userID),
			slog.String("tracker", cfg.Tracker.String()),
			slog.String("error", err.Error()),
		)
		return
	}
	sched.UpdateHistory(records, goal)
}

// lockTarget serializes settings changes and scheduler starts for one target.
func (s *Service) lockTarget(target domain.ReminderTarget) func() {
	s.mu.Lock()
	l, ok := s.targetLocks[target]
	if !ok {
		l = &sync.Mutex{}
		s.targetLocks[target] = l
	}
	s.mu.Unlock()

	l.Lock()
	return l.Unlock
}

func (s *Service) scheduler(target domain.ReminderTarget, cfg domain.TrackerConfig) *reminder.Scheduler {
	s.mu.Lock()
	defer s.mu.Unlock()

	sched, ok := s.schedulers[target]
	if !ok {
		sched = reminder.NewScheduler(target.UserID, cfg, s.deps)
		s.schedulers[target] = sched
	}
	return sched
}

func (s *Service) reminderStatus(ctx context.Context, userID string, cfg domain.TrackerConfig, settings domain.ReminderSettings) (*ReminderStatus, error) {
	records, err := s.recordRepo.List(ctx, userID, cfg.Tracker)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}

	s.mu.Lock()
	sched, ok := s.schedulers[domain.ReminderTarget{UserID: userID, Tracker: cfg.Tracker}]
	s.mu.Unlock()

	status := &ReminderStatus{
		Settings: settings,
		Estimate: reminder.EstimateNext(records, settings, s.deps.Clock.Now()),
	}
	if ok {
		status.State = sched.State()
	}
	return status, nil
}

func (s *Service) history(ctx context.Context, userID string, cfg domain.TrackerConfig) ([]domain.Record, float64, error) {
	records, err := s.recordRepo.List(ctx, userID, cfg.Tracker)
	if err != nil {
		return nil, 0, fmt.Errorf("list records: %w", err)
	}
	goal, err := s.dailyGoal(ctx, userID, cfg)
	if err != nil {
		return nil, 0, err
	}
	return records, goal, nil
}

func (s *Service) dailyGoal(ctx context.Context, userID string, cfg domain.TrackerConfig) (float64, error) {
	goal, err := s.goalRepo.DailyGoal(ctx, userID, cfg.Tracker)
	if errors.Is(err, domain.ErrGoalNotFound) {
		return cfg.DefaultGoal, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get daily goal: %w", err)
	}
	return goal, nil
}

func (s *Service) reminderSettings(ctx context.Context, userID string, cfg domain.TrackerConfig) (domain.ReminderSettings, error) {
	settings, err := s.settingsRepo.GetSettings(ctx, userID, cfg.Tracker)
	if errors.Is(err, domain.ErrSettingsNotFound) {
		return domain.DefaultReminderSettings(), nil
	}
	if err != nil {
		return domain.ReminderSettings{}, fmt.Errorf("get reminder settings: %w", err)
	}
	return *settings, nil
}
