// Package interval computes when the next adaptive reminder should fire.
package interval

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/KasumiMercury/primind-habit-reminder/internal/domain"
	"github.com/KasumiMercury/primind-habit-reminder/internal/service/pattern"
	"github.com/KasumiMercury/primind-habit-reminder/internal/service/recommend"
)

const (
	nightIntervalMinutes = 120
	wakeIntervalMinutes  = 30
)

type Calculator struct{}

func NewCalculator() *Calculator {
	return &Calculator{}
}

// CalculateNext combines time-of-day, recent intake and habitual frequency
// into a bounded interval and the instant it ends at.
func (c *Calculator) CalculateNext(
	records []domain.Record,
	dailyGoal float64,
	weatherFactor float64,
	activity domain.ActivityLevel,
	now time.Time,
) (domain.RecommendationResult, error) {
	if math.IsNaN(dailyGoal) || dailyGoal < 0 {
		return domain.RecommendationResult{}, fmt.Errorf("%w: daily goal %v", domain.ErrInvalidCalculationInput, dailyGoal)
	}
	if math.IsNaN(weatherFactor) || math.IsInf(weatherFactor, 0) || weatherFactor <= 0 {
		return domain.RecommendationResult{}, fmt.Errorf("%w: weather factor %v", domain.ErrInvalidCalculationInput, weatherFactor)
	}
	multiplier, ok := activity.Multiplier()
	if !ok {
		return domain.RecommendationResult{}, fmt.Errorf("%w: activity level %q", domain.ErrInvalidCalculationInput, activity)
	}

	snapshot := domain.NewDailySnapshot(records, dailyGoal, now)
	factor := multiplier * weatherFactor

	base := baseInterval(records, now, factor)
	minutes := ClampInterval(base + pattern.HabitualAdjustment(records, now))

	amount := recommend.RecommendAmount(snapshot.RemainingGoal, now, records, factor)

	return domain.RecommendationResult{
		NextReminderTime:        now.Add(time.Duration(minutes) * time.Minute),
		IntervalMinutes:         minutes,
		Reason:                  reasonText(minutes, snapshot.RemainingGoal, weatherFactor, activity),
		RecommendedAmount:       amount.Amount,
		RecommendedAmountReason: amount.Reason,
	}, nil
}

func baseInterval(records []domain.Record, now time.Time, factor float64) int {
	hour := now.Hour()
	if recommend.IsNightHour(hour) {
		return nightIntervalMinutes
	}
	if recommend.IsWakeHour(hour) {
		return wakeIntervalMinutes
	}

	recent := domain.SumSince(records, now, recommend.RecentWindow)
	switch {
	case recent > 300:
		return scaledInterval(90, factor)
	case recent > 150:
		return scaledInterval(60, factor)
	default:
		return scaledInterval(45, factor)
	}
}

// scaledInterval divides minutes by factor. The result is bounded while still
// a float so a tiny factor cannot overflow the int conversion.
func scaledInterval(minutes, factor float64) int {
	return int(math.Min(math.Round(minutes/factor), 2*domain.MaxIntervalMinutes))
}

// ClampInterval bounds an interval to [MinIntervalMinutes, MaxIntervalMinutes].
func ClampInterval(minutes int) int {
	if minutes < domain.MinIntervalMinutes {
		return domain.MinIntervalMinutes
	}
	if minutes > domain.MaxIntervalMinutes {
		return domain.MaxIntervalMinutes
	}
	return minutes
}

func reasonText(minutes int, remaining, weatherFactor float64, activity domain.ActivityLevel) string {
	var reasons []string

	switch {
	case remaining > 1000:
		reasons = append(reasons, "much water still needed")
	case remaining < 200:
		reasons = append(reasons, "nearly at goal")
	}

	switch {
	case weatherFactor > 1.1:
		reasons = append(reasons, "hot weather adjustment")
	case weatherFactor < 0.9:
		reasons = append(reasons, "cool weather adjustment")
	}

	switch activity {
	case domain.ActivityHigh:
		reasons = append(reasons, "high activity level")
	case domain.ActivityLow:
		reasons = append(reasons, "low activity level")
	}

	if len(reasons) == 0 {
		return fmt.Sprintf("standard recommended interval (%d min)", minutes)
	}
	return fmt.Sprintf("%d-minute interval - %s", minutes, strings.Join(reasons, ", "))
}
