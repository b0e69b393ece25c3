// Package recommend computes the single-dose quantity suggested with a reminder.
package recommend

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/KasumiMercury/primind-habit-reminder/internal/domain"
)

const (
	baseAmount = 200.0

	// RecentWindow is the trailing window used for recent-intake heuristics.
	RecentWindow = 2 * time.Hour

	hotFactorThreshold  = 1.1
	coolFactorThreshold = 0.9
)

const (
	reasonPostWake      = "post-wake hydration"
	reasonNight         = "nighttime moderate hydration"
	reasonExtraForGoal  = "extra to reach the goal"
	reasonNearGoal      = "modest amount, goal is close"
	reasonRecentHigh    = "recently drank a lot, go easy"
	reasonRecentLow     = "recent intake is low, drink more"
	reasonHotEnv        = "hot-environment adjustment"
	reasonCoolEnv       = "cool-environment adjustment"
	reasonStandard      = "standard amount"
	reasonShortInterval = "short-interval modest dose"
	reasonLongInterval  = "long-interval larger dose"
	reasonNightManual   = "nighttime moderate dose"
)

// IsWakeHour reports the post-wake band [6, 9].
func IsWakeHour(hour int) bool {
	return hour >= 6 && hour <= 9
}

// IsNightHour reports the night band [22, 24) and [0, 6].
// Hour 6 is in both bands; callers check the wake band first.
func IsNightHour(hour int) bool {
	return hour >= 22 || hour <= 6
}

// RecommendAmount returns the auto-mode dose for the next reminder.
// Manual callers pass a factor of 1.0.
func RecommendAmount(remainingGoal float64, now time.Time, records []domain.Record, factor float64) domain.AmountRecommendation {
	amount := baseAmount
	var reasons []string

	hour := now.Hour()
	switch {
	case IsWakeHour(hour):
		amount = 250
		reasons = append(reasons, reasonPostWake)
	case IsNightHour(hour):
		amount = 150
		reasons = append(reasons, reasonNight)
	}

	switch {
	case remainingGoal > 1500:
		amount = math.Min(300, amount+50)
		reasons = append(reasons, reasonExtraForGoal)
	case remainingGoal < 500:
		amount = math.Max(domain.MinRecommendedAmount, amount-50)
		reasons = append(reasons, reasonNearGoal)
	}

	recent := domain.SumSince(records, now, RecentWindow)
	switch {
	case recent > 500:
		amount = math.Max(domain.MinRecommendedAmount, amount-50)
		reasons = append(reasons, reasonRecentHigh)
	case recent < 100:
		amount = math.Min(350, amount+50)
		reasons = append(reasons, reasonRecentLow)
	}

	amount = math.Round(amount * factor)
	switch {
	case factor > hotFactorThreshold:
		reasons = append(reasons, reasonHotEnv)
	case factor < coolFactorThreshold:
		reasons = append(reasons, reasonCoolEnv)
	}

	reason := reasonStandard
	if len(reasons) > 0 {
		reason = strings.Join(reasons, ", ")
	}

	return domain.AmountRecommendation{
		Amount: clampAmount(amount),
		Reason: reason,
	}
}

// RecommendManualAmount keys the dose off the fixed reminder interval.
func RecommendManualAmount(remainingGoal float64, intervalMinutes int, now time.Time) domain.AmountRecommendation {
	amount := baseAmount
	var reasons []string

	switch {
	case intervalMinutes <= 30:
		amount = 150
		reasons = append(reasons, reasonShortInterval)
	case intervalMinutes >= 120:
		amount = 300
		reasons = append(reasons, reasonLongInterval)
	}

	hour := now.Hour()
	switch {
	case IsWakeHour(hour):
		amount += 50
		reasons = append(reasons, reasonPostWake)
	case IsNightHour(hour):
		amount -= 50
		reasons = append(reasons, reasonNightManual)
	}

	switch {
	case remainingGoal > 1000:
		amount += 50
		reasons = append(reasons, reasonExtraForGoal)
	case remainingGoal < 300:
		amount -= 50
		reasons = append(reasons, reasonNearGoal)
	}

	reason := fmt.Sprintf("standard amount for %d-minute interval", intervalMinutes)
	if len(reasons) > 0 {
		reason = strings.Join(reasons, ", ")
	}

	return domain.AmountRecommendation{
		Amount: clampAmount(amount),
		Reason: reason,
	}
}

func clampAmount(amount float64) float64 {
	return math.Max(domain.MinRecommendedAmount, math.Min(domain.MaxRecommendedAmount, amount))
}
