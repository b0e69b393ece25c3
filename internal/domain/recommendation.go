package domain

import "time"

const (
	MinIntervalMinutes = 15
	MaxIntervalMinutes = 180

	MinRecommendedAmount = 100
	MaxRecommendedAmount = 400
)

type AmountRecommendation struct {
	Amount float64 `json:"amount"`
	Reason string  `json:"reason"`
}

type RecommendationResult struct {
	NextReminderTime        time.Time `json:"next_reminder_time"`
	IntervalMinutes         int       `json:"interval_minutes"`
	Reason                  string    `json:"reason"`
	RecommendedAmount       float64   `json:"recommended_amount"`
	RecommendedAmountReason string    `json:"recommended_amount_reason"`
}
