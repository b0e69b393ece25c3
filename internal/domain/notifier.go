package domain

import "context"

//go:generate mockgen -source=notifier.go -destination=notifier_mock.go -package=domain

type Notification struct {
	UserID            string  `json:"user_id"`
	Tracker           Tracker `json:"tracker"`
	Title             string  `json:"title"`
	Body              string  `json:"body"`
	RecommendedAmount float64 `json:"recommended_amount,omitempty"`
}

// Notifier delivers a reminder to the user. Delivery may fail silently on the
// user's side (permission denied), so callers must not rely on it.
type Notifier interface {
	Deliver(ctx context.Context, n Notification) error
}
