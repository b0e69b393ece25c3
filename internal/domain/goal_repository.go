package domain

import "context"

//go:generate mockgen -source=goal_repository.go -destination=goal_repository_mock.go -package=domain

type GoalRepository interface {
	DailyGoal(ctx context.Context, userID string, tracker Tracker) (float64, error)
	SetDailyGoal(ctx context.Context, userID string, tracker Tracker, goal float64) error
}
