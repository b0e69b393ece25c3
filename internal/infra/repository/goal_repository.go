package repository

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/primind-habit-reminder/internal/domain"
)

type goalRepository struct {
	client *redis.Client
}

func NewGoalRepository(client *redis.Client) domain.GoalRepository {
	return &goalRepository{
		client: client,
	}
}

func (r *goalRepository) DailyGoal(ctx context.Context, userID string, tracker domain.Tracker) (float64, error) {
	goal, err := r.client.Get(ctx, goalKeyPrefix+scope(userID, tracker)).Float64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, domain.ErrGoalNotFound
		}
		return 0, err
	}

	return goal, nil
}

func (r *goalRepository) SetDailyGoal(ctx context.Context, userID string, tracker domain.Tracker, goal float64) error {
	return r.client.Set(ctx, goalKeyPrefix+scope(userID, tracker), goal, 0).Err()
}
