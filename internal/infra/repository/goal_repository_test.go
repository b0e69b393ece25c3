package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/KasumiMercury/primind-habit-reminder/internal/domain"
	"github.com/KasumiMercury/primind-habit-reminder/internal/testutil"
)

func TestGoalRepository(t *testing.T) {
	ctx := context.Background()
	client := testutil.SetupRedisContainer(ctx, t)

	repo := NewGoalRepository(client)

	_, err := repo.DailyGoal(ctx, "user-1", domain.TrackerHydration)
	if !errors.Is(err, domain.ErrGoalNotFound) {
		t.Fatalf("expected ErrGoalNotFound, got %v", err)
	}

	if err := repo.SetDailyGoal(ctx, "user-1", domain.TrackerHydration, 2400); err != nil {
		t.Fatalf("failed to set goal: %v", err)
	}
	if err := repo.SetDailyGoal(ctx, "user-1", domain.TrackerSleep, 7.5); err != nil {
		t.Fatalf("failed to set goal: %v", err)
	}

	goal, err := repo.DailyGoal(ctx, "user-1", domain.TrackerHydration)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if goal != 2400 {
		t.Errorf("expected goal 2400, got %v", goal)
	}

	goal, err = repo.DailyGoal(ctx, "user-1", domain.TrackerSleep)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if goal != 7.5 {
		t.Errorf("expected goal 7.5, got %v", goal)
	}
}
