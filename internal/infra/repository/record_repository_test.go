package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/KasumiMercury/primind-habit-reminder/internal/domain"
	"github.com/KasumiMercury/primind-habit-reminder/internal/testutil"
)

func TestRecordRepositorySaveAndList(t *testing.T) {
	ctx := context.Background()
	client := testutil.SetupRedisContainer(ctx, t)

	repo := NewRecordRepository(client)
	base := time.Date(2025, time.June, 10, 12, 0, 0, 0, time.UTC)

	records := []*domain.Record{
		{ID: "r-late", UserID: "user-1", Tracker: domain.TrackerHydration, Amount: 300, Timestamp: base.Add(2 * time.Hour)},
		{ID: "r-early", UserID: "user-1", Tracker: domain.TrackerHydration, Amount: 200, Timestamp: base, Note: "breakfast"},
		{ID: "r-other", UserID: "user-1", Tracker: domain.TrackerCalories, Amount: 500, Timestamp: base},
	}
	for _, r := range records {
		if err := repo.Save(ctx, r); err != nil {
			t.Fatalf("failed to save record %s: %v", r.ID, err)
		}
	}

	got, err := repo.List(ctx, "user-1", domain.TrackerHydration)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 hydration records, got %d", len(got))
	}
	if got[0].ID != "r-early" || got[1].ID != "r-late" {
		t.Errorf("records not ordered by timestamp: %s, %s", got[0].ID, got[1].ID)
	}
	if got[0].Note != "breakfast" || !got[0].Timestamp.Equal(base) {
		t.Errorf("record fields not preserved: %+v", got[0])
	}

	empty, err := repo.List(ctx, "user-2", domain.TrackerHydration)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("expected no records for unknown user, got %d", len(empty))
	}
}

func TestRecordRepositoryGetAndUpdate(t *testing.T) {
	ctx := context.Background()
	client := testutil.SetupRedisContainer(ctx, t)

	repo := NewRecordRepository(client)
	ts := time.Date(2025, time.June, 10, 8, 0, 0, 0, time.UTC)

	record := &domain.Record{ID: "r-1", UserID: "user-1", Tracker: domain.TrackerSleep, Amount: 7, Timestamp: ts}
	if err := repo.Save(ctx, record); err != nil {
		t.Fatalf("failed to save record: %v", err)
	}

	if err := record.Edit(7.5, "nap included"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.Save(ctx, record); err != nil {
		t.Fatalf("failed to update record: %v", err)
	}

	got, err := repo.Get(ctx, "user-1", domain.TrackerSleep, "r-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Amount != 7.5 || got.Note != "nap included" {
		t.Errorf("unexpected record: %+v", got)
	}

	list, err := repo.List(ctx, "user-1", domain.TrackerSleep)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("update should not duplicate the record, got %d", len(list))
	}

	_, err = repo.Get(ctx, "user-1", domain.TrackerSleep, "missing")
	if !errors.Is(err, domain.ErrRecordNotFound) {
		t.Errorf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestRecordRepositoryDelete(t *testing.T) {
	ctx := context.Background()
	client := testutil.SetupRedisContainer(ctx, t)

	repo := NewRecordRepository(client)

	record := &domain.Record{ID: "r-1", UserID: "user-1", Tracker: domain.TrackerHydration, Amount: 250, Timestamp: time.Now()}
	if err := repo.Save(ctx, record); err != nil {
		t.Fatalf("failed to save record: %v", err)
	}

	if err := repo.Delete(ctx, "user-1", domain.TrackerHydration, "r-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	list, err := repo.List(ctx, "user-1", domain.TrackerHydration)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("expected no records after delete, got %d", len(list))
	}

	err = repo.Delete(ctx, "user-1", domain.TrackerHydration, "r-1")
	if !errors.Is(err, domain.ErrRecordNotFound) {
		t.Errorf("expected ErrRecordNotFound on second delete, got %v", err)
	}
}

func TestRecordRepositorySaveNil(t *testing.T) {
	repo := NewRecordRepository(nil)

	if err := repo.Save(context.Background(), nil); !errors.Is(err, ErrInvalidRecordData) {
		t.Errorf("expected ErrInvalidRecordData, got %v", err)
	}
}
