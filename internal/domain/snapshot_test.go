package domain

import (
	"testing"
	"time"
)

func TestNewDailySnapshot(t *testing.T) {
	now := time.Date(2025, time.June, 10, 14, 0, 0, 0, time.Local)

	records := []Record{
		{ID: "late", Amount: 300, Timestamp: now.Add(-1 * time.Hour)},
		{ID: "yesterday", Amount: 500, Timestamp: now.Add(-20 * time.Hour)},
		{ID: "early", Amount: 200, Timestamp: time.Date(2025, time.June, 10, 7, 0, 0, 0, time.Local)},
		{ID: "tomorrow", Amount: 100, Timestamp: now.Add(12 * time.Hour)},
	}

	snap := NewDailySnapshot(records, 2000, now)

	if len(snap.TodayRecords) != 2 {
		t.Fatalf("expected 2 records today, got %d", len(snap.TodayRecords))
	}
	if snap.TodayRecords[0].ID != "early" || snap.TodayRecords[1].ID != "late" {
		t.Errorf("records not sorted by time: %s, %s", snap.TodayRecords[0].ID, snap.TodayRecords[1].ID)
	}
	if snap.TodayIntake != 500 {
		t.Errorf("TodayIntake = %v, want 500", snap.TodayIntake)
	}
	if snap.RemainingGoal != 1500 {
		t.Errorf("RemainingGoal = %v, want 1500", snap.RemainingGoal)
	}
}

func TestNewDailySnapshotFloorsRemainingAtZero(t *testing.T) {
	now := time.Date(2025, time.June, 10, 20, 0, 0, 0, time.Local)
	records := []Record{{Amount: 2500, Timestamp: now.Add(-time.Hour)}}

	snap := NewDailySnapshot(records, 2000, now)
	if snap.RemainingGoal != 0 {
		t.Errorf("RemainingGoal = %v, want 0", snap.RemainingGoal)
	}
}

func TestSumSince(t *testing.T) {
	now := time.Date(2025, time.June, 10, 14, 0, 0, 0, time.Local)
	records := []Record{
		{Amount: 100, Timestamp: now.Add(-30 * time.Minute)},
		{Amount: 200, Timestamp: now.Add(-2 * time.Hour)},
		{Amount: 400, Timestamp: now.Add(-2*time.Hour - time.Minute)},
		{Amount: 800, Timestamp: now.Add(10 * time.Minute)},
	}

	if got := SumSince(records, now, 2*time.Hour); got != 300 {
		t.Errorf("SumSince = %v, want 300", got)
	}
}

func TestLatest(t *testing.T) {
	if Latest(nil) != nil {
		t.Fatal("expected nil for empty records")
	}

	now := time.Now()
	records := []Record{
		{ID: "a", Timestamp: now.Add(-2 * time.Hour)},
		{ID: "b", Timestamp: now.Add(-10 * time.Minute)},
		{ID: "c", Timestamp: now.Add(-time.Hour)},
	}
	if got := Latest(records); got.ID != "b" {
		t.Errorf("Latest = %s, want b", got.ID)
	}
}
