package reminder

import (
	"testing"
	"time"

	"github.com/KasumiMercury/primind-habit-reminder/internal/domain"
)

func at(hour, minute int) time.Time {
	return time.Date(2025, time.June, 10, hour, minute, 0, 0, time.Local)
}

func TestEstimateNext(t *testing.T) {
	settings := domain.ReminderSettings{
		Enabled:         true,
		Mode:            domain.ModeManual,
		IntervalMinutes: 60,
		StartTime:       "08:00",
		EndTime:         "22:00",
	}

	tests := []struct {
		name          string
		records       []domain.Record
		now           time.Time
		wantNext      time.Time
		wantUntilNext int
		wantActNow    bool
	}{
		{
			name:          "no records today starts from now",
			records:       []domain.Record{{Amount: 200, Timestamp: at(12, 0).AddDate(0, 0, -1)}},
			now:           at(12, 0),
			wantNext:      at(13, 0),
			wantUntilNext: 60,
		},
		{
			name:          "one interval after the last record",
			records:       []domain.Record{{Amount: 200, Timestamp: at(11, 30)}, {Amount: 200, Timestamp: at(10, 0)}},
			now:           at(12, 0),
			wantNext:      at(12, 30),
			wantUntilNext: 30,
		},
		{
			name:       "long gap is overdue",
			records:    []domain.Record{{Amount: 200, Timestamp: at(9, 0)}},
			now:        at(12, 0),
			wantNext:   at(10, 0),
			wantActNow: true,
		},
		{
			name:          "outside window moves to next start",
			records:       []domain.Record{{Amount: 200, Timestamp: at(21, 30)}},
			now:           at(21, 45),
			wantNext:      at(8, 0).AddDate(0, 0, 1),
			wantUntilNext: 615,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EstimateNext(tt.records, settings, tt.now)
			if !got.NextReminderTime.Equal(tt.wantNext) {
				t.Errorf("NextReminderTime = %v, want %v", got.NextReminderTime, tt.wantNext)
			}
			if got.MinutesUntilNext != tt.wantUntilNext {
				t.Errorf("MinutesUntilNext = %d, want %d", got.MinutesUntilNext, tt.wantUntilNext)
			}
			if got.ActNow != tt.wantActNow {
				t.Errorf("ActNow = %v, want %v", got.ActNow, tt.wantActNow)
			}
		})
	}
}
