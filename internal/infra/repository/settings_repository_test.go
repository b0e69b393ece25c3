package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/KasumiMercury/primind-habit-reminder/internal/domain"
	"github.com/KasumiMercury/primind-habit-reminder/internal/testutil"
)

func TestSettingsRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	client := testutil.SetupRedisContainer(ctx, t)

	repo := NewSettingsRepository(client)

	_, err := repo.GetSettings(ctx, "user-1", domain.TrackerHydration)
	if !errors.Is(err, domain.ErrSettingsNotFound) {
		t.Fatalf("expected ErrSettingsNotFound, got %v", err)
	}

	settings := domain.ReminderSettings{
		Enabled:         true,
		Mode:            domain.ModeAuto,
		IntervalMinutes: 45,
		StartTime:       "22:00",
		EndTime:         "06:00",
		Auto:            &domain.AutoSettings{UseSmartTiming: true, AdaptToWeather: true},
	}
	if err := repo.SaveSettings(ctx, "user-1", domain.TrackerHydration, settings); err != nil {
		t.Fatalf("failed to save settings: %v", err)
	}

	got, err := repo.GetSettings(ctx, "user-1", domain.TrackerHydration)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Mode != domain.ModeAuto || got.IntervalMinutes != 45 || got.StartTime != "22:00" {
		t.Errorf("unexpected settings: %+v", got)
	}
	if got.Auto == nil || !got.Auto.UseSmartTiming || !got.Auto.AdaptToWeather || got.Auto.AdaptToActivity {
		t.Errorf("unexpected auto settings: %+v", got.Auto)
	}
}

func TestSettingsRepositoryListEnabled(t *testing.T) {
	ctx := context.Background()
	client := testutil.SetupRedisContainer(ctx, t)

	repo := NewSettingsRepository(client)

	enabled := domain.DefaultReminderSettings()
	enabled.Enabled = true
	disabled := domain.DefaultReminderSettings()

	saves := []struct {
		userID   string
		tracker  domain.Tracker
		settings domain.ReminderSettings
	}{
		{"user:with:colons", domain.TrackerHydration, enabled},
		{"user-2", domain.TrackerSleep, enabled},
		{"user-3", domain.TrackerCalories, disabled},
		{"user-2", domain.TrackerSleep, disabled},
		{"user-2", domain.TrackerCalories, enabled},
	}
	for _, s := range saves {
		if err := repo.SaveSettings(ctx, s.userID, s.tracker, s.settings); err != nil {
			t.Fatalf("failed to save settings: %v", err)
		}
	}

	targets, err := repo.ListEnabled(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[domain.ReminderTarget]bool{
		{UserID: "user:with:colons", Tracker: domain.TrackerHydration}: true,
		{UserID: "user-2", Tracker: domain.TrackerCalories}:            true,
	}
	if len(targets) != len(want) {
		t.Fatalf("expected %d enabled targets, got %v", len(want), targets)
	}
	for _, target := range targets {
		if !want[target] {
			t.Errorf("unexpected enabled target %+v", target)
		}
	}
}

func TestParseScope(t *testing.T) {
	tests := []struct {
		input  string
		want   domain.ReminderTarget
		wantOK bool
	}{
		{input: "hydration:user-1", want: domain.ReminderTarget{UserID: "user-1", Tracker: domain.TrackerHydration}, wantOK: true},
		{input: "sleep:a:b", want: domain.ReminderTarget{UserID: "a:b", Tracker: domain.TrackerSleep}, wantOK: true},
		{input: "hydration:", wantOK: false},
		{input: "nocolon", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := parseScope(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("parseScope(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("parseScope(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}
