package config

import (
	"errors"
	"testing"

	"github.com/KasumiMercury/primind-habit-reminder/internal/domain"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "REDIS_ADDR", "REDIS_DB", "REMINDER_TIMEZONE",
		"REMINDER_DEFAULT_ACTIVITY", "REMINDER_DEFAULT_WEATHER_FACTOR",
		"NOTIFY_WEBHOOK_URL", "NOTIFY_MAX_RETRIES",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.Redis.Addr != defaultRedisAddr {
		t.Errorf("Redis.Addr = %q, want %q", cfg.Redis.Addr, defaultRedisAddr)
	}
	if cfg.Reminder.DefaultActivity != domain.ActivityMedium {
		t.Errorf("DefaultActivity = %q, want medium", cfg.Reminder.DefaultActivity)
	}
	if cfg.Reminder.DefaultWeatherFactor != 1.0 {
		t.Errorf("DefaultWeatherFactor = %v, want 1.0", cfg.Reminder.DefaultWeatherFactor)
	}
	if cfg.Notify.MaxRetries != defaultNotifyMaxRetries {
		t.Errorf("MaxRetries = %d, want %d", cfg.Notify.MaxRetries, defaultNotifyMaxRetries)
	}
	if err := ValidateForRun(cfg); err != nil {
		t.Errorf("ValidateForRun() error = %v", err)
	}
}

func TestLoadReminderConfig(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		activity string
		weather  string
		wantErr  error
	}{
		{name: "valid", timezone: "Asia/Tokyo", activity: "high", weather: "1.2"},
		{name: "bad timezone", timezone: "Mars/Base", wantErr: ErrInvalidTimezone},
		{name: "bad activity", activity: "extreme", wantErr: ErrInvalidDefaultActivity},
		{name: "bad weather", weather: "hot", wantErr: ErrInvalidWeatherFactor},
		{name: "non-positive weather", weather: "0", wantErr: ErrInvalidWeatherFactor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(reminderTimezoneEnv, tt.timezone)
			t.Setenv(reminderActivityEnv, tt.activity)
			t.Setenv(reminderWeatherFactorEnv, tt.weather)

			cfg, err := LoadReminderConfig()
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("LoadReminderConfig() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadReminderConfig() error = %v", err)
			}
			if cfg.Location.String() != tt.timezone {
				t.Errorf("Location = %q, want %q", cfg.Location, tt.timezone)
			}
			got := cfg.Conditions()
			if got.Activity != domain.ActivityHigh || got.WeatherFactor != 1.2 {
				t.Errorf("Conditions() = %+v", got)
			}
		})
	}
}

func TestLoadRedisConfigInvalidDB(t *testing.T) {
	t.Setenv(redisDBEnv, "zero")

	if _, err := LoadRedisConfig(); !errors.Is(err, ErrInvalidRedisDB) {
		t.Errorf("LoadRedisConfig() error = %v, want %v", err, ErrInvalidRedisDB)
	}
}

func TestValidateForRun(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *Config
		wantErr error
	}{
		{
			name: "log sink",
			cfg:  &Config{Redis: &RedisConfig{Addr: "localhost:6379"}, Notify: &NotifyConfig{}},
		},
		{
			name: "webhook",
			cfg:  &Config{Redis: &RedisConfig{Addr: "localhost:6379"}, Notify: &NotifyConfig{WebhookURL: "https://example.com/hook"}},
		},
		{
			name:    "relative webhook",
			cfg:     &Config{Redis: &RedisConfig{Addr: "localhost:6379"}, Notify: &NotifyConfig{WebhookURL: "/hook"}},
			wantErr: ErrInvalidWebhookURL,
		},
		{
			name:    "missing redis",
			cfg:     &Config{Redis: &RedisConfig{}, Notify: &NotifyConfig{}},
			wantErr: ErrRedisAddrMissing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateForRun(tt.cfg)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateForRun() error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateForRun() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRedisOptions(t *testing.T) {
	cfg := &RedisConfig{Addr: "redis:6379", DB: 2, TLS: true}

	opts := cfg.Options()
	if opts.Addr != "redis:6379" || opts.DB != 2 {
		t.Errorf("Options() = %+v", opts)
	}
	if opts.TLSConfig == nil {
		t.Error("TLSConfig = nil, want set when TLS is enabled")
	}
}

func TestNotifyCloudTasksConfigured(t *testing.T) {
	t.Setenv(gcloudProjectIDEnv, "project")
	t.Setenv(gcloudLocationIDEnv, "asia-northeast1")
	t.Setenv(gcloudQueueIDEnv, "reminders")
	t.Setenv(gcloudTargetURLEnv, "")

	cfg := LoadNotifyConfig()
	if cfg.CloudTasksConfigured() {
		t.Error("CloudTasksConfigured() = true without a target URL")
	}

	cfg.GCloudTargetURL = "https://push.example.com/reminders"
	if !cfg.CloudTasksConfigured() {
		t.Error("CloudTasksConfigured() = false, want true")
	}
}
