package config

import (
	"os"
	"strconv"
	"time"

	"github.com/KasumiMercury/primind-habit-reminder/internal/domain"
)

const (
	reminderTimezoneEnv      = "REMINDER_TIMEZONE"
	reminderActivityEnv      = "REMINDER_DEFAULT_ACTIVITY"
	reminderWeatherFactorEnv = "REMINDER_DEFAULT_WEATHER_FACTOR"
)

// ReminderConfig holds the process-wide inputs of reminder scheduling.
type ReminderConfig struct {
	Location             *time.Location
	DefaultActivity      domain.ActivityLevel
	DefaultWeatherFactor float64
}

func LoadReminderConfig() (*ReminderConfig, error) {
	loc := time.Local
	if name := os.Getenv(reminderTimezoneEnv); name != "" {
		parsed, err := time.LoadLocation(name)
		if err != nil {
			return nil, ErrInvalidTimezone
		}
		loc = parsed
	}

	activity := domain.ActivityMedium
	if raw := os.Getenv(reminderActivityEnv); raw != "" {
		parsed, err := domain.ParseActivityLevel(raw)
		if err != nil {
			return nil, ErrInvalidDefaultActivity
		}
		activity = parsed
	}

	weatherFactor := 1.0
	if raw := os.Getenv(reminderWeatherFactorEnv); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed <= 0 {
			return nil, ErrInvalidWeatherFactor
		}
		weatherFactor = parsed
	}

	return &ReminderConfig{
		Location:             loc,
		DefaultActivity:      activity,
		DefaultWeatherFactor: weatherFactor,
	}, nil
}

func (c *ReminderConfig) Conditions() domain.Conditions {
	return domain.Conditions{
		WeatherFactor: c.DefaultWeatherFactor,
		Activity:      c.DefaultActivity,
	}
}
