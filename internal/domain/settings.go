package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Mode selects between fixed-period and adaptive scheduling.
type Mode string

const (
	ModeAuto   Mode = "auto"
	ModeManual Mode = "manual"
)

func (m Mode) String() string {
	return string(m)
}

func (m Mode) IsAuto() bool {
	return m == ModeAuto
}

type AutoSettings struct {
	UseSmartTiming  bool `json:"use_smart_timing"`
	AdaptToWeather  bool `json:"adapt_to_weather"`
	AdaptToActivity bool `json:"adapt_to_activity"`
}

// ReminderSettings is handed to the scheduler as an immutable value.
// StartTime and EndTime are "HH:MM"; an EndTime earlier than StartTime
// means the window crosses midnight.
type ReminderSettings struct {
	Enabled         bool          `json:"enabled"`
	Mode            Mode          `json:"mode"`
	IntervalMinutes int           `json:"interval_minutes"`
	StartTime       string        `json:"start_time"`
	EndTime         string        `json:"end_time"`
	Auto            *AutoSettings `json:"auto_settings,omitempty"`
}

func DefaultReminderSettings() ReminderSettings {
	return ReminderSettings{
		Enabled:         false,
		Mode:            ModeManual,
		IntervalMinutes: 60,
		StartTime:       "08:00",
		EndTime:         "22:00",
		Auto: &AutoSettings{
			UseSmartTiming: true,
		},
	}
}

func (s ReminderSettings) SmartTiming() bool {
	return s.Mode.IsAuto() && s.Auto != nil && s.Auto.UseSmartTiming
}

func (s ReminderSettings) AdaptToWeather() bool {
	return s.Auto != nil && s.Auto.AdaptToWeather
}

func (s ReminderSettings) AdaptToActivity() bool {
	return s.Auto != nil && s.Auto.AdaptToActivity
}

// Validate is run by the settings layer before handing settings to the scheduler.
func (s ReminderSettings) Validate() error {
	if s.Mode != ModeAuto && s.Mode != ModeManual {
		return fmt.Errorf("%w: %q", ErrInvalidMode, s.Mode)
	}
	if s.IntervalMinutes <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidInterval, s.IntervalMinutes)
	}
	if _, err := ParseClock(s.StartTime); err != nil {
		return fmt.Errorf("start_time: %w", err)
	}
	if _, err := ParseClock(s.EndTime); err != nil {
		return fmt.Errorf("end_time: %w", err)
	}
	return nil
}

// ParseClock converts "HH:MM" into minutes since midnight.
func ParseClock(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("%w: invalid hour in %q", ErrInvalidClock, s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("%w: invalid minute in %q", ErrInvalidClock, s)
	}
	return h*60 + m, nil
}

// FormatClock returns HH:MM for minutes since midnight.
func FormatClock(mins int) string {
	if mins < 0 {
		mins = 0
	}
	return fmt.Sprintf("%02d:%02d", (mins/60)%24, mins%60)
}
