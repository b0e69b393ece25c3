package domain

// ActivityLevel scales the base interval and dose in auto mode.
type ActivityLevel string

const (
	ActivityLow    ActivityLevel = "low"
	ActivityMedium ActivityLevel = "medium"
	ActivityHigh   ActivityLevel = "high"
)

func (a ActivityLevel) String() string {
	return string(a)
}

// Multiplier returns the interval/amount multiplier and false for unknown levels.
func (a ActivityLevel) Multiplier() (float64, bool) {
	switch a {
	case ActivityLow:
		return 0.8, true
	case ActivityMedium:
		return 1.0, true
	case ActivityHigh:
		return 1.3, true
	default:
		return 0, false
	}
}

func ParseActivityLevel(s string) (ActivityLevel, error) {
	level := ActivityLevel(s)
	if _, ok := level.Multiplier(); !ok {
		return "", ErrInvalidActivityLevel
	}
	return level, nil
}

// Conditions are the environmental inputs of an adaptive calculation.
type Conditions struct {
	WeatherFactor float64
	Activity      ActivityLevel
}

func NeutralConditions() Conditions {
	return Conditions{WeatherFactor: 1.0, Activity: ActivityMedium}
}

// Apply keeps only the inputs the user opted into.
func (c Conditions) Apply(s ReminderSettings) Conditions {
	out := NeutralConditions()
	if s.AdaptToWeather() && c.WeatherFactor > 0 {
		out.WeatherFactor = c.WeatherFactor
	}
	if s.AdaptToActivity() && c.Activity != "" {
		out.Activity = c.Activity
	}
	return out
}
