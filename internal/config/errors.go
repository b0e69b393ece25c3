package config

import "errors"

var (
	ErrRedisAddrMissing       = errors.New("REDIS_ADDR is required")
	ErrInvalidRedisDB         = errors.New("REDIS_DB must be a valid integer")
	ErrInvalidTimezone        = errors.New("REMINDER_TIMEZONE must be a valid IANA time zone")
	ErrInvalidDefaultActivity = errors.New("REMINDER_DEFAULT_ACTIVITY must be one of low, medium, high")
	ErrInvalidWeatherFactor   = errors.New("REMINDER_DEFAULT_WEATHER_FACTOR must be a positive number")
	ErrInvalidWebhookURL      = errors.New("NOTIFY_WEBHOOK_URL must be an absolute http(s) URL")
)
