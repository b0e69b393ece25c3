package config

import (
	"os"
)

type Config struct {
	Port     string
	Redis    *RedisConfig
	Reminder *ReminderConfig
	Notify   *NotifyConfig
}

func Load() (*Config, error) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	redisConfig, err := LoadRedisConfig()
	if err != nil {
		return nil, err
	}

	reminderConfig, err := LoadReminderConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:     port,
		Redis:    redisConfig,
		Reminder: reminderConfig,
		Notify:   LoadNotifyConfig(),
	}, nil
}
