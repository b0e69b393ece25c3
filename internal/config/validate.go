package config

import (
	"errors"
	"net/url"
)

func ValidateForRun(cfg *Config) error {
	var errs []error

	if err := cfg.Redis.Validate(); err != nil {
		errs = append(errs, err)
	}

	if cfg.Notify != nil && cfg.Notify.WebhookURL != "" {
		u, err := url.Parse(cfg.Notify.WebhookURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, ErrInvalidWebhookURL)
		}
	}

	return errors.Join(errs...)
}
