package config

import (
	"os"
	"strconv"
)

const (
	notifyWebhookURLEnv = "NOTIFY_WEBHOOK_URL"
	notifyMaxRetriesEnv = "NOTIFY_MAX_RETRIES"

	gcloudProjectIDEnv  = "GCLOUD_PROJECT_ID"
	gcloudLocationIDEnv = "GCLOUD_LOCATION_ID"
	gcloudQueueIDEnv    = "GCLOUD_QUEUE_ID"
	gcloudTargetURLEnv  = "GCLOUD_TARGET_URL"

	defaultNotifyMaxRetries = 3
)

// NotifyConfig selects the notification sink. Cloud Tasks wins on gcloud
// builds when fully configured, then the webhook, then the log sink.
type NotifyConfig struct {
	WebhookURL string
	MaxRetries int

	GCloudProjectID  string
	GCloudLocationID string
	GCloudQueueID    string
	GCloudTargetURL  string
}

func LoadNotifyConfig() *NotifyConfig {
	maxRetries := defaultNotifyMaxRetries
	if v := os.Getenv(notifyMaxRetriesEnv); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			maxRetries = parsed
		}
	}

	return &NotifyConfig{
		WebhookURL: os.Getenv(notifyWebhookURLEnv),
		MaxRetries: maxRetries,

		GCloudProjectID:  os.Getenv(gcloudProjectIDEnv),
		GCloudLocationID: os.Getenv(gcloudLocationIDEnv),
		GCloudQueueID:    os.Getenv(gcloudQueueIDEnv),
		GCloudTargetURL:  os.Getenv(gcloudTargetURLEnv),
	}
}

func (c *NotifyConfig) CloudTasksConfigured() bool {
	return c.GCloudProjectID != "" && c.GCloudLocationID != "" &&
		c.GCloudQueueID != "" && c.GCloudTargetURL != ""
}
