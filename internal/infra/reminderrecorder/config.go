package reminderrecorder

import (
	"os"
	"strconv"
)

type Config struct {
	Disabled bool

	InfluxDBURL    string
	InfluxDBToken  string
	InfluxDBOrg    string
	InfluxDBBucket string

	BigQueryProjectID string
	BigQueryDataset   string
	BigQueryTable     string
	BigQueryBatchSize int
	// BigQueryEndpoint overrides the API endpoint, e.g. for an emulator.
	BigQueryEndpoint  string
}

func LoadConfig() *Config {
	cfg := &Config{
		Disabled: os.Getenv("REMINDER_EVENTS_DISABLED") == "true",

		InfluxDBURL:    getEnvOrDefault("INFLUXDB_URL", "http://localhost:8086"),
		InfluxDBToken:  os.Getenv("INFLUXDB_TOKEN"),
		InfluxDBOrg:    os.Getenv("INFLUXDB_ORG"),
		InfluxDBBucket: getEnvOrDefault("INFLUXDB_BUCKET", "reminder_events"),

		BigQueryProjectID: getEnvOrDefault("BIGQUERY_PROJECT_ID", os.Getenv("GOOGLE_CLOUD_PROJECT")),
		BigQueryDataset:   getEnvOrDefault("BIGQUERY_DATASET", "reminder_events"),
		BigQueryTable:     getEnvOrDefault("BIGQUERY_TABLE", "reminder_events"),
		BigQueryBatchSize: 50,
		BigQueryEndpoint:  os.Getenv("BIGQUERY_ENDPOINT"),
	}

	if v := os.Getenv("BIGQUERY_BATCH_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.BigQueryBatchSize = n
		}
	}

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
