package repository

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/primind-habit-reminder/internal/domain"
)

type settingsRepository struct {
	client *redis.Client
}

func NewSettingsRepository(client *redis.Client) domain.SettingsRepository {
	return &settingsRepository{
		client: client,
	}
}

func (r *settingsRepository) GetSettings(ctx context.Context, userID string, tracker domain.Tracker) (*domain.ReminderSettings, error) {
	data, err := r.client.Get(ctx, settingsKeyPrefix+scope(userID, tracker)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrSettingsNotFound
		}
		return nil, err
	}

	var settings domain.ReminderSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, ErrInvalidSettingsData
	}

	return &settings, nil
}

// SaveSettings stores the settings and keeps the enabled index in step.
func (r *settingsRepository) SaveSettings(ctx context.Context, userID string, tracker domain.Tracker, settings domain.ReminderSettings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return ErrInvalidSettingsData
	}

	s := scope(userID, tracker)

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, settingsKeyPrefix+s, data, 0)
	if settings.Enabled {
		pipe.SAdd(ctx, enabledSettingsKey, s)
	} else {
		pipe.SRem(ctx, enabledSettingsKey, s)
	}

	_, err = pipe.Exec(ctx)
	return err
}

func (r *settingsRepository) ListEnabled(ctx context.Context) ([]domain.ReminderTarget, error) {
	members, err := r.client.SMembers(ctx, enabledSettingsKey).Result()
	if err != nil {
		return nil, err
	}

	targets := make([]domain.ReminderTarget, 0, len(members))
	for _, m := range members {
		target, ok := parseScope(m)
		if !ok {
			slog.WarnContext(ctx, "ignoring malformed enabled reminder entry",
				slog.String("entry", m),
			)
			continue
		}
		targets = append(targets, target)
	}

	return targets, nil
}
