package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/primind-habit-reminder/internal/domain"
)

type recordData struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Tracker   string    `json:"tracker"`
	Amount    float64   `json:"amount"`
	Timestamp time.Time `json:"timestamp"`
	Note      string    `json:"note,omitempty"`
}

// recordRepository keeps a hash of records per scope plus a sorted set
// indexing record IDs by timestamp.
type recordRepository struct {
	client *redis.Client
}

func NewRecordRepository(client *redis.Client) domain.RecordRepository {
	return &recordRepository{
		client: client,
	}
}

func (r *recordRepository) Save(ctx context.Context, record *domain.Record) error {
	if record == nil {
		return ErrInvalidRecordData
	}

	data, err := json.Marshal(recordData{
		ID:        record.ID,
		UserID:    record.UserID,
		Tracker:   record.Tracker.String(),
		Amount:    record.Amount,
		Timestamp: record.Timestamp,
		Note:      record.Note,
	})
	if err != nil {
		return ErrInvalidRecordData
	}

	s := scope(record.UserID, record.Tracker)

	pipe := r.client.TxPipeline()
	pipe.HSet(ctx, recordKeyPrefix+s, record.ID, data)
	pipe.ZAdd(ctx, recordIndexKeyPrefix+s, redis.Z{
		Score:  float64(record.Timestamp.UnixMilli()),
		Member: record.ID,
	})

	_, err = pipe.Exec(ctx)
	return err
}

func (r *recordRepository) Get(ctx context.Context, userID string, tracker domain.Tracker, id string) (*domain.Record, error) {
	data, err := r.client.HGet(ctx, recordKeyPrefix+scope(userID, tracker), id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, err
	}

	return decodeRecord(data)
}

// List returns records ordered by timestamp.
func (r *recordRepository) List(ctx context.Context, userID string, tracker domain.Tracker) ([]domain.Record, error) {
	s := scope(userID, tracker)

	ids, err := r.client.ZRange(ctx, recordIndexKeyPrefix+s, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []domain.Record{}, nil
	}

	values, err := r.client.HMGet(ctx, recordKeyPrefix+s, ids...).Result()
	if err != nil {
		return nil, err
	}

	records := make([]domain.Record, 0, len(values))
	for _, v := range values {
		raw, ok := v.(string)
		if !ok {
			// Index entry without a record body.
			continue
		}
		record, err := decodeRecord([]byte(raw))
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}

	return records, nil
}

func (r *recordRepository) Delete(ctx context.Context, userID string, tracker domain.Tracker, id string) error {
	s := scope(userID, tracker)

	pipe := r.client.TxPipeline()
	deleted := pipe.HDel(ctx, recordKeyPrefix+s, id)
	pipe.ZRem(ctx, recordIndexKeyPrefix+s, id)

	if _, err := pipe.Exec(ctx); err != nil {
		return err
	}
	if deleted.Val() == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}

func decodeRecord(data []byte) (*domain.Record, error) {
	var rec recordData
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, ErrInvalidRecordData
	}

	return &domain.Record{
		ID:        rec.ID,
		UserID:    rec.UserID,
		Tracker:   domain.Tracker(rec.Tracker),
		Amount:    rec.Amount,
		Timestamp: rec.Timestamp,
		Note:      rec.Note,
	}, nil
}
