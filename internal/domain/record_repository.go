package domain

import "context"

//go:generate mockgen -source=record_repository.go -destination=record_repository_mock.go -package=domain

// RecordRepository returns records unordered.
type RecordRepository interface {
	Save(ctx context.Context, record *Record) error
	Get(ctx context.Context, userID string, tracker Tracker, id string) (*Record, error)
	List(ctx context.Context, userID string, tracker Tracker) ([]Record, error)
	Delete(ctx context.Context, userID string, tracker Tracker, id string) error
}
