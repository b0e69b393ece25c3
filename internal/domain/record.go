package domain

import (
	"time"
)

type Record struct {
	ID        string
	UserID    string
	Tracker   Tracker
	Amount    float64
	Timestamp time.Time
	Note      string
}

func NewRecord(id, userID string, tracker Tracker, amount float64, timestamp time.Time, note string) (*Record, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	return &Record{
		ID:        id,
		UserID:    userID,
		Tracker:   tracker,
		Amount:    amount,
		Timestamp: timestamp,
		Note:      note,
	}, nil
}

// Edit replaces amount and note. The timestamp is preserved.
func (r *Record) Edit(amount float64, note string) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	r.Amount = amount
	r.Note = note
	return nil
}

// SumSince totals the amounts recorded in (now-window, now].
func SumSince(records []Record, now time.Time, window time.Duration) float64 {
	total := 0.0
	for _, r := range records {
		elapsed := now.Sub(r.Timestamp)
		if elapsed >= 0 && elapsed <= window {
			total += r.Amount
		}
	}
	return total
}

// Latest returns the most recent record, or nil when there are none.
func Latest(records []Record) *Record {
	var latest *Record
	for i := range records {
		if latest == nil || records[i].Timestamp.After(latest.Timestamp) {
			latest = &records[i]
		}
	}
	return latest
}
