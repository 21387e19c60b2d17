package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/streamcue/streamcue/internal/models"
)

// HistoryRepository handles database operations for play history records.
// History rows are append-only: nothing updates them and the only removal is
// the bulk delete behind a history clear.
type HistoryRepository struct {
	db *DB
}

// NewHistoryRepository creates a new history repository
func NewHistoryRepository(db *DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Append inserts a completed playback record for the clip with the given key
// and returns the assigned durable handle. playedAt is when playback began,
// playedFor its length in seconds, completedAt when it was archived.
func (r *HistoryRepository) Append(ctx context.Context, key string, playedAt time.Time, playedFor int, completedAt time.Time) (uuid.UUID, error) {
	record := &models.HistoryRecord{
		ID:          uuid.New(),
		ClipKey:     key,
		PlayedAt:    playedAt,
		PlayedFor:   &playedFor,
		CompletedAt: &completedAt,
		CreatedAt:   time.Now().UTC(),
	}
	result := r.db.WithContext(ctx).Create(record)
	if result.Error != nil {
		return uuid.Nil, fmt.Errorf("failed to append history record: %w", MapGormError(result.Error))
	}
	return record.ID, nil
}

// List retrieves all history records ordered oldest-first
func (r *HistoryRepository) List(ctx context.Context) ([]*models.HistoryRecord, error) {
	var records []*models.HistoryRecord
	result := r.db.WithContext(ctx).
		Order("played_at ASC, created_at ASC").
		Find(&records)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list history records: %w", MapGormError(result.Error))
	}
	return records, nil
}

// DeleteAll removes every history record
func (r *HistoryRepository) DeleteAll(ctx context.Context) error {
	result := r.db.WithContext(ctx).
		Where("1 = 1").
		Delete(&models.HistoryRecord{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete history records: %w", MapGormError(result.Error))
	}
	return nil
}
