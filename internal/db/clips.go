package db

import (
	"context"
	"fmt"
	"time"

	"github.com/streamcue/streamcue/internal/models"
	"gorm.io/gorm"
)

// ClipRepository handles database operations for submitted clip records
type ClipRepository struct {
	db *DB
}

// NewClipRepository creates a new clip repository
func NewClipRepository(db *DB) *ClipRepository {
	return &ClipRepository{db: db}
}

// Create inserts a new clip record into the database
func (r *ClipRepository) Create(ctx context.Context, record *models.ClipRecord) error {
	result := r.db.WithContext(ctx).Create(record)
	if result.Error != nil {
		return fmt.Errorf("failed to create clip record: %w", MapGormError(result.Error))
	}
	return nil
}

// GetByKey retrieves a clip record by its derived item key
func (r *ClipRepository) GetByKey(ctx context.Context, key string) (*models.ClipRecord, error) {
	var record models.ClipRecord
	result := r.db.WithContext(ctx).Where("key = ?", key).First(&record)
	if result.Error != nil {
		return nil, MapGormError(result.Error)
	}
	return &record, nil
}

// ListByStatus retrieves all clip records with the given status in submission order
func (r *ClipRepository) ListByStatus(ctx context.Context, status models.ItemStatus) ([]*models.ClipRecord, error) {
	var records []*models.ClipRecord
	result := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("submitted_at ASC, key ASC").
		Find(&records)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list clips by status: %w", MapGormError(result.Error))
	}
	return records, nil
}

// UpdateStatus updates the lifecycle status of the clip with the given key
func (r *ClipRepository) UpdateStatus(ctx context.Context, key string, status models.ItemStatus) error {
	result := r.db.WithContext(ctx).
		Model(&models.ClipRecord{}).
		Where("key = ?", key).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update clip status: %w", MapGormError(result.Error))
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// RemoveFromQueue takes the clips with the given keys out of the queue.
// Clips that back play history rows keep their record as a played archive
// (the history table references them by key); the rest are deleted. Both
// writes happen in one transaction.
func (r *ClipRepository) RemoveFromQueue(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	err := r.db.WithTransaction(ctx, func(tx *gorm.DB) error {
		backed := tx.Model(&models.HistoryRecord{}).Select("clip_key")
		result := tx.Model(&models.ClipRecord{}).
			Where("key IN ?", keys).
			Where("key IN (?)", backed).
			Updates(map[string]interface{}{
				"status":     models.StatusPlayed,
				"updated_at": time.Now().UTC(),
			})
		if result.Error != nil {
			return result.Error
		}

		backed = tx.Model(&models.HistoryRecord{}).Select("clip_key")
		result = tx.Where("key IN ?", keys).
			Where("key NOT IN (?)", backed).
			Delete(&models.ClipRecord{})
		return result.Error
	})
	if err != nil {
		return fmt.Errorf("failed to remove queued clips: %w", MapGormError(err))
	}
	return nil
}

// ExistsByKey reports whether a clip record with the given key exists
func (r *ClipRepository) ExistsByKey(ctx context.Context, key string) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&models.ClipRecord{}).
		Where("key = ?", key).
		Count(&count)
	if result.Error != nil {
		return false, fmt.Errorf("failed to check clip existence: %w", MapGormError(result.Error))
	}
	return count > 0, nil
}
