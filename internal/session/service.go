// Package session owns the queueing session: it takes submissions in,
// restores the working set from the durable store at startup, and fronts the
// navigation engine for the API layer.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/streamcue/streamcue/internal/config"
	"github.com/streamcue/streamcue/internal/db"
	"github.com/streamcue/streamcue/internal/logger"
	"github.com/streamcue/streamcue/internal/models"
	"github.com/streamcue/streamcue/internal/queue"
	"gorm.io/gorm"
)

// QueueService handles business logic for the queueing session
type QueueService struct {
	engine *queue.Engine
	repos  *db.Repositories
	db     *db.DB
	cfg    *config.QueueConfig
}

// NewQueueService creates a new queue service instance
func NewQueueService(database *db.DB, repos *db.Repositories, cfg *config.QueueConfig) *QueueService {
	return &QueueService{
		engine: queue.NewEngine(db.NewQueueStore(repos), models.ItemKey),
		repos:  repos,
		db:     database,
		cfg:    cfg,
	}
}

// Submit validates a submission against the working set, persists it, and
// enqueues it. Items already queued or currently showing are rejected; an
// already-played item may be resubmitted when resubmission is enabled, in
// which case its submitter list is merged.
func (s *QueueService) Submit(ctx context.Context, item models.Item) (*models.ClipRecord, error) {
	key := models.ItemKey(item)
	snap := s.engine.Snapshot()

	if s.cfg.MaxUpcoming > 0 && len(snap.Upcoming) >= s.cfg.MaxUpcoming {
		logger.Log.Warn().
			Str("key", key).
			Int("max_upcoming", s.cfg.MaxUpcoming).
			Msg("Submission rejected: queue full")
		return nil, fmt.Errorf("failed to submit item: %w", ErrQueueFull)
	}

	if snap.Current != nil && models.ItemKey(*snap.Current) == key {
		return nil, fmt.Errorf("failed to submit item: %w", ErrDuplicateSubmission)
	}
	for _, queued := range snap.Upcoming {
		if models.ItemKey(queued) == key {
			return nil, fmt.Errorf("failed to submit item: %w", ErrDuplicateSubmission)
		}
	}

	existing, err := s.repos.Clips.GetByKey(ctx, key)
	switch {
	case err == nil:
		return s.resubmit(ctx, existing, item)
	case db.IsNotFound(err):
		// first submission, fall through
	default:
		logger.Log.Error().
			Err(err).
			Str("key", key).
			Msg("Failed to look up existing clip record")
		return nil, fmt.Errorf("failed to submit item: %w", err)
	}

	record, err := models.NewClipRecord(item, key, models.StatusApproved)
	if err != nil {
		return nil, fmt.Errorf("failed to submit item: %w", err)
	}
	if err := s.repos.Clips.Create(ctx, record); err != nil {
		if db.IsDuplicate(err) {
			return nil, fmt.Errorf("failed to submit item: %w", ErrDuplicateSubmission)
		}
		logger.Log.Error().
			Err(err).
			Str("key", key).
			Msg("Failed to persist submission")
		return nil, fmt.Errorf("failed to submit item: %w", err)
	}

	s.engine.Enqueue(item)

	logger.Log.Info().
		Str("key", key).
		Str("title", item.Title).
		Strs("submitters", item.Submitters).
		Msg("Item submitted")
	return record, nil
}

// resubmit re-queues a previously played item, merging the new submitter
// names into the stored record. The status flip and submitter merge happen
// in one transaction.
func (s *QueueService) resubmit(ctx context.Context, existing *models.ClipRecord, item models.Item) (*models.ClipRecord, error) {
	if existing.Status != models.StatusPlayed || !s.cfg.AllowResubmission {
		return nil, fmt.Errorf("failed to submit item: %w", ErrDuplicateSubmission)
	}

	storedItem, err := existing.Item()
	if err != nil {
		return nil, fmt.Errorf("failed to submit item: %w", err)
	}
	merged := mergeNames(storedItem.Submitters, item.Submitters)
	requeued := item
	requeued.Submitters = merged

	updated, err := models.NewClipRecord(requeued, existing.Key, models.StatusApproved)
	if err != nil {
		return nil, fmt.Errorf("failed to submit item: %w", err)
	}

	now := time.Now().UTC()
	err = s.db.WithTransaction(ctx, func(tx *gorm.DB) error {
		result := tx.Model(&models.ClipRecord{}).
			Where("key = ?", existing.Key).
			Updates(map[string]interface{}{
				"status":     models.StatusApproved,
				"submitters": updated.Submitters,
				"updated_at": now,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return db.ErrNotFound
		}
		return nil
	})
	if err != nil {
		logger.Log.Error().
			Err(err).
			Str("key", existing.Key).
			Msg("Failed to re-queue played item")
		return nil, fmt.Errorf("failed to submit item: %w", err)
	}

	s.engine.Enqueue(requeued)

	existing.Status = models.StatusApproved
	existing.Submitters = updated.Submitters
	existing.UpdatedAt = now

	logger.Log.Info().
		Str("key", existing.Key).
		Strs("submitters", merged).
		Msg("Played item re-queued")
	return existing, nil
}

// Advance moves the session forward one step and returns the new state
func (s *QueueService) Advance(ctx context.Context) (queue.Snapshot, error) {
	if err := s.engine.Advance(ctx); err != nil {
		return queue.Snapshot{}, err
	}
	return s.engine.Snapshot(), nil
}

// Previous moves the session backward one step and returns the new state
func (s *QueueService) Previous() queue.Snapshot {
	s.engine.Previous()
	return s.engine.Snapshot()
}

// PlayNow plays the queued item with the given key out of order
func (s *QueueService) PlayNow(ctx context.Context, key string) (queue.Snapshot, error) {
	snap := s.engine.Snapshot()
	for _, queued := range snap.Upcoming {
		if models.ItemKey(queued) == key {
			if err := s.engine.PlaySpecific(ctx, queued); err != nil {
				return queue.Snapshot{}, err
			}
			return s.engine.Snapshot(), nil
		}
	}
	return queue.Snapshot{}, fmt.Errorf("failed to play %q: %w", key, ErrItemNotFound)
}

// JumpTo moves the cursor to the history entry with the given key
func (s *QueueService) JumpTo(key string) (queue.Snapshot, error) {
	snap := s.engine.Snapshot()
	for _, entry := range snap.History {
		if models.ItemKey(entry.Item) == key {
			if err := s.engine.JumpToHistory(entry.Item); err != nil {
				return queue.Snapshot{}, err
			}
			return s.engine.Snapshot(), nil
		}
	}
	return queue.Snapshot{}, fmt.Errorf("failed to jump to %q: %w", key, queue.ErrHistoryEntryNotFound)
}

// ClearQueue empties the upcoming queue in memory and in the durable store
func (s *QueueService) ClearQueue(ctx context.Context) error {
	return s.engine.ClearQueue(ctx)
}

// ClearHistory empties the play history in memory and in the durable store
func (s *QueueService) ClearHistory(ctx context.Context) error {
	return s.engine.ClearHistory(ctx)
}

// Snapshot returns the current session state
func (s *QueueService) Snapshot() queue.Snapshot {
	return s.engine.Snapshot()
}

// Restore rebuilds the in-memory working set from durable rows: the upcoming
// queue from approved records in submission order, the play history from
// played records oldest-first. The session restarts in queue mode with no
// current item.
func (s *QueueService) Restore(ctx context.Context) error {
	approved, err := s.repos.Clips.ListByStatus(ctx, models.StatusApproved)
	if err != nil {
		return fmt.Errorf("failed to restore session: %w", err)
	}
	upcoming := make([]models.Item, 0, len(approved))
	for _, record := range approved {
		item, err := record.Item()
		if err != nil {
			return fmt.Errorf("failed to restore session: %w", err)
		}
		upcoming = append(upcoming, item)
	}

	records, err := s.repos.History.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to restore session: %w", err)
	}
	history := make([]models.PlayHistoryEntry, 0, len(records))
	for _, record := range records {
		clip, err := s.repos.Clips.GetByKey(ctx, record.ClipKey)
		if err != nil {
			if db.IsNotFound(err) {
				// History row without a clip row; skip rather than fail the boot
				logger.Log.Warn().
					Str("clip_key", record.ClipKey).
					Msg("Skipping orphaned history record during restore")
				continue
			}
			return fmt.Errorf("failed to restore session: %w", err)
		}
		item, err := clip.Item()
		if err != nil {
			return fmt.Errorf("failed to restore session: %w", err)
		}
		history = append(history, models.PlayHistoryEntry{
			ID:          record.ID,
			Item:        item,
			PlayedAt:    record.PlayedAt,
			PlayedFor:   record.PlayedFor,
			CompletedAt: record.CompletedAt,
		})
	}

	s.engine.Load(upcoming, history)
	return nil
}

// mergeNames unions two name lists, preserving first-seen order
func mergeNames(existing, added []string) []string {
	merged := make([]string, 0, len(existing)+len(added))
	seen := make(map[string]struct{}, len(existing)+len(added))
	for _, name := range existing {
		if _, ok := seen[name]; !ok {
			seen[name] = struct{}{}
			merged = append(merged, name)
		}
	}
	for _, name := range added {
		if _, ok := seen[name]; !ok {
			seen[name] = struct{}{}
			merged = append(merged, name)
		}
	}
	return merged
}
