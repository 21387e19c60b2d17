package db

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/streamcue/streamcue/internal/models"
)

// QueueStore adapts the clip and history repositories to the persistence
// port the navigation engine writes through. Each method is a single
// statement or transaction, so the engine's atomic-write assumption holds
// call by call.
type QueueStore struct {
	repos *Repositories
}

// NewQueueStore creates a queue store over the given repositories
func NewQueueStore(repos *Repositories) *QueueStore {
	return &QueueStore{repos: repos}
}

// SetItemStatus updates the durable status of the clip with the given key
func (s *QueueStore) SetItemStatus(ctx context.Context, key string, status models.ItemStatus) error {
	return s.repos.Clips.UpdateStatus(ctx, key, status)
}

// RemoveQueuedItems takes exactly the clips with the given keys out of the
// durable queue, keeping history-backed records as played archives
func (s *QueueStore) RemoveQueuedItems(ctx context.Context, keys []string) error {
	return s.repos.Clips.RemoveFromQueue(ctx, keys)
}

// AppendHistoryRecord durably logs a completed playback and returns the assigned handle
func (s *QueueStore) AppendHistoryRecord(ctx context.Context, key string, playedAt time.Time, playedFor int, completedAt time.Time) (uuid.UUID, error) {
	return s.repos.History.Append(ctx, key, playedAt, playedFor, completedAt)
}

// ClearHistory removes every durable history record
func (s *QueueStore) ClearHistory(ctx context.Context) error {
	return s.repos.History.DeleteAll(ctx)
}
