// Package queue implements the navigation engine for a live content-queueing
// session: one shared "now playing" slot, a FIFO queue of upcoming items, and
// an append-only play history the operator can rewind into. Durable writes go
// through an injected Store; the engine keeps in-memory state consistent with
// the store by persisting before it mutates and restoring snapshots when a
// write fails.
package queue

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/streamcue/streamcue/internal/logger"
	"github.com/streamcue/streamcue/internal/models"
)

// Store is the persistence port the engine writes through. Implementations
// must treat each call as atomic (the durable record either exists afterwards
// or it does not) and must return errors rather than silently no-op. The
// engine never retries; retry policy belongs to the port or the caller.
type Store interface {
	// SetItemStatus updates the durable lifecycle status of the item with the given key
	SetItemStatus(ctx context.Context, key string, status models.ItemStatus) error
	// RemoveQueuedItems takes exactly the items with the given keys out of the
	// durable queue. Records backing play history entries must survive as
	// played archives; records outside the key set are never touched.
	RemoveQueuedItems(ctx context.Context, keys []string) error
	// AppendHistoryRecord durably logs a completed playback and returns the assigned handle
	AppendHistoryRecord(ctx context.Context, key string, playedAt time.Time, playedFor int, completedAt time.Time) (uuid.UUID, error)
	// ClearHistory removes every durable history record
	ClearHistory(ctx context.Context) error
}

// Engine navigates a single session's queue/history state. All operations
// are serialized by an internal mutex: the state has one logical owner and
// no operation may observe another mid-flight. Once a persistence call is
// issued the operation runs to completion (commit or rollback) before
// returning.
type Engine struct {
	mu    sync.Mutex
	state *State
	store Store
	key   models.KeyFunc
}

// NewEngine creates an engine over an empty session state
func NewEngine(store Store, key models.KeyFunc) *Engine {
	return &Engine{
		state: NewState(key),
		store: store,
		key:   key,
	}
}

// Load replaces the session state from durable rows: queued items in
// submission order and history entries oldest-first. The session restarts in
// queue mode with no current item.
func (e *Engine) Load(upcoming []models.Item, history []models.PlayHistoryEntry) {
	e.mu.Lock()
	defer e.mu.Unlock()

	state := NewState(e.key)
	for _, item := range upcoming {
		state.queue.Append(item)
	}
	for _, entry := range history {
		state.history.Append(entry)
	}
	e.state = state

	logger.Log.Info().
		Int("upcoming", len(upcoming)).
		Int("history", len(history)).
		Msg("Session state loaded")
}

// Enqueue appends an item to the tail of the upcoming queue.
// Deduplication by key is the caller's responsibility.
func (e *Engine) Enqueue(item models.Item) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.queue.Append(item)
}

// Snapshot returns a point-in-time copy of the session state
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.snapshot()
}

// Advance moves forward one step. Inside history it walks toward the newest
// entry; at the newest entry it crosses back into the queue if anything is
// waiting, and stays put otherwise. In queue mode it archives the current
// item to play history (durably first, then in memory) and promotes the
// queue head. Advancing with nothing to advance to is a no-op, not an error.
func (e *Engine) Advance(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	st := e.state
	if st.cursor.inHistory {
		if st.cursor.index < st.history.Len()-1 {
			st.cursor = historyCursor(st.cursor.index + 1)
			entry := st.history.At(st.cursor.index)
			st.current = &entry.Item
			return nil
		}
		// At the newest history entry: cross into the queue if possible.
		// Re-entering the queue must not re-log the entry we were sitting on.
		next, ok := st.queue.DequeueFront()
		if !ok {
			return nil
		}
		st.cursor = queueCursor()
		st.current = &next
		st.startedAt = time.Now().UTC()
		logger.Log.Debug().
			Str("key", e.key(next)).
			Msg("Advanced out of history into queue")
		return nil
	}

	if st.current != nil {
		if err := e.archiveCurrent(ctx); err != nil {
			return err
		}
	}

	if next, ok := st.queue.DequeueFront(); ok {
		st.current = &next
		st.startedAt = time.Now().UTC()
	} else {
		st.current = nil
	}
	return nil
}

// Previous moves backward one step. History is immutable, so retreating
// never persists. From queue mode it enters history at the newest entry;
// inside history it walks toward the oldest entry and stops there.
func (e *Engine) Previous() {
	e.mu.Lock()
	defer e.mu.Unlock()

	st := e.state
	if st.cursor.inHistory {
		if st.cursor.index == 0 {
			return
		}
		st.cursor = historyCursor(st.cursor.index - 1)
		entry := st.history.At(st.cursor.index)
		st.current = &entry.Item
		return
	}

	if st.history.Len() == 0 {
		return
	}
	st.cursor = historyCursor(st.history.Len() - 1)
	entry := st.history.At(st.cursor.index)
	st.current = &entry.Item
}

// PlaySpecific plays an item out of order. A current queue-mode item is
// archived exactly as in Advance; the target is removed from the queue
// (a no-op if absent) and becomes current. Selecting from the queue always
// returns the session to queue mode.
func (e *Engine) PlaySpecific(ctx context.Context, item models.Item) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	st := e.state
	if !st.cursor.inHistory && st.current != nil {
		if err := e.archiveCurrent(ctx); err != nil {
			return err
		}
	}

	st.queue.Remove(item)
	st.current = &item
	st.cursor = queueCursor()
	st.startedAt = time.Now().UTC()

	logger.Log.Info().
		Str("key", e.key(item)).
		Msg("Playing item out of order")
	return nil
}

// JumpToHistory moves the cursor to an arbitrary past entry, located by key.
// A displaced current item is preserved at the head of the queue unless it is
// the jump target itself or already queued. No durable state changes: only
// the cursor and the transient queue move.
func (e *Engine) JumpToHistory(item models.Item) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	st := e.state
	target := e.key(item)
	index := -1
	for i := 0; i < st.history.Len(); i++ {
		if e.key(st.history.At(i).Item) == target {
			index = i
			break
		}
	}
	if index == -1 {
		return fmt.Errorf("failed to jump to %q: %w", target, ErrHistoryEntryNotFound)
	}

	if st.current != nil {
		currentKey := e.key(*st.current)
		if currentKey != target && !st.queue.ContainsKey(currentKey) {
			st.queue.Prepend(*st.current)
		}
	}
	// A previously displaced copy of the target may still sit in the queue;
	// it is about to be current, so it cannot stay queued too.
	st.queue.Remove(item)

	st.cursor = historyCursor(index)
	entry := st.history.At(index)
	st.current = &entry.Item

	logger.Log.Info().
		Str("key", target).
		Int("history_position", index).
		Msg("Jumped to history entry")
	return nil
}

// ClearQueue empties the upcoming queue and removes exactly the snapshotted
// items from the durable store; the current item's record and play history
// are never touched. If the durable removal fails the snapshotted items are
// restored in order and the failure is returned.
func (e *Engine) ClearQueue(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	st := e.state
	snapshot := st.queue.Items()
	keys := make([]string, len(snapshot))
	for i, item := range snapshot {
		keys[i] = e.key(item)
	}
	st.queue.Clear()

	if err := e.store.RemoveQueuedItems(ctx, keys); err != nil {
		for _, item := range snapshot {
			st.queue.Append(item)
		}
		logger.Log.Error().
			Err(err).
			Int("restored", len(snapshot)).
			Msg("Failed to clear queue, in-memory queue restored")
		return fmt.Errorf("failed to clear queue: %w", err)
	}

	logger.Log.Info().
		Int("removed", len(snapshot)).
		Msg("Queue cleared")
	return nil
}

// ClearHistory deletes every durable history record, then empties the
// in-memory play log. If the session was parked inside history the cursor
// would now dangle, so it is forced back to queue mode and the current item
// cleared; a queue-mode current came from the queue and is kept.
func (e *Engine) ClearHistory(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	st := e.state
	if err := e.store.ClearHistory(ctx); err != nil {
		logger.Log.Error().
			Err(err).
			Msg("Failed to clear play history")
		return fmt.Errorf("failed to clear history: %w", err)
	}

	removed := st.history.Len()
	st.history.Clear()
	if st.cursor.inHistory {
		st.cursor = queueCursor()
		st.current = nil
	}

	logger.Log.Info().
		Int("removed", removed).
		Msg("Play history cleared")
	return nil
}

// archiveCurrent durably logs the current item as played, then appends it to
// the in-memory play history. PlayedAt is the moment the item became current
// and CompletedAt the moment it was archived. Persistence happens before any
// in-memory mutation, so a port failure leaves the state exactly as it was
// when the operation began. Caller holds the mutex and guarantees current is
// non-nil.
func (e *Engine) archiveCurrent(ctx context.Context) error {
	st := e.state
	current := *st.current
	key := e.key(current)

	completedAt := time.Now().UTC()
	playedAt := st.startedAt
	if playedAt.IsZero() {
		playedAt = completedAt
	}
	playedFor := int(completedAt.Sub(playedAt).Seconds())

	id, err := e.store.AppendHistoryRecord(ctx, key, playedAt, playedFor, completedAt)
	if err != nil {
		logger.Log.Error().
			Err(err).
			Str("key", key).
			Msg("Failed to append history record")
		return fmt.Errorf("failed to archive current item: %w", err)
	}
	if err := e.store.SetItemStatus(ctx, key, models.StatusPlayed); err != nil {
		logger.Log.Error().
			Err(err).
			Str("key", key).
			Msg("Failed to mark item as played")
		return fmt.Errorf("failed to archive current item: %w", err)
	}

	st.history.Append(models.PlayHistoryEntry{
		ID:          id,
		Item:        current,
		PlayedAt:    playedAt,
		PlayedFor:   &playedFor,
		CompletedAt: &completedAt,
	})
	return nil
}
