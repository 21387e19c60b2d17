package queue

import "github.com/streamcue/streamcue/internal/models"

// PlayHistory is the in-memory append-only log of what has played, in order.
// It is the single source of truth for playback ordering — the engine never
// reconstructs ordering from the queue. Entries are never mutated or removed
// individually; the only removal is a bulk Clear.
type PlayHistory struct {
	entries []models.PlayHistoryEntry
}

// NewPlayHistory creates an empty play log
func NewPlayHistory() *PlayHistory {
	return &PlayHistory{}
}

// Append adds an entry to the tail. The durable ID must already be assigned
// by the persistence port.
func (h *PlayHistory) Append(entry models.PlayHistoryEntry) {
	h.entries = append(h.entries, entry)
}

// At returns the entry at index i. Callers must check Len first.
func (h *PlayHistory) At(i int) models.PlayHistoryEntry {
	return h.entries[i]
}

// All returns a snapshot ordered oldest-first
func (h *PlayHistory) All() []models.PlayHistoryEntry {
	snapshot := make([]models.PlayHistoryEntry, len(h.entries))
	copy(snapshot, h.entries)
	return snapshot
}

// Len returns the number of logged entries
func (h *PlayHistory) Len() int {
	return len(h.entries)
}

// Clear empties the log
func (h *PlayHistory) Clear() {
	h.entries = nil
}
