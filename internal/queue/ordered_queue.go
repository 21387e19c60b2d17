package queue

import "github.com/streamcue/streamcue/internal/models"

// OrderedQueue is a FIFO container of upcoming items. Insertion order is the
// only ordering; identity is the derived item key. Absence is reported
// through return values, never panics. Not safe for concurrent mutation —
// the engine serializes access.
type OrderedQueue struct {
	items []models.Item
	key   models.KeyFunc
}

// NewOrderedQueue creates an empty queue using the given key derivation
func NewOrderedQueue(key models.KeyFunc) *OrderedQueue {
	return &OrderedQueue{key: key}
}

// Append adds an item to the tail. The queue does not deduplicate on append;
// duplicates by key are the caller's responsibility.
func (q *OrderedQueue) Append(item models.Item) {
	q.items = append(q.items, item)
}

// DequeueFront removes and returns the head item.
// The second return is false when the queue is empty.
func (q *OrderedQueue) DequeueFront() (models.Item, bool) {
	if len(q.items) == 0 {
		return models.Item{}, false
	}
	head := q.items[0]
	q.items = q.items[1:]
	return head, true
}

// Prepend inserts an item at the head, ahead of everything queued
func (q *OrderedQueue) Prepend(item models.Item) {
	q.items = append([]models.Item{item}, q.items...)
}

// Remove deletes the first occurrence matching the item's key.
// Removing an absent item is a no-op and returns false.
func (q *OrderedQueue) Remove(item models.Item) bool {
	target := q.key(item)
	for i, queued := range q.items {
		if q.key(queued) == target {
			q.items = append(q.items[:i], q.items[i+1:]...)
			return true
		}
	}
	return false
}

// ContainsKey reports whether any queued item derives the given key
func (q *OrderedQueue) ContainsKey(key string) bool {
	for _, queued := range q.items {
		if q.key(queued) == key {
			return true
		}
	}
	return false
}

// Items returns a snapshot of the queue, head first. Mutating the returned
// slice does not affect the queue.
func (q *OrderedQueue) Items() []models.Item {
	snapshot := make([]models.Item, len(q.items))
	copy(snapshot, q.items)
	return snapshot
}

// Len returns the number of queued items
func (q *OrderedQueue) Len() int {
	return len(q.items)
}

// Clear empties the queue
func (q *OrderedQueue) Clear() {
	q.items = nil
}
