package queue

import (
	"time"

	"github.com/streamcue/streamcue/internal/models"
)

// cursor selects between the engine's two navigation modes. In queue mode
// the current item derives from the queue; in history mode it is pinned to a
// play-history index. The tagged form keeps "history mode without an index"
// unrepresentable, instead of overloading a raw -1.
type cursor struct {
	inHistory bool
	index     int
}

func queueCursor() cursor {
	return cursor{}
}

func historyCursor(index int) cursor {
	return cursor{inHistory: true, index: index}
}

// position reports the cursor as the conventional integer form:
// -1 in queue mode, the history index otherwise.
func (c cursor) position() int {
	if !c.inHistory {
		return -1
	}
	return c.index
}

// State is the aggregate the engine navigates: a nullable current item, the
// upcoming queue, the play log, and the mode cursor. One State exists per
// queueing session; it is rebuilt from durable rows at startup and never
// serialized wholesale.
type State struct {
	current *models.Item
	queue   *OrderedQueue
	history *PlayHistory
	cursor  cursor

	// startedAt marks when a queue-mode current began playing; it feeds the
	// playback timing written to history on archive. Unused in history mode.
	startedAt time.Time
}

// NewState creates an empty session state in queue mode
func NewState(key models.KeyFunc) *State {
	return &State{
		queue:   NewOrderedQueue(key),
		history: NewPlayHistory(),
		cursor:  queueCursor(),
	}
}

// Snapshot is a point-in-time copy of engine state for rendering.
// HistoryPosition is -1 in queue mode.
type Snapshot struct {
	Current         *models.Item
	Upcoming        []models.Item
	History         []models.PlayHistoryEntry
	HistoryPosition int
}

func (s *State) snapshot() Snapshot {
	snap := Snapshot{
		Upcoming:        s.queue.Items(),
		History:         s.history.All(),
		HistoryPosition: s.cursor.position(),
	}
	if s.current != nil {
		current := *s.current
		snap.Current = &current
	}
	return snap
}
