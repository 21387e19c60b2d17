package queue

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/streamcue/streamcue/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func historyEntry(id string) models.PlayHistoryEntry {
	return models.PlayHistoryEntry{
		ID:       uuid.New(),
		Item:     testItem(id),
		PlayedAt: time.Now().UTC(),
	}
}

func TestPlayHistory_AppendOrder(t *testing.T) {
	h := NewPlayHistory()
	h.Append(historyEntry("a"))
	h.Append(historyEntry("b"))

	require.Equal(t, 2, h.Len())
	all := h.All()
	assert.Equal(t, "twitch:clip:a", models.ItemKey(all[0].Item))
	assert.Equal(t, "twitch:clip:b", models.ItemKey(all[1].Item))
	assert.Equal(t, models.ItemKey(all[1].Item), models.ItemKey(h.At(1).Item))
}

func TestPlayHistory_AllIsASnapshot(t *testing.T) {
	h := NewPlayHistory()
	h.Append(historyEntry("a"))

	all := h.All()
	all[0] = historyEntry("mutated")

	assert.Equal(t, "twitch:clip:a", models.ItemKey(h.At(0).Item))
}

func TestPlayHistory_Clear(t *testing.T) {
	h := NewPlayHistory()
	h.Append(historyEntry("a"))

	h.Clear()
	assert.Equal(t, 0, h.Len())
	assert.Empty(t, h.All())
}
