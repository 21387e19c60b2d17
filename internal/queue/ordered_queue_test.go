package queue

import (
	"testing"

	"github.com/streamcue/streamcue/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderedQueue_FIFO(t *testing.T) {
	q := NewOrderedQueue(models.ItemKey)
	a, b := testItem("a"), testItem("b")

	q.Append(a)
	q.Append(b)
	assert.Equal(t, 2, q.Len())

	head, ok := q.DequeueFront()
	require.True(t, ok)
	assert.Equal(t, models.ItemKey(a), models.ItemKey(head))

	head, ok = q.DequeueFront()
	require.True(t, ok)
	assert.Equal(t, models.ItemKey(b), models.ItemKey(head))

	_, ok = q.DequeueFront()
	assert.False(t, ok)
}

func TestOrderedQueue_Prepend(t *testing.T) {
	q := NewOrderedQueue(models.ItemKey)
	q.Append(testItem("a"))
	q.Prepend(testItem("b"))

	items := q.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "twitch:clip:b", models.ItemKey(items[0]))
	assert.Equal(t, "twitch:clip:a", models.ItemKey(items[1]))
}

func TestOrderedQueue_Remove(t *testing.T) {
	q := NewOrderedQueue(models.ItemKey)
	a, b, c := testItem("a"), testItem("b"), testItem("c")
	q.Append(a)
	q.Append(b)
	q.Append(c)

	assert.True(t, q.Remove(b))
	items := q.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "twitch:clip:a", models.ItemKey(items[0]))
	assert.Equal(t, "twitch:clip:c", models.ItemKey(items[1]))

	// removing an absent item is a no-op
	assert.False(t, q.Remove(b))
	assert.Equal(t, 2, q.Len())
}

func TestOrderedQueue_RemoveFirstOccurrenceOnly(t *testing.T) {
	q := NewOrderedQueue(models.ItemKey)
	a := testItem("a")
	q.Append(a)
	q.Append(testItem("b"))
	q.Append(a)

	assert.True(t, q.Remove(a))
	items := q.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "twitch:clip:b", models.ItemKey(items[0]))
	assert.Equal(t, "twitch:clip:a", models.ItemKey(items[1]))
}

func TestOrderedQueue_ContainsKey(t *testing.T) {
	q := NewOrderedQueue(models.ItemKey)
	q.Append(testItem("a"))

	assert.True(t, q.ContainsKey("twitch:clip:a"))
	assert.False(t, q.ContainsKey("twitch:clip:b"))
}

func TestOrderedQueue_ItemsIsASnapshot(t *testing.T) {
	q := NewOrderedQueue(models.ItemKey)
	q.Append(testItem("a"))

	items := q.Items()
	items[0] = testItem("mutated")

	got := q.Items()
	require.Len(t, got, 1)
	assert.Equal(t, "twitch:clip:a", models.ItemKey(got[0]))
}

func TestOrderedQueue_Clear(t *testing.T) {
	q := NewOrderedQueue(models.ItemKey)
	q.Append(testItem("a"))
	q.Append(testItem("b"))

	q.Clear()
	assert.Equal(t, 0, q.Len())
	_, ok := q.DequeueFront()
	assert.False(t, ok)
}
