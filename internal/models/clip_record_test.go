package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClipRecord_AndBack(t *testing.T) {
	postedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	item := Item{
		Provider:    "twitch",
		ContentType: ContentTypeClip,
		ProviderID:  "abc123",
		URL:         "https://clips.example.com/abc123",
		EmbedURL:    "https://clips.example.com/embed/abc123",
		Thumbnail:   "https://clips.example.com/abc123.jpg",
		Title:       "Great play",
		Channel:     "somechannel",
		Creator:     "clipper",
		Submitters:  []string{"viewer1", "viewer2"},
		Category:    "Just Chatting",
		PostedAt:    &postedAt,
		Duration:    27,
		Personas:    []string{"host"},
	}
	key := ItemKey(item)

	record, err := NewClipRecord(item, key, StatusApproved)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, record.ID)
	assert.Equal(t, key, record.Key)
	assert.Equal(t, StatusApproved, record.Status)
	assert.Equal(t, `["viewer1","viewer2"]`, record.Submitters)
	require.NotNil(t, record.Category)
	assert.Equal(t, "Just Chatting", *record.Category)
	assert.False(t, record.SubmittedAt.IsZero())

	got, err := record.Item()
	require.NoError(t, err)
	assert.Equal(t, item, got)
}

func TestNewClipRecord_EmptyOptionals(t *testing.T) {
	item := Item{
		Provider:    "twitch",
		ContentType: ContentTypeClip,
		ProviderID:  "abc123",
		URL:         "https://clips.example.com/abc123",
		Title:       "Untitled",
	}

	record, err := NewClipRecord(item, ItemKey(item), StatusQueued)
	require.NoError(t, err)
	assert.Equal(t, "[]", record.Submitters)
	assert.Equal(t, "[]", record.Personas)
	assert.Nil(t, record.Category)

	got, err := record.Item()
	require.NoError(t, err)
	assert.Equal(t, item, got)
}
