package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestItemKey(t *testing.T) {
	tests := []struct {
		name string
		item Item
		want string
	}{
		{
			name: "clip",
			item: Item{Provider: "twitch", ContentType: ContentTypeClip, ProviderID: "abc123"},
			want: "twitch:clip:abc123",
		},
		{
			name: "video without start offset",
			item: Item{Provider: "twitch", ContentType: ContentTypeVideo, ProviderID: "v42"},
			want: "twitch:video:v42",
		},
		{
			name: "video with start offset gets a suffix",
			item: Item{Provider: "twitch", ContentType: ContentTypeVideo, ProviderID: "v42", StartTime: 3600},
			want: "twitch:video:v42:3600",
		},
		{
			name: "start offset ignored for clips",
			item: Item{Provider: "twitch", ContentType: ContentTypeClip, ProviderID: "abc123", StartTime: 3600},
			want: "twitch:clip:abc123",
		},
		{
			name: "highlight",
			item: Item{Provider: "youtube", ContentType: ContentTypeHighlight, ProviderID: "h9"},
			want: "youtube:highlight:h9",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ItemKey(tt.item))
		})
	}
}

func TestItemKey_DistinguishesOffsets(t *testing.T) {
	base := Item{Provider: "twitch", ContentType: ContentTypeVideo, ProviderID: "v42"}
	early := base
	early.StartTime = 60
	late := base
	late.StartTime = 120

	assert.NotEqual(t, ItemKey(early), ItemKey(late))
	assert.NotEqual(t, ItemKey(base), ItemKey(early))
}
