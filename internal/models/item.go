package models

import (
	"fmt"
	"time"
)

// ContentType classifies a submitted item by the kind of content it points at
type ContentType string

const (
	// ContentTypeClip is a short clip cut from a live broadcast
	ContentTypeClip ContentType = "clip"
	// ContentTypeVideo is a full recording; submissions may carry a start offset
	ContentTypeVideo ContentType = "video"
	// ContentTypeHighlight is a curated highlight published by the channel
	ContentTypeHighlight ContentType = "highlight"
	// ContentTypeOther covers providers without a finer classification
	ContentTypeOther ContentType = "other"
)

// Item represents one piece of submitted content.
// Items are value objects: the engine compares them by derived key (see ItemKey),
// never by reference, and treats them as read-only.
type Item struct {
	Provider    string      `json:"provider"`
	ContentType ContentType `json:"content_type"`
	ProviderID  string      `json:"provider_id"`
	URL         string      `json:"url"`
	EmbedURL    string      `json:"embed_url,omitempty"`
	DirectURL   string      `json:"direct_url,omitempty"`
	Thumbnail   string      `json:"thumbnail,omitempty"`
	Title       string      `json:"title"`
	Channel     string      `json:"channel,omitempty"`
	Creator     string      `json:"creator,omitempty"`
	Submitters  []string    `json:"submitters,omitempty"`
	Category    string      `json:"category,omitempty"`
	PostedAt    *time.Time  `json:"posted_at,omitempty"`
	Duration    int         `json:"duration,omitempty"`   // seconds
	StartTime   int         `json:"start_time,omitempty"` // seconds into long-form content
	Personas    []string    `json:"personas,omitempty"`
}

// KeyFunc derives a deterministic string identity from an Item.
// The navigation engine receives one at construction and has no
// provider-specific knowledge of its own.
type KeyFunc func(Item) string

// ItemKey is the canonical KeyFunc: "provider:contentType:id", with a
// ":startTime" suffix when the item is a full recording submitted at a
// nonzero offset. Two submissions of the same recording at different start
// points are distinct queue entries.
func ItemKey(item Item) string {
	key := fmt.Sprintf("%s:%s:%s", item.Provider, item.ContentType, item.ProviderID)
	if item.ContentType == ContentTypeVideo && item.StartTime > 0 {
		key = fmt.Sprintf("%s:%d", key, item.StartTime)
	}
	return key
}
