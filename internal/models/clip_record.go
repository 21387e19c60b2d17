package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ItemStatus is the durable lifecycle state of a submitted item
type ItemStatus string

const (
	// StatusQueued marks a submission awaiting review
	StatusQueued ItemStatus = "queued"
	// StatusApproved marks an item sitting in the upcoming queue
	StatusApproved ItemStatus = "approved"
	// StatusPlayed marks an item that has been archived to play history
	StatusPlayed ItemStatus = "played"
)

// ClipRecord is the durable row for a submitted item.
// Key is the derived item key and is unique: it is the unit of deduplication
// and of durable-store addressing. Submitters and Personas are stored as JSON
// arrays in text columns.
type ClipRecord struct {
	ID          uuid.UUID  `json:"id" gorm:"type:text;primaryKey;column:id"`
	Key         string     `json:"key" gorm:"type:text;not null;uniqueIndex;column:key" validate:"required"`
	Status      ItemStatus `json:"status" gorm:"type:text;not null;column:status" validate:"required"`
	Provider    string     `json:"provider" gorm:"type:text;not null;column:provider" validate:"required"`
	ContentType string     `json:"content_type" gorm:"type:text;not null;column:content_type" validate:"required"`
	ProviderID  string     `json:"provider_id" gorm:"type:text;not null;column:provider_id" validate:"required"`
	URL         string     `json:"url" gorm:"type:text;not null;column:url" validate:"required"`
	EmbedURL    string     `json:"embed_url" gorm:"type:text;column:embed_url"`
	DirectURL   string     `json:"direct_url" gorm:"type:text;column:direct_url"`
	Thumbnail   string     `json:"thumbnail" gorm:"type:text;column:thumbnail"`
	Title       string     `json:"title" gorm:"type:text;not null;column:title"`
	Channel     string     `json:"channel" gorm:"type:text;column:channel"`
	Creator     string     `json:"creator" gorm:"type:text;column:creator"`
	Submitters  string     `json:"-" gorm:"type:text;not null;default:'[]';column:submitters"`
	Personas    string     `json:"-" gorm:"type:text;not null;default:'[]';column:personas"`
	Category    *string    `json:"category,omitempty" gorm:"type:text;column:category"`
	PostedAt    *time.Time `json:"posted_at,omitempty" gorm:"type:datetime;column:posted_at"`
	Duration    int        `json:"duration" gorm:"type:integer;not null;default:0;column:duration"`
	StartTime   int        `json:"start_time" gorm:"type:integer;not null;default:0;column:start_time"`
	SubmittedAt time.Time  `json:"submitted_at" gorm:"type:datetime;default:CURRENT_TIMESTAMP;column:submitted_at"`
	UpdatedAt   time.Time  `json:"updated_at" gorm:"type:datetime;default:CURRENT_TIMESTAMP;column:updated_at"`
}

// TableName overrides GORM's default pluralization
func (ClipRecord) TableName() string {
	return "clips"
}

// NewClipRecord builds a durable row from an Item and its derived key
func NewClipRecord(item Item, key string, status ItemStatus) (*ClipRecord, error) {
	submitters, err := encodeNames(item.Submitters)
	if err != nil {
		return nil, fmt.Errorf("failed to encode submitters: %w", err)
	}
	personas, err := encodeNames(item.Personas)
	if err != nil {
		return nil, fmt.Errorf("failed to encode personas: %w", err)
	}

	now := time.Now().UTC()
	record := &ClipRecord{
		ID:          uuid.New(),
		Key:         key,
		Status:      status,
		Provider:    item.Provider,
		ContentType: string(item.ContentType),
		ProviderID:  item.ProviderID,
		URL:         item.URL,
		EmbedURL:    item.EmbedURL,
		DirectURL:   item.DirectURL,
		Thumbnail:   item.Thumbnail,
		Title:       item.Title,
		Channel:     item.Channel,
		Creator:     item.Creator,
		Submitters:  submitters,
		Personas:    personas,
		PostedAt:    item.PostedAt,
		Duration:    item.Duration,
		StartTime:   item.StartTime,
		SubmittedAt: now,
		UpdatedAt:   now,
	}
	if item.Category != "" {
		category := item.Category
		record.Category = &category
	}
	return record, nil
}

// Item reconstructs the value object held by this row
func (r *ClipRecord) Item() (Item, error) {
	submitters, err := decodeNames(r.Submitters)
	if err != nil {
		return Item{}, fmt.Errorf("failed to decode submitters for clip %s: %w", r.Key, err)
	}
	personas, err := decodeNames(r.Personas)
	if err != nil {
		return Item{}, fmt.Errorf("failed to decode personas for clip %s: %w", r.Key, err)
	}

	item := Item{
		Provider:    r.Provider,
		ContentType: ContentType(r.ContentType),
		ProviderID:  r.ProviderID,
		URL:         r.URL,
		EmbedURL:    r.EmbedURL,
		DirectURL:   r.DirectURL,
		Thumbnail:   r.Thumbnail,
		Title:       r.Title,
		Channel:     r.Channel,
		Creator:     r.Creator,
		Submitters:  submitters,
		Personas:    personas,
		PostedAt:    r.PostedAt,
		Duration:    r.Duration,
		StartTime:   r.StartTime,
	}
	if r.Category != nil {
		item.Category = *r.Category
	}
	return item, nil
}

func encodeNames(names []string) (string, error) {
	if names == nil {
		names = []string{}
	}
	encoded, err := json.Marshal(names)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

func decodeNames(encoded string) ([]string, error) {
	if encoded == "" {
		return nil, nil
	}
	var names []string
	if err := json.Unmarshal([]byte(encoded), &names); err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, nil
	}
	return names, nil
}
