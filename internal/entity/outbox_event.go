package entity

import (
	"time"

	"github.com/google/uuid"
)

// Status is the delivery state of an outbox event.
type Status string

const (
	Pending    Status = "pending"
	Processing Status = "processing"
	Processed  Status = "processed"
	Failed     Status = "failed"
)

type EventType string

const (
	EventContentSaved   EventType = "content.saved"
	EventContentDeleted EventType = "content.deleted"
	EventBlobCleanup    EventType = "blob.cleanup"
)

type OutboxEvent struct {
	ID          uuid.UUID  `json:"id"`
	AggregateID uuid.UUID  `json:"aggregate_id"`
	Type        EventType  `json:"type"`
	Payload     []byte     `json:"payload"`
	Status      Status     `json:"status"` // pending, processing, processed, failed
	CreatedAt   time.Time  `json:"created_at"`
	ProcessedAt *time.Time `json:"processed_at,omitempty"`
	RetryCount  int        `json:"retry_count"`
}

// ContentEventPayload is published whenever a project or journey entry
// changes, so the public site can rebuild.
type ContentEventPayload struct {
	Kind Kind      `json:"kind"`
	ID   uuid.UUID `json:"id"`
	Slug string    `json:"slug,omitempty"`
}

// BlobCleanupPayload asks the cleanup consumer to retry an asset deletion
// that failed after its record stopped referencing it.
type BlobCleanupPayload struct {
	Kind    Kind      `json:"kind"`
	OwnerID uuid.UUID `json:"owner_id"`
	AssetID string    `json:"asset_id"`
	Attempt int       `json:"attempt"`
}
