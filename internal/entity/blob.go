package entity

import "time"

// Upload is a local file about to be sent to the blob store.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
	Width       int
	Height      int
}

type BlobMetadata struct {
	AssetID   string    `json:"asset_id"`
	URL       string    `json:"url"`
	Folder    string    `json:"folder"`
	Format    string    `json:"format"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"created_at"`
}
