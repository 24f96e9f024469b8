package entity

import "time"

// Tag is a shared label entity. Rows are created lazily during ingestion,
// referenced by any number of posts, and never deleted by this pipeline.
type Tag struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
