package entity

import "time"

type MediaType string

const (
	MediaTypeImage MediaType = "image"
	MediaTypeVideo MediaType = "video"
)

type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

type AccessType string

const (
	AccessTypeFree AccessType = "free"
	AccessTypePaid AccessType = "paid"
)

type Post struct {
	ID             string     `json:"id"`
	UserID         string     `json:"user_id"`
	Type           MediaType  `json:"type"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	MediaURL       string     `json:"media_url"`
	ThumbnailURL   *string    `json:"thumbnail_url,omitempty"`
	Visibility     Visibility `json:"visibility"`
	AccessType     AccessType `json:"access_type"`
	Price          *string    `json:"price,omitempty"`
	IsDownloadable bool       `json:"is_downloadable"`
	Tags           []Tag      `json:"tags,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// PostSummary is the response shape of the ingestion endpoint.
type PostSummary struct {
	PostID   string    `json:"postId"`
	MediaURL string    `json:"mediaUrl"`
	Type     MediaType `json:"type"`
}
