package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostModel struct {
	ID             string     `gorm:"type:uuid;primary_key" json:"id"`
	UserID         string     `gorm:"type:uuid;not null;index" json:"user_id"`
	Type           string     `gorm:"type:varchar(10);not null" json:"type"`
	Title          string     `gorm:"type:varchar(255);not null" json:"title"`
	Description    string     `gorm:"type:text" json:"description"`
	MediaURL       string     `gorm:"type:varchar(500);not null" json:"media_url"`
	ThumbnailURL   *string    `gorm:"type:varchar(500)" json:"thumbnail_url"`
	Visibility     string     `gorm:"type:varchar(10);not null;default:'public';index" json:"visibility"`
	AccessType     string     `gorm:"type:varchar(10);not null;default:'free'" json:"access_type"`
	Price          *string    `gorm:"type:varchar(20)" json:"price"`
	IsDownloadable bool       `gorm:"default:false" json:"is_downloadable"`
	Tags           []TagModel `gorm:"many2many:post_tags;joinForeignKey:PostID;joinReferences:TagID" json:"tags,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (PostModel) TableName() string {
	return "posts"
}

func (p *PostModel) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}
