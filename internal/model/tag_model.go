package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TagModel struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null;uniqueIndex" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func (TagModel) TableName() string {
	return "tags"
}

func (t *TagModel) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return nil
}

// PostTagModel links a post to a tag. The composite primary key enforces
// pair uniqueness.
type PostTagModel struct {
	PostID    string    `gorm:"type:uuid;primary_key" json:"post_id"`
	TagID     string    `gorm:"type:uuid;primary_key" json:"tag_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (PostTagModel) TableName() string {
	return "post_tags"
}
