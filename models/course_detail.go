package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ContentType string

const (
	ContentVideo ContentType = "video"
	ContentText  ContentType = "text"
)

type CourseDetail struct {
	ID        uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	Title     string      `gorm:"size:255;not null" json:"title"`
	Type      ContentType `gorm:"type:varchar(10);not null;default:'video'" json:"type"`
	YoutubeID string      `gorm:"size:64" json:"youtubeId,omitempty"`
	Text      string      `gorm:"type:text" json:"text,omitempty"`
	CourseID  uuid.UUID   `gorm:"type:uuid;index;not null" json:"course_id"`
	CreatedAt time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
}

func (d *CourseDetail) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
