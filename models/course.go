package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Course struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Thumbnail   string    `gorm:"type:text;not null" json:"thumbnail"`
	CategoryID  uuid.UUID `gorm:"type:uuid;index;not null" json:"category_id"`
	Category    *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Tagline     string    `gorm:"size:255;not null" json:"tagline"`
	Description string    `gorm:"type:text;not null" json:"description"`
	ManagerID   uuid.UUID `gorm:"type:uuid;index;not null" json:"manager_id"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Students []User         `gorm:"many2many:course_students" json:"students,omitempty"`
	Details  []CourseDetail `gorm:"many2many:course_detail_refs" json:"details,omitempty"`
}

func (c *Course) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
