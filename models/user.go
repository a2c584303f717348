package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleManager UserRole = "manager" // Quản lý khoá học và học viên
	RoleStudent UserRole = "student" // Học viên do manager tạo
)

// DefaultPhoto là ảnh đại diện mặc định, không bao giờ bị xoá khỏi storage.
const DefaultPhoto = "default.png"

type User struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string     `gorm:"size:150;not null" json:"name"`
	Email     string     `gorm:"size:150;uniqueIndex;not null" json:"email"`
	Password  string     `gorm:"type:text;not null" json:"-"`
	Role      UserRole   `gorm:"type:varchar(20);not null;default:'manager'" json:"role"`
	Photo     string     `gorm:"type:text;not null" json:"photo"`
	ManagerID *uuid.UUID `gorm:"type:uuid;index" json:"manager_id,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Quan hệ
	Courses []Course `gorm:"many2many:user_courses" json:"courses,omitempty"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
