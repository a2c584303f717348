package models

import (
	"time"

	"github.com/google/uuid"
)

// Các bảng liên kết thay cho mảng tham chiếu: thêm một dòng là push,
// xoá một dòng là pull.

// CategoryCourse là Category.Courses.
type CategoryCourse struct {
	CategoryID uuid.UUID `gorm:"type:uuid;primaryKey"`
	CourseID   uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

// UserCourse là User.Courses.
type UserCourse struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	CourseID  uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// CourseStudent là Course.Students.
type CourseStudent struct {
	CourseID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// CourseDetailRef là Course.Details, thứ tự theo CreatedAt.
type CourseDetailRef struct {
	CourseID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	CourseDetailID uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
}
