package store

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/vnkhanh/elearning-backend/models"
)

// AutoMigrate tạo bảng cho các entity và bảng liên kết.
func AutoMigrate(db *gorm.DB) error {
	joins := []struct {
		owner any
		field string
		join  any
	}{
		{&models.Category{}, "Courses", &models.CategoryCourse{}},
		{&models.User{}, "Courses", &models.UserCourse{}},
		{&models.Course{}, "Students", &models.CourseStudent{}},
		{&models.Course{}, "Details", &models.CourseDetailRef{}},
	}
	for _, j := range joins {
		if err := db.SetupJoinTable(j.owner, j.field, j.join); err != nil {
			return fmt.Errorf("setup join table %T.%s: %w", j.owner, j.field, err)
		}
	}

	return db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Course{},
		&models.CourseDetail{},
		&models.Transaction{},
		&models.CategoryCourse{},
		&models.UserCourse{},
		&models.CourseStudent{},
		&models.CourseDetailRef{},
	)
}
