package store

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vnkhanh/elearning-backend/models"
)

// EnrollStudent push khoá học vào student.courses và học viên vào
// course.students. Ghi danh lại là no-op.
func (s *Store) EnrollStudent(ctx context.Context, courseID, studentID uuid.UUID) error {
	return s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := push(tx, &models.UserCourse{UserID: studentID, CourseID: courseID}); err != nil {
			return translate(err, "pushing course to student")
		}
		return translate(push(tx, &models.CourseStudent{CourseID: courseID, UserID: studentID}), "pushing student to course")
	})
}

func (s *Store) UnenrollStudent(ctx context.Context, courseID, studentID uuid.UUID) error {
	return s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND course_id = ?", studentID, courseID).
			Delete(&models.UserCourse{}).Error; err != nil {
			return translate(err, "pulling course from student")
		}
		err := tx.Where("course_id = ? AND user_id = ?", courseID, studentID).
			Delete(&models.CourseStudent{}).Error
		return translate(err, "pulling student from course")
	})
}

// ListCourseStudents trả về khoá học của manager kèm danh sách học viên.
func (s *Store) ListCourseStudents(ctx context.Context, managerID, courseID uuid.UUID) (*models.Course, error) {
	var course models.Course
	err := s.conn(ctx).
		Preload("Students", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "email", "photo").Order("users.name ASC")
		}).
		Where("id = ? AND manager_id = ?", courseID, managerID).
		First(&course).Error
	if err != nil {
		return nil, translate(err, "listing course students")
	}
	return &course, nil
}

// ListStudentCourses trả về các khoá học học viên đã ghi danh, kèm category
// và nội dung.
func (s *Store) ListStudentCourses(ctx context.Context, studentID uuid.UUID) ([]models.Course, error) {
	var user models.User
	err := s.conn(ctx).
		Preload("Courses", func(db *gorm.DB) *gorm.DB {
			return db.Order("courses.created_at DESC")
		}).
		Preload("Courses.Category", selectColumns("id", "name")).
		First(&user, "id = ?", studentID).Error
	if err != nil {
		return nil, translate(err, "listing student courses")
	}
	if err := loadDetails(s.conn(ctx), user.Courses); err != nil {
		return nil, translate(err, "listing student course details")
	}
	return user.Courses, nil
}
