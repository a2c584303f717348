package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vnkhanh/elearning-backend/models"
)

// CreateCourse lưu khoá học rồi push id vào category.courses và manager.courses.
// Category phải tồn tại.
func (s *Store) CreateCourse(ctx context.Context, c *models.Course) error {
	return s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("id").First(&models.Category{}, "id = ?", c.CategoryID).Error; err != nil {
			return translate(err, "checking category")
		}
		if err := tx.Omit("Category", "Students", "Details").Create(c).Error; err != nil {
			return translate(err, "creating course")
		}
		if err := push(tx, &models.CategoryCourse{CategoryID: c.CategoryID, CourseID: c.ID}); err != nil {
			return translate(err, "pushing course to category")
		}
		if err := push(tx, &models.UserCourse{UserID: c.ManagerID, CourseID: c.ID}); err != nil {
			return translate(err, "pushing course to manager")
		}
		return nil
	})
}

// ListCourses trả về các khoá học của manager kèm category và học viên.
func (s *Store) ListCourses(ctx context.Context, managerID uuid.UUID) ([]models.Course, error) {
	var courses []models.Course
	err := s.conn(ctx).
		Preload("Category", selectColumns("id", "name")).
		Preload("Students", selectColumns("id", "name")).
		Where("manager_id = ?", managerID).
		Order("created_at DESC").
		Find(&courses).Error
	return courses, translate(err, "listing courses")
}

// GetCourse lấy một khoá học của manager; withDetails nạp thêm nội dung theo thứ tự push.
func (s *Store) GetCourse(ctx context.Context, managerID, id uuid.UUID, withDetails bool) (*models.Course, error) {
	var course models.Course
	err := s.conn(ctx).
		Preload("Category", selectColumns("id", "name")).
		Preload("Students", selectColumns("id", "name", "email", "photo")).
		Where("id = ? AND manager_id = ?", id, managerID).
		First(&course).Error
	if err != nil {
		return nil, translate(err, "getting course")
	}
	if withDetails {
		courses := []models.Course{course}
		if err := loadDetails(s.conn(ctx), courses); err != nil {
			return nil, translate(err, "getting course details")
		}
		course = courses[0]
	}
	return &course, nil
}

// UpdateCourse ghi lại các trường của khoá học. Khi đổi category, id khoá học
// được pull khỏi category cũ và push vào category mới.
func (s *Store) UpdateCourse(ctx context.Context, c *models.Course, previousCategory uuid.UUID) error {
	return s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if c.CategoryID != previousCategory {
			if err := tx.Select("id").First(&models.Category{}, "id = ?", c.CategoryID).Error; err != nil {
				return translate(err, "checking category")
			}
		}

		err := tx.Model(&models.Course{ID: c.ID}).
			Select("name", "thumbnail", "category_id", "tagline", "description").
			Updates(&models.Course{
				Name:        c.Name,
				Thumbnail:   c.Thumbnail,
				CategoryID:  c.CategoryID,
				Tagline:     c.Tagline,
				Description: c.Description,
			}).Error
		if err != nil {
			return translate(err, "updating course")
		}

		if c.CategoryID == previousCategory {
			return nil
		}
		if err := tx.Where("category_id = ? AND course_id = ?", previousCategory, c.ID).
			Delete(&models.CategoryCourse{}).Error; err != nil {
			return translate(err, "pulling course from old category")
		}
		return translate(push(tx, &models.CategoryCourse{CategoryID: c.CategoryID, CourseID: c.ID}), "pushing course to category")
	})
}

// DeleteCourse xoá khoá học của manager rồi chạy cascade. Khoá học đã xoá được
// trả về để caller dọn thumbnail. Lỗi cascade được bọc trong *CascadeError.
func (s *Store) DeleteCourse(ctx context.Context, managerID, id uuid.UUID) (*models.Course, error) {
	var course models.Course
	err := s.conn(ctx).
		Where("id = ? AND manager_id = ?", id, managerID).
		First(&course).Error
	if err != nil {
		return nil, translate(err, "getting course")
	}

	// Mảng students/details là một phần của chính bản ghi khoá học.
	err = s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("course_id = ?", id).Delete(&models.CourseStudent{}).Error; err != nil {
			return err
		}
		if err := tx.Where("course_id = ?", id).Delete(&models.CourseDetailRef{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Course{}, "id = ?", id).Error
	})
	if err != nil {
		return nil, translate(err, "deleting course")
	}

	if err := s.cascadeCourseDeleted(ctx, &course); err != nil {
		return &course, &CascadeError{Entity: "course", ID: course.ID, Err: err}
	}
	return &course, nil
}

// cascadeCourseDeleted dọn tham chiếu ngược tới khoá học vừa xoá. Ba bước độc
// lập, không bọc transaction; bước lỗi không chặn bước khác.
func (s *Store) cascadeCourseDeleted(ctx context.Context, c *models.Course) error {
	db := s.conn(ctx)
	var errs []error

	if err := db.Where("category_id = ? AND course_id = ?", c.CategoryID, c.ID).
		Delete(&models.CategoryCourse{}).Error; err != nil {
		errs = append(errs, fmt.Errorf("pull from category %s: %w", c.CategoryID, err))
	}

	if err := s.DeleteCourseDetailsByCourse(ctx, c.ID); err != nil {
		errs = append(errs, err)
	}

	// Khoá học đã mất nên mọi dòng user_courses của nó đều là tham chiếu ngược.
	if err := db.Where("course_id = ?", c.ID).Delete(&models.UserCourse{}).Error; err != nil {
		errs = append(errs, fmt.Errorf("pull from user courses: %w", err))
	}

	return errors.Join(errs...)
}

// loadDetails gán course.details theo thứ tự dòng được push vào course_detail_refs.
func loadDetails(db *gorm.DB, courses []models.Course) error {
	if len(courses) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, len(courses))
	for i := range courses {
		ids[i] = courses[i].ID
	}

	var details []models.CourseDetail
	err := db.
		Select("course_details.*").
		Joins("JOIN course_detail_refs ON course_detail_refs.course_detail_id = course_details.id").
		Where("course_detail_refs.course_id IN ?", ids).
		Order("course_detail_refs.created_at ASC").
		Find(&details).Error
	if err != nil {
		return err
	}

	byCourse := make(map[uuid.UUID][]models.CourseDetail, len(courses))
	for _, d := range details {
		byCourse[d.CourseID] = append(byCourse[d.CourseID], d)
	}
	for i := range courses {
		courses[i].Details = byCourse[courses[i].ID]
	}
	return nil
}
