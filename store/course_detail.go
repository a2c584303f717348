package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vnkhanh/elearning-backend/models"
)

// CreateCourseDetail tạo nội dung cho một khoá học đang tồn tại của manager
// và push id vào course.details.
func (s *Store) CreateCourseDetail(ctx context.Context, managerID uuid.UUID, d *models.CourseDetail) error {
	return s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ownedCourse(tx, managerID, d.CourseID); err != nil {
			return err
		}
		if err := tx.Create(d).Error; err != nil {
			return translate(err, "creating course detail")
		}
		return translate(push(tx, &models.CourseDetailRef{CourseID: d.CourseID, CourseDetailID: d.ID}), "pushing detail to course")
	})
}

func (s *Store) GetCourseDetail(ctx context.Context, managerID, id uuid.UUID) (*models.CourseDetail, error) {
	var detail models.CourseDetail
	err := s.conn(ctx).
		Joins("JOIN courses ON courses.id = course_details.course_id").
		Where("course_details.id = ? AND courses.manager_id = ?", id, managerID).
		First(&detail).Error
	if err != nil {
		return nil, translate(err, "getting course detail")
	}
	return &detail, nil
}

// UpdateCourseDetail ghi lại nội dung; nếu chuyển sang khoá học khác thì
// chuyển luôn tham chiếu trong course.details.
func (s *Store) UpdateCourseDetail(ctx context.Context, managerID uuid.UUID, d *models.CourseDetail, previousCourse uuid.UUID) error {
	return s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if d.CourseID != previousCourse {
			if err := ownedCourse(tx, managerID, d.CourseID); err != nil {
				return err
			}
		}

		err := tx.Model(&models.CourseDetail{ID: d.ID}).
			Select("title", "type", "youtube_id", "text", "course_id").
			Updates(&models.CourseDetail{
				Title:     d.Title,
				Type:      d.Type,
				YoutubeID: d.YoutubeID,
				Text:      d.Text,
				CourseID:  d.CourseID,
			}).Error
		if err != nil {
			return translate(err, "updating course detail")
		}

		if d.CourseID == previousCourse {
			return nil
		}
		if err := tx.Where("course_id = ? AND course_detail_id = ?", previousCourse, d.ID).
			Delete(&models.CourseDetailRef{}).Error; err != nil {
			return translate(err, "pulling detail from old course")
		}
		return translate(push(tx, &models.CourseDetailRef{CourseID: d.CourseID, CourseDetailID: d.ID}), "pushing detail to course")
	})
}

// DeleteCourseDetail xoá một nội dung theo id rồi pull id khỏi course.details
// của khoá học cha. Khoá học cha không còn thì bước pull không làm gì.
func (s *Store) DeleteCourseDetail(ctx context.Context, managerID, id uuid.UUID) (*models.CourseDetail, error) {
	detail, err := s.GetCourseDetail(ctx, managerID, id)
	if err != nil {
		return nil, err
	}
	if err := s.conn(ctx).Delete(&models.CourseDetail{}, "id = ?", id).Error; err != nil {
		return nil, translate(err, "deleting course detail")
	}

	if err := s.conn(ctx).
		Where("course_id = ? AND course_detail_id = ?", detail.CourseID, detail.ID).
		Delete(&models.CourseDetailRef{}).Error; err != nil {
		return detail, &CascadeError{Entity: "course detail", ID: detail.ID, Err: err}
	}
	return detail, nil
}

// DeleteCourseDetailsByCourse xoá hàng loạt nội dung của một khoá học. Không
// đụng tới course.details: chỉ dùng khi khoá học cũng đang bị xoá.
func (s *Store) DeleteCourseDetailsByCourse(ctx context.Context, courseID uuid.UUID) error {
	if err := s.conn(ctx).Where("course_id = ?", courseID).Delete(&models.CourseDetail{}).Error; err != nil {
		return fmt.Errorf("delete details of course %s: %w", courseID, err)
	}
	return nil
}

func ownedCourse(tx *gorm.DB, managerID, courseID uuid.UUID) error {
	err := tx.Select("id").
		Where("id = ? AND manager_id = ?", courseID, managerID).
		First(&models.Course{}).Error
	return translate(err, "checking course")
}
