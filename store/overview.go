package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/vnkhanh/elearning-backend/models"
)

type Overview struct {
	TotalCourses  int64
	TotalStudents int64
	TotalVideos   int64
	TotalTexts    int64
	Courses       []models.Course
	Students      []models.User
}

// Overview gom số liệu dashboard của manager.
func (s *Store) Overview(ctx context.Context, managerID uuid.UUID) (*Overview, error) {
	db := s.conn(ctx)
	var o Overview

	if err := db.Model(&models.Course{}).Where("manager_id = ?", managerID).
		Count(&o.TotalCourses).Error; err != nil {
		return nil, translate(err, "counting courses")
	}

	// Tổng số lượt ghi danh trên mọi khoá học, không khử trùng học viên.
	if err := db.Model(&models.CourseStudent{}).
		Joins("JOIN courses ON courses.id = course_students.course_id").
		Where("courses.manager_id = ?", managerID).
		Count(&o.TotalStudents).Error; err != nil {
		return nil, translate(err, "counting students")
	}

	var err error
	if o.TotalVideos, err = s.countDetails(ctx, managerID, models.ContentVideo); err != nil {
		return nil, err
	}
	if o.TotalTexts, err = s.countDetails(ctx, managerID, models.ContentText); err != nil {
		return nil, err
	}

	if o.Courses, err = s.ListCourses(ctx, managerID); err != nil {
		return nil, err
	}
	if o.Students, err = s.ListStudents(ctx, managerID); err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *Store) countDetails(ctx context.Context, managerID uuid.UUID, kind models.ContentType) (int64, error) {
	var n int64
	err := s.conn(ctx).Model(&models.CourseDetailRef{}).
		Joins("JOIN courses ON courses.id = course_detail_refs.course_id").
		Joins("JOIN course_details ON course_details.id = course_detail_refs.course_detail_id").
		Where("courses.manager_id = ? AND course_details.type = ?", managerID, kind).
		Count(&n).Error
	return n, translate(err, "counting course details")
}
