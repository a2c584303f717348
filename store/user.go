package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vnkhanh/elearning-backend/models"
)

func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	return translate(s.conn(ctx).Omit("Courses").Create(u).Error, "creating user")
}

// CreateManager ghi manager cùng giao dịch phí đăng ký t rồi gọi checkout.
// checkout lỗi thì rollback cả hai, email vẫn dùng lại được.
func (s *Store) CreateManager(ctx context.Context, u *models.User, t *models.Transaction, checkout func(*models.Transaction) error) error {
	return s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Courses").Create(u).Error; err != nil {
			return translate(err, "creating manager")
		}
		t.UserID = u.ID
		if err := tx.Create(t).Error; err != nil {
			return translate(err, "creating transaction")
		}
		return checkout(t)
	})
}

func (s *Store) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.conn(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, translate(err, "getting user")
	}
	return &user, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.conn(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err, "getting user by email")
	}
	return &user, nil
}

// ListStudents trả về học viên thuộc manager, kèm id các khoá học đã ghi danh.
func (s *Store) ListStudents(ctx context.Context, managerID uuid.UUID) ([]models.User, error) {
	var students []models.User
	err := s.conn(ctx).
		Preload("Courses", selectColumns("id", "name")).
		Where("role = ? AND manager_id = ?", models.RoleStudent, managerID).
		Order("created_at DESC").
		Find(&students).Error
	return students, translate(err, "listing students")
}

func (s *Store) GetStudent(ctx context.Context, managerID, id uuid.UUID) (*models.User, error) {
	var student models.User
	err := s.conn(ctx).
		Where("id = ? AND role = ? AND manager_id = ?", id, models.RoleStudent, managerID).
		First(&student).Error
	if err != nil {
		return nil, translate(err, "getting student")
	}
	return &student, nil
}

// UpdateUser ghi một phần các cột (name, email, password, photo).
func (s *Store) UpdateUser(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	res := s.conn(ctx).Model(&models.User{ID: id}).Updates(fields)
	if res.Error != nil {
		return translate(res.Error, "updating user")
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteStudent xoá học viên của manager rồi gỡ học viên khỏi mọi khoá học.
func (s *Store) DeleteStudent(ctx context.Context, managerID, id uuid.UUID) (*models.User, error) {
	student, err := s.GetStudent(ctx, managerID, id)
	if err != nil {
		return nil, err
	}
	if err := s.conn(ctx).Delete(&models.User{}, "id = ?", id).Error; err != nil {
		return nil, translate(err, "deleting student")
	}
	if err := s.cascadeStudentDeleted(ctx, id); err != nil {
		return student, &CascadeError{Entity: "student", ID: id, Err: err}
	}
	return student, nil
}

func (s *Store) cascadeStudentDeleted(ctx context.Context, id uuid.UUID) error {
	db := s.conn(ctx)
	var errs []error
	if err := db.Where("user_id = ?", id).Delete(&models.CourseStudent{}).Error; err != nil {
		errs = append(errs, fmt.Errorf("pull from course students: %w", err))
	}
	if err := db.Where("user_id = ?", id).Delete(&models.UserCourse{}).Error; err != nil {
		errs = append(errs, fmt.Errorf("drop user courses: %w", err))
	}
	return errors.Join(errs...)
}
