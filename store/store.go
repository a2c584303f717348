// Package store là Entity Store: mọi đọc/ghi User, Category, Course,
// CourseDetail, Transaction và các hàm cascade giữ tham chiếu ngược nhất quán.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrInvalidID = errors.New("invalid id")
	ErrDuplicate = errors.New("duplicate record")
)

// CascadeError báo các bước dọn tham chiếu bị lỗi sau khi bản ghi chính
// đã bị xoá. Không có rollback.
type CascadeError struct {
	Entity string
	ID     uuid.UUID
	Err    error
}

func (e *CascadeError) Error() string {
	return fmt.Sprintf("store: cascade after deleting %s %s: %v", e.Entity, e.ID, e.Err)
}

func (e *CascadeError) Unwrap() error { return e.Err }

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB trả về kết nối gốc (dùng cho health check).
func (s *Store) DB() *gorm.DB {
	return s.db
}

func (s *Store) conn(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

// ParseID chuyển id dạng chuỗi từ URL/body sang uuid.
func ParseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, ErrInvalidID
	}
	return id, nil
}

func translate(err error, op string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return fmt.Errorf("store: %s: %w", op, err)
	}
}

// push thêm một dòng liên kết, bỏ qua nếu đã tồn tại.
func push(tx *gorm.DB, row any) error {
	return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(row).Error
}

func selectColumns(cols ...string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Select(cols)
	}
}
