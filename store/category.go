package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/vnkhanh/elearning-backend/models"
)

func (s *Store) CreateCategory(ctx context.Context, c *models.Category) error {
	return translate(s.conn(ctx).Omit("Courses").Create(c).Error, "creating category")
}

func (s *Store) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := s.conn(ctx).Order("name ASC").Find(&categories).Error
	return categories, translate(err, "listing categories")
}

// GetCategory trả về category kèm danh sách id khoá học (category.courses).
func (s *Store) GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var category models.Category
	err := s.conn(ctx).
		Preload("Courses", selectColumns("id", "name")).
		First(&category, "id = ?", id).Error
	if err != nil {
		return nil, translate(err, "getting category")
	}
	return &category, nil
}
