package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/vnkhanh/elearning-backend/models"
)

func (s *Store) CreateTransaction(ctx context.Context, t *models.Transaction) error {
	return translate(s.conn(ctx).Create(t).Error, "creating transaction")
}

// HasSuccessfulTransaction cho biết user đã thanh toán phí đăng ký chưa.
func (s *Store) HasSuccessfulTransaction(ctx context.Context, userID uuid.UUID) (bool, error) {
	var count int64
	err := s.conn(ctx).Model(&models.Transaction{}).
		Where("user_id = ? AND status = ?", userID, models.TransactionSuccess).
		Count(&count).Error
	if err != nil {
		return false, translate(err, "checking transactions")
	}
	return count > 0, nil
}

// SetTransactionStatus cập nhật trạng thái theo order id từ cổng thanh toán.
// Id sai định dạng hoặc không tồn tại trả về nil, nil: không phải lỗi.
func (s *Store) SetTransactionStatus(ctx context.Context, rawID string, status models.TransactionStatus) (*models.Transaction, error) {
	id, err := ParseID(rawID)
	if err != nil {
		return nil, nil
	}

	res := s.conn(ctx).Model(&models.Transaction{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return nil, translate(res.Error, "updating transaction status")
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}

	var t models.Transaction
	if err := s.conn(ctx).First(&t, "id = ?", id).Error; err != nil {
		return nil, translate(err, "getting transaction")
	}
	return &t, nil
}
