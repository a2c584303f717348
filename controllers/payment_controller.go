package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/vnkhanh/elearning-backend/services"
)

type midtransNotification struct {
	OrderID           string `json:"order_id"`
	TransactionStatus string `json:"transaction_status"`
}

// HandlePayment nhận webhook Midtrans. Luôn trả thành công khi order không
// tồn tại hoặc trạng thái không cần xử lý, để Midtrans không gửi lại.
func (h *Controller) HandlePayment(c *gin.Context) {
	var body midtransNotification
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "Invalid Request", "malformed request body")
		return
	}

	if status, known := services.TransactionStatusFor(body.TransactionStatus); known {
		tx, err := h.store.SetTransactionStatus(c.Request.Context(), body.OrderID, status)
		if err != nil {
			h.respondError(c, err, "")
			return
		}
		if tx != nil {
			h.log.Info("transaction status updated", "transaction_id", tx.ID, "status", tx.Status)
			if h.hub != nil {
				h.hub.SendTransactionStatus(tx.UserID.String(), tx.ID.String(), string(tx.Status))
			}
		}
	}

	ok(c, "Handle Payment Success", gin.H{})
}
