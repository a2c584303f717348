package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/vnkhanh/elearning-backend/middleware"
	"github.com/vnkhanh/elearning-backend/models"
	"github.com/vnkhanh/elearning-backend/services"
	"github.com/vnkhanh/elearning-backend/store"
)

type SignUpInput struct {
	Name     string `json:"name" form:"name" validate:"required,min=5"`
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required,min=5"`
}

type SignInInput struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required,min=5"`
}

// SignUp tạo tài khoản manager, một giao dịch pending cho phí đăng ký và
// phiên thanh toán Midtrans. Midtrans lỗi thì không giữ lại tài khoản.
func (h *Controller) SignUp(c *gin.Context) {
	input := middleware.Payload[SignUpInput](c)

	hashed, err := h.hashPassword(input.Password)
	if err != nil {
		h.respondError(c, err, "")
		return
	}

	user := &models.User{
		Name:     strings.TrimSpace(input.Name),
		Email:    strings.ToLower(strings.TrimSpace(input.Email)),
		Password: hashed,
		Photo:    models.DefaultPhoto,
		Role:     models.RoleManager,
	}
	var paymentURL string
	tx := &models.Transaction{Price: h.signupPrice}
	err = h.store.CreateManager(c.Request.Context(), user, tx, func(tx *models.Transaction) error {
		var err error
		paymentURL, err = h.payment.CreatePayment(c.Request.Context(), services.PaymentRequest{
			OrderID:   tx.ID.String(),
			Amount:    tx.Price,
			Email:     user.Email,
			FinishURL: h.paymentFinishURL,
		})
		return err
	})
	if errors.Is(err, store.ErrDuplicate) {
		badRequest(c, "Email already used")
		return
	}
	if err != nil {
		h.respondError(c, err, "")
		return
	}

	ok(c, "Sign Up Success", gin.H{"midtrans_payment_url": paymentURL})
}

// SignIn trả token. Tài khoản không phải student phải có giao dịch thành công.
func (h *Controller) SignIn(c *gin.Context) {
	input := middleware.Payload[SignInInput](c)
	ctx := c.Request.Context()

	user, err := h.store.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(input.Email)))
	if errors.Is(err, store.ErrNotFound) {
		badRequest(c, "User not found")
		return
	}
	if err != nil {
		h.respondError(c, err, "")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		badRequest(c, "Email / Password incorrect")
		return
	}

	if user.Role != models.RoleStudent {
		paid, err := h.store.HasSuccessfulTransaction(ctx, user.ID)
		if err != nil {
			h.respondError(c, err, "")
			return
		}
		if !paid {
			badRequest(c, "User not verified")
			return
		}
	}

	token, err := h.tokens.Generate(user.ID)
	if err != nil {
		h.respondError(c, err, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Sign In Success",
		"data": gin.H{
			"name":  user.Name,
			"email": user.Email,
			"token": token,
			"role":  user.Role,
		},
	})
}
