package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vnkhanh/elearning-backend/logger"
	"github.com/vnkhanh/elearning-backend/models"
	"github.com/vnkhanh/elearning-backend/store"
)

const identityKey = "identity"

// Identity là thông tin tối thiểu của user gắn vào request. Không bao giờ
// chứa password.
type Identity struct {
	ID    uuid.UUID       `json:"id"`
	Name  string          `json:"name"`
	Email string          `json:"email"`
	Role  models.UserRole `json:"role"`
}

type TokenVerifier interface {
	Verify(token string) (uuid.UUID, error)
}

type UserFinder interface {
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// Auth đọc header "Authorization: JWT <token>".
//   - thiếu header hoặc sai scheme: 401 Unauthorized
//   - token sai chữ ký/hết hạn, hoặc lỗi khi tra user: 401 Invalid or expired token
//   - token hợp lệ nhưng user đã bị xoá: 400 Token expired
func Auth(tokens TokenVerifier, users UserFinder, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		scheme, token, _ := strings.Cut(c.GetHeader("Authorization"), " ")
		if scheme != "JWT" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}

		id, err := tokens.Verify(token)
		if err != nil {
			log.Debug("token verification failed", "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			return
		}

		user, err := users.GetUser(c.Request.Context(), id)
		if errors.Is(err, store.ErrNotFound) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "Token expired"})
			return
		}
		if err != nil {
			log.Error("auth user lookup failed", "error", err, "id", id)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			return
		}

		c.Set(identityKey, Identity{ID: user.ID, Name: user.Name, Email: user.Email, Role: user.Role})
		c.Next()
	}
}

// CurrentUser trả về identity do Auth gắn vào context.
func CurrentUser(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}
