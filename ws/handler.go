package ws

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// TokenVerifier trả về id user trong token.
type TokenVerifier interface {
	Verify(token string) (uuid.UUID, error)
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // CORS đã giới hạn origin ở tầng HTTP
	},
}

// HandleTransactionWebSocket mở kết nối nhận trạng thái thanh toán của user
// sở hữu token (?token=).
func (h *Hub) HandleTransactionWebSocket(tokens TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}
		id, err := tokens.Verify(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			return
		}
		userID := id.String()

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			h.log.Warn("websocket upgrade failed", "error", err)
			return
		}
		client := h.Register(userID, conn)
		h.log.Info("transaction ws connected", "user_id", userID)

		hello, _ := json.Marshal(gin.H{"type": "connected", "message": "Connected to transaction updates"})
		client.Send <- hello
		go h.writePump(client)

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}

		h.Unregister(userID, conn)
		h.log.Info("transaction ws disconnected", "user_id", userID)
	}
}
