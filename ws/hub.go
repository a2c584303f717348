package ws

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/vnkhanh/elearning-backend/logger"
)

type Client struct {
	Conn *websocket.Conn
	Send chan []byte
}

// Hub giữ kết nối theo từng userID để đẩy trạng thái thanh toán.
type Hub struct {
	clients map[string]map[*websocket.Conn]*Client
	mutex   sync.RWMutex
	log     *logger.Logger
}

func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		clients: make(map[string]map[*websocket.Conn]*Client),
		log:     log.With("component", "ws"),
	}
}

// Struct gửi trạng thái của 1 giao dịch
type TransactionStatusUpdate struct {
	Type          string `json:"type"`
	TransactionID string `json:"transaction_id"`
	Status        string `json:"status"`
}

func (h *Hub) Register(userID string, conn *websocket.Conn) *Client {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if _, ok := h.clients[userID]; !ok {
		h.clients[userID] = make(map[*websocket.Conn]*Client)
	}
	client := &Client{
		Conn: conn,
		Send: make(chan []byte, 256),
	}
	h.clients[userID][conn] = client
	return client
}

func (h *Hub) Unregister(userID string, conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if clients, ok := h.clients[userID]; ok {
		if client, ok := clients[conn]; ok {
			close(client.Send)
			delete(clients, conn)
		}
		if len(clients) == 0 {
			delete(h.clients, userID)
		}
	}
}

// SendToUser gửi data tới mọi kết nối của user; client đầy buffer thì bỏ qua.
func (h *Hub) SendToUser(userID string, data []byte) int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	sent := 0
	for _, client := range h.clients[userID] {
		select {
		case client.Send <- data:
			sent++
		default:
		}
	}
	return sent
}

func (h *Hub) SendTransactionStatus(userID, transactionID, status string) {
	data, err := json.Marshal(TransactionStatusUpdate{
		Type:          "transaction_status",
		TransactionID: transactionID,
		Status:        status,
	})
	if err != nil {
		h.log.Error("ws marshal failed", "error", err)
		return
	}
	h.SendToUser(userID, data)
}

// Stats trả về số user và số kết nối đang mở.
func (h *Hub) Stats() (users, connections int) {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	for _, clients := range h.clients {
		users++
		connections += len(clients)
	}
	return users, connections
}

func (h *Hub) writePump(client *Client) {
	defer client.Conn.Close()
	for msg := range client.Send {
		if err := client.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			break
		}
	}
	_ = client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
}
