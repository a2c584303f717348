package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func (h *Controller) HealthCheck(c *gin.Context) {
	users, conns := 0, 0
	if h.hub != nil {
		users, conns = h.hub.Stats()
	}

	// Mặc định trạng thái OK
	response := gin.H{
		"status":    "ok",
		"message":   "Service is healthy",
		"timestamp": time.Now().Unix(),
		"db":        "ok",
		"websocket": gin.H{
			"users":       users,
			"connections": conns,
		},
	}

	sqlDB, err := h.store.DB().DB()
	if err != nil {
		response["db"] = "error: cannot get DB instance"
		response["status"] = "degraded"
		c.JSON(http.StatusInternalServerError, response)
		return
	}
	if err := sqlDB.PingContext(c.Request.Context()); err != nil {
		response["db"] = "error: cannot connect to DB"
		response["status"] = "degraded"
		c.JSON(http.StatusInternalServerError, response)
		return
	}

	c.JSON(http.StatusOK, response)
}
