package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vnkhanh/elearning-backend/logger"
)

// RequestLogger ghi method, path, status, latency và IP của mỗi request.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		kv := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"ip", c.ClientIP(),
			"bytes", c.Writer.Size(),
		}
		if len(c.Errors) > 0 {
			kv = append(kv, "errors", c.Errors.String())
		}

		switch status := c.Writer.Status(); {
		case status >= 500:
			log.Error("request completed", kv...)
		case status >= 400:
			log.Warn("request completed", kv...)
		default:
			log.Info("request completed", kv...)
		}
	}
}
