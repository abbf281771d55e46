package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/mediaranker/internal/domain/ports"
)

// RequestLogger registra cada requisição com status, duração e usuário
func RequestLogger(logger ports.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		args := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
		}
		if user := CurrentUser(c); user != nil {
			args = append(args, "user_id", user.ID)
		}

		switch status := c.Writer.Status(); {
		case status >= 500:
			logger.Error("request", args...)
		case status >= 400:
			logger.Warn("request", args...)
		default:
			logger.Info("request", args...)
		}
	}
}
