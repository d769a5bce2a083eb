package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Audit logs every state-changing request with the operator who made it.
func Audit(logger *zap.Logger, action string) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		start := time.Now().UTC()
		c.Next()

		operator := ""
		if claims := SessionClaims(c); claims != nil {
			operator = claims.Email
		}
		fields := []zap.Field{
			zap.String("action", action),
			zap.String("operator", operator),
			zap.String("path", c.FullPath()),
			zap.String("method", c.Request.Method),
			zap.Int("status", c.Writer.Status()),
			zap.Int64("latency_ms", time.Since(start).Milliseconds()),
			zap.String("ip", c.ClientIP()),
		}
		if uid := c.Param("uid"); uid != "" {
			fields = append(fields, zap.String("student_uid", uid))
		}
		if c.Writer.Status() >= 400 {
			logger.Warn("audit", fields...)
			return
		}
		logger.Info("audit", fields...)
	}
}
