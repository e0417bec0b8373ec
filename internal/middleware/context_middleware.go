package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-hrms/internal/shared/contextutil"
)

// ContextLogger seeds the request context with a logger scoped by request id
// and, once auth has run, the acting user. Services pick it up through
// contextutil.GetLogger.
func ContextLogger(base *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := base
		if logger == nil {
			logger = zap.L()
		}

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
		}
		if rid := c.GetString("request_id"); rid != "" {
			fields = append(fields, zap.String("request_id", rid))
		}
		if uid := c.GetString("user_id"); uid != "" {
			fields = append(fields, zap.String("user_id", uid))
		}

		ctx := contextutil.WithLogger(c.Request.Context(), logger.With(fields...))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
