/*
 * @Author: AsisYu
 * @Date: 2025-05-13 09:12:20
 * @Description: 请求ID中间件 - 请求追踪
 */
package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"whoseek/pkg/logger"
)

// RequestID 生成或透传请求ID
// 优先使用客户端带来的X-Request-ID，否则生成新UUID
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		// gin context给中间件和handler用，标准context给service层用
		c.Set("request_id", requestID)
		ctx := context.WithValue(c.Request.Context(), logger.RequestIDKey, requestID)
		c.Request = c.Request.WithContext(ctx)

		c.Writer.Header().Set("X-Request-ID", requestID)
		c.Next()
	}
}
