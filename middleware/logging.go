/*
 * @Author: AsisYu
 * @Date: 2025-05-13 09:45:36
 * @Description: 访问日志中间件
 */
package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"whoseek/pkg/logger"
)

// AccessLog 记录每个请求的方法、路径、状态码与耗时
// 慢请求和出错请求提升为Warn级别
func AccessLog() gin.HandlerFunc {
	log := logger.Module("HTTP")
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		fields := []interface{}{
			"status", status,
			"method", c.Request.Method,
			"path", path,
			"latency_ms", latency.Milliseconds(),
			"client_ip", c.ClientIP(),
			"request_id", c.GetString("request_id"),
		}
		if query != "" {
			fields = append(fields, "query", query)
		}
		if len(c.Errors) > 0 {
			fields = append(fields, "errors", c.Errors.String())
		}

		if status >= 400 || latency > 500*time.Millisecond {
			log.Warnw("请求完成", fields...)
		} else {
			log.Infow("请求完成", fields...)
		}
	}
}
