/*
 * @Author: AsisYu
 * @Date: 2025-05-13 10:08:44
 * @Description: 错误处理与恢复中间件
 */
package middleware

import (
	"github.com/gin-gonic/gin"

	"whoseek/pkg/logger"
	"whoseek/utils"
)

// ErrorHandler 兜底的panic恢复与未处理错误响应
func ErrorHandler() gin.HandlerFunc {
	log := logger.Module("Error")
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Errorf("panic恢复: %v, path=%s", r, c.Request.URL.Path)
				utils.ErrorResponse(c, 500, "INTERNAL_SERVER_ERROR", "服务器内部错误")
				c.Abort()
			}
		}()

		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			log.Errorf("未处理错误: %v", c.Errors.Last())
			utils.ErrorResponse(c, 500, "INTERNAL_SERVER_ERROR", "服务器内部错误")
		}
	}
}
