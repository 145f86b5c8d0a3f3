/*
 * @Author: AsisYu
 * @Date: 2025-05-13 11:40:09
 * @Description: 服务注入中间件
 */
package middleware

import (
	"github.com/gin-gonic/gin"

	"whoseek/services"
)

// InjectServices 把服务容器挂到请求上下文，供handler取用
func InjectServices(container *services.ServiceContainer) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("services", container)
		c.Next()
	}
}
