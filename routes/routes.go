/*
 * @Author: AsisYu
 * @Date: 2025-05-14 14:05:41
 * @Description: API路由注册
 */
package routes

import (
	"github.com/gin-gonic/gin"

	"whoseek/handlers"
	"whoseek/middleware"
	"whoseek/services"
	"whoseek/utils"
)

// queryValidationMiddleware 校验并归一化查询参数
// 通过后把规范化的query和解析出的queryType写入上下文
func queryValidationMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.Param("query")
		queryType := c.DefaultQuery("type", "auto")

		normalized, resolvedType, ok := utils.ValidateQuery(raw, queryType)
		if !ok {
			utils.ErrorResponse(c, 400, "INVALID_QUERY", "查询目标不是合法的域名或IP")
			c.Abort()
			return
		}

		c.Set("query", normalized)
		c.Set("queryType", resolvedType)
		c.Next()
	}
}

// domainValidationMiddleware 仅接受域名的路由用这个校验
func domainValidationMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		domain := utils.SanitizeDomain(c.Param("domain"))
		if !utils.IsValidDomain(domain) {
			utils.ErrorResponse(c, 400, "INVALID_DOMAIN", "域名格式不正确")
			c.Abort()
			return
		}

		c.Set("query", domain)
		c.Set("queryType", "domain")
		c.Next()
	}
}

// RegisterAPIRoutes 注册全部API路由
// /api/health和/api/auth/token开放访问，业务接口在v1分组下要求令牌
func RegisterAPIRoutes(r *gin.Engine, container *services.ServiceContainer) {
	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthHandler)
		api.POST("/auth/token", handlers.GenerateToken)

		v1 := api.Group("/v1")
		v1.Use(middleware.AuthRequired(container.RedisClient))
		v1.Use(middleware.DistributedRateLimit(container.Limiter))
		{
			v1.GET("/whois/:query", queryValidationMiddleware(), handlers.WhoisHandler)
			v1.POST("/whois/bulk", handlers.BulkWhoisHandler)
			v1.GET("/dns/:domain", domainValidationMiddleware(), handlers.DNSHandler)
			v1.GET("/availability/:domain", domainValidationMiddleware(), handlers.AvailabilityHandler)
		}
	}
}
