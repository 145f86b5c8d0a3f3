/*
 * @Author: AsisYu
 * @Date: 2025-05-14 11:15:28
 * @Description: 健康检查处理器
 */
package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthHandler 报告服务与依赖的可用状态
// Redis不可用时降级为degraded而不是直接报错，查询主链路不依赖缓存
func HealthHandler(c *gin.Context) {
	svc := getServices(c)

	status := "ok"
	redisStatus := "ok"

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if err := svc.RedisClient.Ping(ctx).Err(); err != nil {
		redisStatus = "unavailable"
		status = "degraded"
	}

	c.JSON(200, gin.H{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
		"checks": gin.H{
			"redis": redisStatus,
		},
	})
}
