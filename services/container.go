/*
 * @Author: AsisYu
 * @Date: 2025-05-12 17:30:14
 * @Description: 服务容器 - 统一管理服务组件
 */
package services

import (
	"time"

	"github.com/go-redis/redis/v8"

	"whoseek/pkg/logger"
	"whoseek/whois"
)

// ServiceContainer 聚合全部服务组件，注入到请求上下文
type ServiceContainer struct {
	RedisClient *redis.Client
	Whois       *WhoisService
	DNS         *DNSService
	Limiter     *RateLimiter
}

// NewServiceContainer 创建并装配服务容器
func NewServiceContainer(rdb *redis.Client) *ServiceContainer {
	log := logger.Module("Container")
	log.Info("初始化服务容器")

	return &ServiceContainer{
		RedisClient: rdb,
		Whois:       NewWhoisService(rdb, whois.NewClient()),
		DNS:         NewDNSService(),
	}
}

// InitializeLimiter 初始化分布式限流器
func (sc *ServiceContainer) InitializeLimiter(keyPrefix string, limit int, window time.Duration) {
	if sc.RedisClient != nil {
		sc.Limiter = NewRateLimiter(sc.RedisClient, keyPrefix, limit, window)
	}
}

// Shutdown 关闭容器持有的资源
func (sc *ServiceContainer) Shutdown() {
	if sc.RedisClient != nil {
		logger.Module("Container").Info("关闭Redis连接")
		_ = sc.RedisClient.Close()
	}
}
