/*
 * @Author: AsisYu
 * @Date: 2025-05-13 10:32:18
 * @Description: 基于IP的内存限流中间件
 */
package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"whoseek/services"
	"whoseek/utils"
)

type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter 针对单个客户端IP的令牌桶限流
// 作为Redis滑动窗口限流之外的本机第一道防线
type IPRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*ipLimiter
	rate     rate.Limit
	burst    int
}

func NewIPRateLimiter(r rate.Limit, burst int) *IPRateLimiter {
	l := &IPRateLimiter{
		limiters: make(map[string]*ipLimiter),
		rate:     r,
		burst:    burst,
	}
	go l.cleanupLoop()
	return l
}

func (l *IPRateLimiter) get(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.limiters[ip]
	if !ok {
		entry = &ipLimiter{limiter: rate.NewLimiter(l.rate, l.burst)}
		l.limiters[ip] = entry
	}
	entry.lastSeen = time.Now()
	return entry.limiter
}

// cleanupLoop 定期清理长时间不活跃的IP，防止map无限增长
func (l *IPRateLimiter) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		l.mu.Lock()
		for ip, entry := range l.limiters {
			if time.Since(entry.lastSeen) > 10*time.Minute {
				delete(l.limiters, ip)
			}
		}
		l.mu.Unlock()
	}
}

// RateLimit 超出限额返回429
func RateLimit(limiter *IPRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.get(c.ClientIP()).Allow() {
			utils.ErrorResponse(c, 429, "RATE_LIMITED", "请求过于频繁，请稍后再试")
			c.Abort()
			return
		}
		c.Next()
	}
}

// DistributedRateLimit 基于Redis滑动窗口的第二道限流，多实例部署时共享计数
// Redis不可用时放行，限流是保护措施而不是单点故障源
func DistributedRateLimit(limiter *services.RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}
		allowed, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			c.Next()
			return
		}
		if !allowed {
			utils.ErrorResponse(c, 429, "RATE_LIMITED", "请求超出频率限制，请稍后再试")
			c.Abort()
			return
		}
		c.Next()
	}
}
