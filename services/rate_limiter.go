/*
 * @Author: AsisYu
 * @Date: 2025-05-12 16:48:27
 * @Description: 基于Redis滑动窗口的分布式限流器
 */
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// RateLimiter Redis滑动窗口限流器，多实例部署时共享计数
type RateLimiter struct {
	rdb       *redis.Client
	keyPrefix string
	limit     int
	window    time.Duration
}

// NewRateLimiter 创建限流器
func NewRateLimiter(rdb *redis.Client, keyPrefix string, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		rdb:       rdb,
		keyPrefix: keyPrefix,
		limit:     limit,
		window:    window,
	}
}

// Allow 检查请求是否放行
func (rl *RateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	count, err := rl.windowCount(ctx, key, true)
	if err != nil {
		return false, err
	}
	return count <= int64(rl.limit), nil
}

// CurrentCount 查询当前窗口内的计数
func (rl *RateLimiter) CurrentCount(ctx context.Context, key string) (int64, error) {
	return rl.windowCount(ctx, key, false)
}

// windowCount 清理过期记录并返回窗口内计数，record为真时先写入本次请求
func (rl *RateLimiter) windowCount(ctx context.Context, key string, record bool) (int64, error) {
	redisKey := fmt.Sprintf("%s:%s", rl.keyPrefix, key)
	now := time.Now().UnixNano()
	windowStart := now - int64(rl.window)

	pipe := rl.rdb.Pipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "0", fmt.Sprintf("%d", windowStart))
	if record {
		pipe.ZAdd(ctx, redisKey, &redis.Z{Score: float64(now), Member: now})
	}
	countCmd := pipe.ZCard(ctx, redisKey)
	// 过期时间给窗口的两倍，避免冷键长期占内存
	pipe.Expire(ctx, redisKey, rl.window*2)

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return countCmd.Result()
}
