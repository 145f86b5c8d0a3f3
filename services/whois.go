/*
 * @Author: AsisYu
 * @Date: 2025-05-12 11:25:08
 * @Description: WHOIS查询服务 - 带Redis缓存的管道封装
 */
package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"whoseek/pkg/logger"
	"whoseek/types"
	"whoseek/utils"
	"whoseek/whois"
)

// WhoisService 在核心管道之上叠加缓存策略
// 管道本身对缓存无感知，缓存完全是调用方的事
type WhoisService struct {
	rdb    *redis.Client
	client *whois.Client
	log    *zap.SugaredLogger
}

// NewWhoisService 创建查询服务
func NewWhoisService(rdb *redis.Client, client *whois.Client) *WhoisService {
	return &WhoisService{
		rdb:    rdb,
		client: client,
		log:    logger.Module("WhoisService"),
	}
}

// Lookup 带缓存的单次查询，第二个返回值指示是否命中缓存
func (s *WhoisService) Lookup(ctx context.Context, query, queryType string) (*types.WhoisRecord, bool, error) {
	cacheKey := utils.BuildCacheKey("cache", "whois", queryType, query)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var rec types.WhoisRecord
			if json.Unmarshal([]byte(cached), &rec) == nil {
				s.log.Debugf("命中缓存: %s", query)
				return &rec, true, nil
			}
		}
	}

	rec, err := s.client.Lookup(ctx, query, queryType)
	if err != nil {
		return nil, false, err
	}

	if s.rdb != nil {
		if data, err := json.Marshal(rec); err == nil {
			s.rdb.Set(ctx, cacheKey, data, s.cacheDuration(rec))
		}
	}
	return rec, false, nil
}

// BulkLookup 批量查询不走缓存，节奏由核心管道控制
func (s *WhoisService) BulkLookup(ctx context.Context, queries []string, queryType string) ([]types.BulkResult, error) {
	return s.client.BulkLookup(ctx, queries, queryType)
}

// CheckAvailability 基于NOT_FOUND短路判断域名是否可注册
func (s *WhoisService) CheckAvailability(ctx context.Context, domain string) (*types.AvailabilityResult, error) {
	rec, _, err := s.Lookup(ctx, domain, types.QueryTypeDomain)
	if err != nil {
		if types.KindOf(err) == types.ErrNotFound {
			return &types.AvailabilityResult{Domain: domain, Available: true}, nil
		}
		return nil, err
	}
	return &types.AvailabilityResult{Domain: domain, Available: false, Data: rec}, nil
}

// cacheDuration 按到期时间分级缓存：越接近到期，数据变化越频繁，缓存越短
func (s *WhoisService) cacheDuration(rec *types.WhoisRecord) time.Duration {
	if rec == nil || rec.Registration == nil || rec.Registration.Expires == "" {
		return 24 * time.Hour
	}
	expiry, err := time.Parse(time.RFC3339, rec.Registration.Expires)
	if err != nil {
		// 到期日没能标准化成RFC3339，按默认缓存
		return 24 * time.Hour
	}

	switch days := time.Until(expiry).Hours() / 24; {
	case days <= 15:
		return 1 * time.Hour
	case days <= 30:
		return 6 * time.Hour
	case days <= 90:
		return 12 * time.Hour
	default:
		return 24 * time.Hour
	}
}
