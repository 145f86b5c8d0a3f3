/*
 * @Author: AsisYu
 * @Date: 2025-05-14 10:38:50
 * @Description: DNS记录查询处理器
 */
package handlers

import (
	"encoding/json"
	"time"

	"github.com/gin-gonic/gin"

	"whoseek/pkg/logger"
	"whoseek/types"
	"whoseek/utils"
)

const dnsCacheTTL = 5 * time.Minute

// DNSHandler 查询域名的常见DNS记录
func DNSHandler(c *gin.Context) {
	log := logger.WithRequest(c, "DNS")
	domain := c.GetString("query")

	svc := getServices(c)
	ctx := c.Request.Context()

	cacheKey := utils.BuildCacheKey("cache", "dns", domain)
	if data, err := svc.RedisClient.Get(ctx, cacheKey).Result(); err == nil {
		var result types.DNSResult
		if json.Unmarshal([]byte(data), &result) == nil {
			utils.SuccessResponse(c, result, &utils.MetaInfo{Cached: true})
			return
		}
	}

	result := svc.DNS.GetRecords(ctx, domain)

	if data, err := json.Marshal(result); err == nil {
		if err := svc.RedisClient.Set(ctx, cacheKey, data, dnsCacheTTL).Err(); err != nil {
			log.Warnf("DNS结果缓存失败: %v", err)
		}
	}

	utils.SuccessResponse(c, result, nil)
}
