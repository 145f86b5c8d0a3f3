/*
 * @Author: AsisYu
 * @Date: 2025-05-14 10:02:17
 * @Description: 批量WHOIS查询处理器
 */
package handlers

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"whoseek/pkg/logger"
	"whoseek/types"
	"whoseek/utils"
	"whoseek/whois"
)

const bulkCacheTTL = 30 * time.Minute

type bulkRequest struct {
	Queries []string `json:"queries" binding:"required"`
	Type    string   `json:"type"`
}

// BulkWhoisHandler 批量查询，逐个串行执行
// 整批结果按查询列表哈希短期缓存
func BulkWhoisHandler(c *gin.Context) {
	log := logger.WithRequest(c, "Bulk")

	var req bulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, 400, "INVALID_REQUEST", "请求体格式错误：需要queries数组")
		return
	}
	if len(req.Queries) == 0 {
		utils.ErrorResponse(c, 400, "INVALID_REQUEST", "queries不能为空")
		return
	}
	if len(req.Queries) > whois.MaxBulkQueries {
		utils.ErrorResponse(c, 400, "TOO_MANY_QUERIES",
			fmt.Sprintf("批量查询最多支持%d个", whois.MaxBulkQueries))
		return
	}
	if req.Type == "" {
		req.Type = types.QueryTypeAuto
	}

	svc := getServices(c)
	ctx := c.Request.Context()

	cacheKey := utils.BuildCacheKey("cache", "bulk", req.Type,
		utils.ShortHash10(strings.Join(req.Queries, ",")))
	if data, err := svc.RedisClient.Get(ctx, cacheKey).Result(); err == nil {
		var results []types.BulkResult
		if json.Unmarshal([]byte(data), &results) == nil {
			utils.SuccessResponse(c, results, &utils.MetaInfo{Cached: true})
			return
		}
	}

	results, err := svc.Whois.BulkLookup(ctx, req.Queries, req.Type)
	if err != nil {
		utils.ErrorResponse(c, 400, "INVALID_REQUEST", err.Error())
		return
	}

	if data, err := json.Marshal(results); err == nil {
		if err := svc.RedisClient.Set(ctx, cacheKey, data, bulkCacheTTL).Err(); err != nil {
			log.Warnf("批量结果缓存失败: %v", err)
		}
	}

	utils.SuccessResponse(c, results, nil)
}
