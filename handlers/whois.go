/*
 * @Author: AsisYu
 * @Date: 2025-05-14 09:20:33
 * @Description: WHOIS查询处理器
 */
package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"whoseek/pkg/logger"
	"whoseek/services"
	"whoseek/types"
	"whoseek/utils"
)

// getServices 从上下文取出服务容器
func getServices(c *gin.Context) *services.ServiceContainer {
	return c.MustGet("services").(*services.ServiceContainer)
}

// WhoisHandler 单个域名或IP的WHOIS查询
// 查询参数已由路由层的校验中间件归一化并写入上下文
func WhoisHandler(c *gin.Context) {
	log := logger.WithRequest(c, "Whois")
	query := c.GetString("query")
	queryType := c.GetString("queryType")

	svc := getServices(c)
	start := time.Now()
	record, cached, err := svc.Whois.Lookup(c.Request.Context(), query, queryType)
	if err != nil {
		respondLookupError(c, log, query, err)
		return
	}

	utils.SuccessResponse(c, record, &utils.MetaInfo{
		Cached:     cached,
		Processing: time.Since(start).Milliseconds(),
	})
}

// AvailabilityHandler 域名可注册性检查
// NOT_FOUND在这里是正向结果，表示域名可注册
func AvailabilityHandler(c *gin.Context) {
	log := logger.WithRequest(c, "Availability")
	domain := c.GetString("query")

	svc := getServices(c)
	result, err := svc.Whois.CheckAvailability(c.Request.Context(), domain)
	if err != nil {
		respondLookupError(c, log, domain, err)
		return
	}

	utils.SuccessResponse(c, result, nil)
}

// respondLookupError 把查询错误分类映射为HTTP状态码
func respondLookupError(c *gin.Context, log interface{ Warnf(string, ...interface{}) }, query string, err error) {
	kind := types.KindOf(err)
	log.Warnf("查询失败: query=%s, kind=%s, err=%v", query, kind, err)

	switch kind {
	case types.ErrNotFound:
		utils.ErrorResponse(c, 404, string(kind), "未找到该域名或IP的注册信息")
	case types.ErrTimeout:
		utils.ErrorResponse(c, 504, string(kind), "WHOIS服务器响应超时")
	case types.ErrRateLimited:
		utils.ErrorResponse(c, 429, string(kind), "WHOIS服务器限流，请稍后重试")
	case types.ErrConnectionRefused, types.ErrServerNotFound, types.ErrEmptyResponse:
		utils.ErrorResponse(c, 502, string(kind), "WHOIS服务器不可用")
	default:
		utils.ErrorResponse(c, 500, string(kind), "查询过程中发生错误")
	}
}
