/*
 * @Author: AsisYu
 * @Date: 2025-05-11 15:02:58
 * @Description: WHOIS查询管道 - 选择服务器、协议查询、解析、标准化
 */
package whois

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"whoseek/pkg/logger"
	"whoseek/types"
	"whoseek/utils"
)

// Client 端到端的WHOIS查询管道
// 每次查询独立无共享状态，可安全并发调用
type Client struct {
	protocol   *ProtocolClient
	normalizer *Normalizer
	bulkDelay  time.Duration
	log        *zap.SugaredLogger
}

// NewClient 创建默认配置的查询管道
func NewClient() *Client {
	return &Client{
		protocol:   NewProtocolClient(),
		normalizer: NewNormalizer(),
		bulkDelay:  bulkQueryDelay,
		log:        logger.Module("Whois"),
	}
}

// Lookup 执行一次完整查询：解析类型 → 选择服务器 → 协议查询 → 解析 → 标准化
// 失败时返回分类过的LookupError，内部不做重试
func (c *Client) Lookup(ctx context.Context, query, queryType string) (*types.WhoisRecord, error) {
	query = strings.TrimSpace(query)
	queryType = utils.ResolveQueryType(query, queryType)

	server := SelectServer(query, queryType)
	c.log.Infof("WHOIS查询: %s (%s) → %s", query, queryType, server)

	raw, err := c.protocol.Query(ctx, server, query)
	if err != nil {
		c.log.Warnf("WHOIS查询失败: %s: %v", query, err)
		return nil, err
	}

	c.log.Debugf("应答: server=%s bytes=%d 预览=%q",
		raw.Server, len(raw.Data), utils.TruncateString(raw.Data, 120))

	rec := ParseResponse(raw, query, queryType)
	return c.normalizer.Normalize(ctx, rec), nil
}
