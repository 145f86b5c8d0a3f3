/*
 * @Author: AsisYu
 * @Date: 2025-05-11 15:40:31
 * @Description: 批量查询驱动 - 串行节奏控制与独立成败记账
 */
package whois

import (
	"context"
	"fmt"
	"time"

	"whoseek/types"
)

const (
	// MaxBulkQueries 单批查询数量上限
	MaxBulkQueries = 10
	// bulkQueryDelay 相邻查询之间的固定间隔
	// 上游WHOIS服务普遍按源IP限流，串行加延迟是刻意的背压策略
	bulkQueryDelay = time.Second
)

// BulkLookup 顺序执行批量查询，单条失败只记录在该条结果里，批次继续
func (c *Client) BulkLookup(ctx context.Context, queries []string, queryType string) ([]types.BulkResult, error) {
	if len(queries) == 0 {
		return nil, fmt.Errorf("查询列表为空")
	}
	if len(queries) > MaxBulkQueries {
		return nil, fmt.Errorf("批量查询最多支持%d个，实际收到%d个", MaxBulkQueries, len(queries))
	}

	results := make([]types.BulkResult, 0, len(queries))
	for i, q := range queries {
		rec, err := c.Lookup(ctx, q, queryType)
		if err != nil {
			kind := types.KindOf(err)
			results = append(results, types.BulkResult{
				Query:   q,
				Success: false,
				Status:  kind.Outcome(),
				Error:   err.Error(),
			})
		} else {
			results = append(results, types.BulkResult{
				Query:   q,
				Success: true,
				Status:  types.OutcomeSuccess,
				Data:    rec,
			})
		}

		if i < len(queries)-1 {
			select {
			case <-time.After(c.bulkDelay):
			case <-ctx.Done():
				return results, ctx.Err()
			}
		}
	}
	return results, nil
}
