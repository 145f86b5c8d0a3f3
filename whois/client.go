/*
 * @Author: AsisYu
 * @Date: 2025-05-09 14:33:19
 * @Description: 基于TCP端口43的WHOIS协议客户端
 */
package whois

import (
	"context"
	"errors"
	"io"
	"net"
	"strings"
	"time"

	"whoseek/types"
)

const (
	whoisPort        = "43"
	queryTimeout     = 20 * time.Second
	maxReferralHops  = 5 // 注册局与注册商之间可能互相引用，封顶避免死循环
	minResponseBytes = 10
)

// Dialer 可注入的拨号函数，测试时替换为本地假服务器
type Dialer func(ctx context.Context, network, address string) (net.Conn, error)

// ProtocolClient WHOIS协议客户端，负责发送查询、收集应答、跟随引用
type ProtocolClient struct {
	timeout time.Duration
	maxHops int
	dial    Dialer
}

// NewProtocolClient 创建默认配置的协议客户端
func NewProtocolClient() *ProtocolClient {
	d := &net.Dialer{}
	return &ProtocolClient{
		timeout: queryTimeout,
		maxHops: maxReferralHops,
		dial:    d.DialContext,
	}
}

// Query 向选定服务器发送查询并跟随引用重定向，返回原始应答
// 未注册与上游限流的短语扫描在结构化解析之前完成，直接短路为对应错误
func (c *ProtocolClient) Query(ctx context.Context, server, query string) (*types.RawResponse, error) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	visited := make(map[string]bool)
	current := strings.ToLower(server)
	used := current
	var data string

	for hop := 0; hop <= c.maxHops; hop++ {
		if visited[current] {
			break
		}
		visited[current] = true

		text, err := c.rawQuery(ctx, current, query)
		if err != nil {
			if hop == 0 {
				return nil, err
			}
			// 引用跳转失败时保留上一跳的应答
			break
		}
		data = text
		used = current

		next := extractReferral(text)
		if next == "" || visited[next] {
			break
		}
		current = next
	}

	if len(strings.TrimSpace(data)) < minResponseBytes {
		return nil, types.NewLookupError(types.ErrEmptyResponse, used, "WHOIS服务器返回空响应", nil)
	}
	if containsAny(data, notFoundPhrases) {
		return nil, types.NewLookupError(types.ErrNotFound, used, "域名或IP未在WHOIS数据库中找到", nil)
	}
	if containsAny(data, rateLimitPhrases) {
		return nil, types.NewLookupError(types.ErrRateLimited, used, "WHOIS查询频率超出上游限制", nil)
	}

	return &types.RawResponse{Data: data, Server: used, Elapsed: time.Since(start)}, nil
}

// rawQuery 单次查询：拨号、发送、读到连接关闭为止
func (c *ProtocolClient) rawQuery(ctx context.Context, server, query string) (string, error) {
	addr := server
	if !strings.Contains(addr, ":") {
		addr = net.JoinHostPort(server, whoisPort)
	}

	conn, err := c.dial(ctx, "tcp", addr)
	if err != nil {
		return "", classifyDialError(server, err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		conn.SetDeadline(deadline)
	}

	if _, err := conn.Write([]byte(query + "\r\n")); err != nil {
		return "", types.NewLookupError(types.ErrOther, server, "发送查询失败", err)
	}

	var sb strings.Builder
	buf := make([]byte, 4096)
	for {
		n, err := conn.Read(buf)
		if n > 0 {
			sb.Write(buf[:n])
		}
		if err != nil {
			if err != io.EOF && sb.Len() == 0 {
				var ne net.Error
				if errors.As(err, &ne) && ne.Timeout() {
					return "", types.NewLookupError(types.ErrTimeout, server, "WHOIS查询超时", err)
				}
			}
			break
		}
	}
	return sb.String(), nil
}

// classifyDialError 从传输层错误本身归类，不依赖应答内容
func classifyDialError(server string, err error) *types.LookupError {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return types.NewLookupError(types.ErrServerNotFound, server, "WHOIS服务器地址无法解析", err)
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return types.NewLookupError(types.ErrTimeout, server, "连接WHOIS服务器超时", err)
	}
	if strings.Contains(err.Error(), "connection refused") {
		return types.NewLookupError(types.ErrConnectionRefused, server, "WHOIS服务器拒绝连接", err)
	}
	return types.NewLookupError(types.ErrOther, server, "连接WHOIS服务器失败", err)
}

// referralMarkers 应答中指向更权威服务器的引用标记
var referralMarkers = []string{"referralserver:", "whois server:", "refer:"}

// extractReferral 从应答中提取下一跳服务器，没有则返回空串
func extractReferral(data string) string {
	for _, line := range strings.Split(data, "\n") {
		trimmed := strings.TrimSpace(line)
		lower := strings.ToLower(trimmed)
		for _, marker := range referralMarkers {
			if !strings.HasPrefix(lower, marker) {
				continue
			}
			host := strings.TrimSpace(trimmed[len(marker):])
			host = strings.TrimPrefix(host, "rwhois://")
			host = strings.TrimPrefix(host, "whois://")
			if i := strings.Index(host, "/"); i != -1 {
				host = host[:i]
			}
			if host != "" {
				return strings.ToLower(host)
			}
		}
	}
	return ""
}

func containsAny(data string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(data, p) {
			return true
		}
	}
	return false
}
