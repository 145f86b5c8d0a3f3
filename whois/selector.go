/*
 * @Author: AsisYu
 * @Date: 2025-05-09 10:48:02
 * @Description: WHOIS服务器选择器
 */
package whois

import (
	"net"
	"strings"

	"whoseek/types"
	"whoseek/utils"
)

// SelectServer 根据查询和类型选择WHOIS服务器
// 纯函数，无副作用；未知TLD和IP段总能落到兜底服务器，绝不失败
func SelectServer(query, queryType string) string {
	if queryType == types.QueryTypeIP || utils.IsValidIP(query) {
		return selectIPServer(query)
	}

	domain := strings.ToLower(query)
	parts := strings.Split(domain, ".")
	tld := parts[len(parts)-1]
	if server, ok := tldServers[tld]; ok {
		return server
	}
	return defaultWhoisServer
}

// selectIPServer 按首字节数值把IP归入对应的RIR
// 首字节划分是对真实分配边界的有意简化，保留原有行为
func selectIPServer(ip string) string {
	// 保留/私有地址段统一交给IANA
	if utils.IsPrivateIP(ip) {
		return rirServers["iana"]
	}

	parsed := net.ParseIP(ip)
	if parsed == nil {
		return rirServers["ripe"]
	}
	v4 := parsed.To4()
	if v4 == nil {
		// IPv6走RIPE兜底
		return rirServers["ripe"]
	}

	switch first := int(v4[0]); {
	case first <= 126:
		return rirServers["arin"]
	case first <= 191:
		return rirServers["ripe"]
	case first <= 223:
		return rirServers["apnic"]
	default:
		return rirServers["ripe"]
	}
}
