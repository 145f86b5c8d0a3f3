/*
 * @Author: AsisYu
 * @Date: 2025-05-08 20:15:33
 * @Description: 域名与IP工具函数
 */
package utils

import (
	"net"
	"regexp"
	"strings"

	"whoseek/types"
)

var domainRegex = regexp.MustCompile(`^([a-zA-Z0-9]([a-zA-Z0-9\-]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z]{2,}$`)

// IsValidDomain 验证域名格式是否有效
func IsValidDomain(domain string) bool {
	domain = stripURLParts(domain)
	return len(domain) <= 253 && domainRegex.MatchString(domain)
}

// SanitizeDomain 清理并标准化域名：去协议前缀、端口、路径并转小写
func SanitizeDomain(domain string) string {
	return strings.ToLower(stripURLParts(domain))
}

// stripURLParts 去掉协议前缀、www、端口与路径
func stripURLParts(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "http://"), "https://")
	s = strings.TrimPrefix(s, "www.")
	if idx := strings.Index(s, "/"); idx != -1 {
		s = s[:idx]
	}
	if idx := strings.Index(s, ":"); idx != -1 {
		s = s[:idx]
	}
	return s
}

// IsValidIP 验证是否为合法的IPv4或IPv6地址
func IsValidIP(ip string) bool {
	return net.ParseIP(ip) != nil
}

// IsPrivateIP 判断IP是否属于保留/私有地址段
func IsPrivateIP(ip string) bool {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return false
	}

	if v4 := parsed.To4(); v4 != nil {
		switch {
		case v4[0] == 10: // 10.0.0.0/8
			return true
		case v4[0] == 172 && v4[1] >= 16 && v4[1] <= 31: // 172.16.0.0/12
			return true
		case v4[0] == 192 && v4[1] == 168: // 192.168.0.0/16
			return true
		case v4[0] == 127: // 127.0.0.0/8
			return true
		case v4[0] == 169 && v4[1] == 254: // 169.254.0.0/16 链路本地
			return true
		}
		return false
	}

	lower := strings.ToLower(ip)
	if lower == "::1" {
		return true
	}
	return strings.HasPrefix(lower, "fc00:") || strings.HasPrefix(lower, "fd00:") ||
		strings.HasPrefix(lower, "fe80:") || strings.HasPrefix(lower, "2001:db8:")
}

// ResolveQueryType 把auto解析为具体类型；两者都不匹配时按域名处理
func ResolveQueryType(query, queryType string) string {
	if queryType != types.QueryTypeAuto && queryType != "" {
		return queryType
	}
	if IsValidDomain(query) {
		return types.QueryTypeDomain
	}
	if IsValidIP(query) {
		return types.QueryTypeIP
	}
	return types.QueryTypeDomain
}

// ValidateQuery 校验查询串并返回标准化后的查询与解析出的类型
func ValidateQuery(query, queryType string) (string, string, bool) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", "", false
	}

	if queryType == types.QueryTypeDomain || queryType == types.QueryTypeAuto || queryType == "" {
		if IsValidDomain(query) {
			return SanitizeDomain(query), types.QueryTypeDomain, true
		}
	}
	if queryType == types.QueryTypeIP || queryType == types.QueryTypeAuto || queryType == "" {
		if IsValidIP(query) {
			return query, types.QueryTypeIP, true
		}
	}
	return "", "", false
}
