package utils

import (
	"crypto/sha1"
	"encoding/hex"
	"strings"
)

// ShortHash10 用于在缓存键里标识长字符串（如批量查询列表）的短摘要
func ShortHash10(s string) string {
	sum := sha1.Sum([]byte(s))
	return hex.EncodeToString(sum[:])[:10]
}

// sanitizeKeyPart 规范化键片段：清理、转小写、限制长度
func sanitizeKeyPart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	if strings.Contains(s, "/") || strings.Contains(s, ":") ||
		strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
		s = SanitizeDomain(s)
	}
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "_")
	// 限制片段长度，避免Redis键无限膨胀
	if len(s) > 80 {
		s = s[:80]
	}
	return s
}

// BuildCacheKey 规范化各片段后用':'拼接为缓存键
func BuildCacheKey(parts ...string) string {
	if len(parts) == 0 {
		return ""
	}
	sanitized := make([]string, 0, len(parts))
	for _, p := range parts {
		sanitized = append(sanitized, sanitizeKeyPart(p))
	}
	return strings.Join(sanitized, ":")
}
