package utils

// TruncateString 截断长字符串，超过最大长度时补省略号
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
