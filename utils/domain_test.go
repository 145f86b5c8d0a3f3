package utils

import (
	"testing"

	"whoseek/types"
)

// TestIsValidDomain 域名格式校验
func TestIsValidDomain(t *testing.T) {
	valid := []string{
		"example.com",
		"sub.example.co.uk",
		"xn--fiq228c.cn",
		"a-b.example.org",
		"https://example.com/path",
		"www.example.com",
	}
	invalid := []string{
		"",
		"localhost",
		"-bad.com",
		"bad-.com",
		"exa mple.com",
		"192.168.1.1",
	}

	for _, d := range valid {
		if !IsValidDomain(d) {
			t.Errorf("IsValidDomain(%q) = false, 期望true", d)
		}
	}
	for _, d := range invalid {
		if IsValidDomain(d) {
			t.Errorf("IsValidDomain(%q) = true, 期望false", d)
		}
	}
}

// TestSanitizeDomain 域名清理
func TestSanitizeDomain(t *testing.T) {
	cases := []struct{ in, want string }{
		{"EXAMPLE.COM", "example.com"},
		{"https://www.Example.com/path?q=1", "example.com"},
		{"example.com:8080", "example.com"},
		{"  example.com  ", "example.com"},
	}
	for _, tc := range cases {
		if got := SanitizeDomain(tc.in); got != tc.want {
			t.Errorf("SanitizeDomain(%q) = %q, 期望 %q", tc.in, got, tc.want)
		}
	}
}

// TestIsPrivateIP 私有与保留地址识别
func TestIsPrivateIP(t *testing.T) {
	private := []string{"10.1.2.3", "172.16.0.1", "172.31.255.255", "192.168.0.1", "127.0.0.1", "169.254.1.1", "::1", "fe80::1", "fd00::1"}
	public := []string{"8.8.8.8", "172.32.0.1", "193.0.0.1", "2001:4860:4860::8888"}

	for _, ip := range private {
		if !IsPrivateIP(ip) {
			t.Errorf("IsPrivateIP(%q) = false, 期望true", ip)
		}
	}
	for _, ip := range public {
		if IsPrivateIP(ip) {
			t.Errorf("IsPrivateIP(%q) = true, 期望false", ip)
		}
	}
}

// TestResolveQueryType auto类型按内容推断
func TestResolveQueryType(t *testing.T) {
	cases := []struct {
		query, queryType, want string
	}{
		{"example.com", types.QueryTypeAuto, types.QueryTypeDomain},
		{"8.8.8.8", types.QueryTypeAuto, types.QueryTypeIP},
		{"2001:4860:4860::8888", types.QueryTypeAuto, types.QueryTypeIP},
		{"not valid input", types.QueryTypeAuto, types.QueryTypeDomain},
		{"8.8.8.8", types.QueryTypeIP, types.QueryTypeIP},
		{"example.com", types.QueryTypeDomain, types.QueryTypeDomain},
	}
	for _, tc := range cases {
		if got := ResolveQueryType(tc.query, tc.queryType); got != tc.want {
			t.Errorf("ResolveQueryType(%q, %q) = %q, 期望 %q", tc.query, tc.queryType, got, tc.want)
		}
	}
}

// TestValidateQuery 校验加标准化
func TestValidateQuery(t *testing.T) {
	if q, qt, ok := ValidateQuery("HTTPS://Example.COM/page", types.QueryTypeAuto); !ok || q != "example.com" || qt != types.QueryTypeDomain {
		t.Errorf("ValidateQuery域名 = (%q, %q, %v)", q, qt, ok)
	}
	if q, qt, ok := ValidateQuery("8.8.8.8", types.QueryTypeAuto); !ok || q != "8.8.8.8" || qt != types.QueryTypeIP {
		t.Errorf("ValidateQuery IP = (%q, %q, %v)", q, qt, ok)
	}
	if _, _, ok := ValidateQuery("   ", types.QueryTypeAuto); ok {
		t.Error("空白查询应被拒绝")
	}
	if _, _, ok := ValidateQuery("8.8.8.8", types.QueryTypeDomain); ok {
		t.Error("类型为domain时IP应被拒绝")
	}
}
