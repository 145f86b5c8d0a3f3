package whois

import (
	"context"
	"errors"
	"net"
	"reflect"
	"testing"
	"time"

	"whoseek/types"
)

// fixedClock 固定时间的标准化器，派生指标可精确断言
func fixedClock(t time.Time) *Normalizer {
	return &Normalizer{
		now:      func() time.Time { return t },
		resolver: net.DefaultResolver,
	}
}

// TestNormalizeDate 测试各注册局常见日期格式的归一
func TestNormalizeDate(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2024-01-02T03:04:05Z", "2024-01-02T03:04:05Z"},
		{"2024-01-02 03:04:05", "2024-01-02T03:04:05Z"},
		{"2024-01-02", "2024-01-02T00:00:00Z"},
		{"02-Jan-2024", "2024-01-02T00:00:00Z"},
		{"2024.01.02", "2024-01-02T00:00:00Z"},
		{"2024/01/02", "2024-01-02T00:00:00Z"},
		{"02/01/2024", "2024-01-02T00:00:00Z"},
		{"20240102", "2024-01-02T00:00:00Z"},
		// 括号附注剥掉后再解析
		{"2024-05-06 (JST)", "2024-05-06T00:00:00Z"},
		// 带时区偏移统一折算到UTC
		{"2024-01-02T03:04:05+08:00", "2024-01-01T19:04:05Z"},
		// 解析不了的输入原样保留
		{"before 1995", "before 1995"},
		{"", ""},
	}

	for _, tc := range cases {
		got := NormalizeDate(tc.in)
		if got != tc.want {
			t.Errorf("NormalizeDate(%q) = %q, 期望 %q", tc.in, got, tc.want)
		}
	}
	t.Logf("✅ %d种日期格式归一正确", len(cases))
}

// TestNormalizeDateIdempotent 已经归一过的值重复处理结果不变
func TestNormalizeDateIdempotent(t *testing.T) {
	once := NormalizeDate("2020-01-15 08:30:00")
	twice := NormalizeDate(once)
	if once != twice {
		t.Errorf("二次归一改变了结果: %q -> %q", once, twice)
	}
}

// TestComputeDerived 固定时钟下的年龄与到期指标
func TestComputeDerived(t *testing.T) {
	now := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	n := fixedClock(now)

	rec := &types.WhoisRecord{
		QueryType: types.QueryTypeDomain,
		Registration: &types.Registration{
			Created: "2020-01-15T00:00:00Z",
			Expires: "2024-02-01T00:00:00Z",
		},
	}
	n.Normalize(context.Background(), rec)

	r := rec.Registration
	if r.AgeDays == nil || *r.AgeDays != 1461 {
		t.Fatalf("AgeDays = %v, 期望1461 (含闰日)", r.AgeDays)
	}
	if r.AgeYears != "4.0" {
		t.Errorf("AgeYears = %q, 期望4.0", r.AgeYears)
	}
	if r.DaysUntilExpiry == nil || *r.DaysUntilExpiry != 17 {
		t.Fatalf("DaysUntilExpiry = %v, 期望17", r.DaysUntilExpiry)
	}
	if r.ExpiringSoon == nil || !*r.ExpiringSoon {
		t.Error("17天内到期应标记ExpiringSoon")
	}
	if r.Expired == nil || *r.Expired {
		t.Error("未过期不应标记Expired")
	}
	t.Log("✅ 派生指标计算正确")
}

// TestComputeDerivedExpired 已过期域名的标记
func TestComputeDerivedExpired(t *testing.T) {
	now := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	n := fixedClock(now)

	rec := &types.WhoisRecord{
		QueryType: types.QueryTypeDomain,
		Registration: &types.Registration{
			Expires: "2024-01-10T00:00:00Z",
		},
	}
	n.Normalize(context.Background(), rec)

	r := rec.Registration
	if r.DaysUntilExpiry == nil || *r.DaysUntilExpiry != -5 {
		t.Fatalf("DaysUntilExpiry = %v, 期望-5", r.DaysUntilExpiry)
	}
	if r.Expired == nil || !*r.Expired {
		t.Error("过期域名应标记Expired")
	}
}

// TestDerivedAbsentOnUnparseableDates 日期解析失败时派生指标整体缺席
func TestDerivedAbsentOnUnparseableDates(t *testing.T) {
	n := fixedClock(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))
	rec := &types.WhoisRecord{
		QueryType: types.QueryTypeDomain,
		Registration: &types.Registration{
			Created: "before 1995",
		},
	}
	n.Normalize(context.Background(), rec)

	r := rec.Registration
	if r.Created != "before 1995" {
		t.Errorf("无法解析的日期应原样保留, 实际 %q", r.Created)
	}
	if r.AgeDays != nil || r.DaysUntilExpiry != nil || r.ExpiringSoon != nil {
		t.Error("日期无法解析时不应产生派生指标")
	}
}

// TestNormalizeIdempotent 对整条记录重复标准化结果不变
func TestNormalizeIdempotent(t *testing.T) {
	n := fixedClock(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))
	rec := &types.WhoisRecord{
		QueryType: types.QueryTypeDomain,
		Domain:    "example.com",
		Registration: &types.Registration{
			Created: "2020-01-15 08:30:00",
			Expires: "2025.06.01",
		},
	}
	n.Normalize(context.Background(), rec)
	snapshot := *rec.Registration

	n.Normalize(context.Background(), rec)
	if !reflect.DeepEqual(snapshot, *rec.Registration) {
		t.Errorf("二次标准化改变了记录: %+v -> %+v", snapshot, *rec.Registration)
	}
}

// TestPruneEmptyBranches 空分支裁剪为nil，序列化时键缺席
func TestPruneEmptyBranches(t *testing.T) {
	n := fixedClock(time.Now())
	raw := &types.RawResponse{Data: "Domain Name: example.com\n"}
	rec := ParseResponse(raw, "example.com", types.QueryTypeDomain)
	n.Normalize(context.Background(), rec)

	if rec.Registrar != nil {
		t.Error("无注册商信息时Registrar应为nil")
	}
	if rec.Registration != nil {
		t.Error("无日期信息时Registration应为nil")
	}
	if rec.Contacts != nil {
		t.Error("无联系人信息时Contacts应为nil")
	}
	if rec.Network != nil || rec.ASN != nil || rec.Organization != nil || rec.Abuse != nil {
		t.Error("域名查询的IP分支应全部为nil")
	}
	if rec.Technical != nil {
		t.Error("无反向DNS时Technical应为nil")
	}
	t.Log("✅ 空分支全部裁剪")
}

// TestReverseDNSPlaceholder 反向解析失败时填占位值而不是报错
func TestReverseDNSPlaceholder(t *testing.T) {
	n := &Normalizer{
		now: time.Now,
		resolver: &net.Resolver{
			PreferGo: true,
			Dial: func(ctx context.Context, network, address string) (net.Conn, error) {
				return nil, errors.New("resolver unavailable")
			},
		},
	}

	rec := &types.WhoisRecord{
		QueryType: types.QueryTypeIP,
		IP:        "203.0.113.10",
		Technical: &types.TechnicalInfo{},
	}
	n.Normalize(context.Background(), rec)

	if rec.Technical == nil || len(rec.Technical.ReverseDNS) != 1 ||
		rec.Technical.ReverseDNS[0] != "No reverse DNS record" {
		t.Errorf("Technical = %+v, 期望占位反向DNS", rec.Technical)
	}
}
