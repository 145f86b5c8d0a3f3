/*
 * @Author: AsisYu
 * @Date: 2025-05-11 09:17:25
 * @Description: 记录标准化 - 日期解析、派生指标与空值裁剪
 */
package whois

import (
	"context"
	"math"
	"net"
	"strconv"
	"strings"
	"time"

	"whoseek/types"
)

// Normalizer 对解析后的记录做后处理，幂等的纯变换
// now可注入以便测试固定时间
type Normalizer struct {
	now      func() time.Time
	resolver *net.Resolver
}

// NewNormalizer 创建默认标准化器
func NewNormalizer() *Normalizer {
	return &Normalizer{
		now:      time.Now,
		resolver: net.DefaultResolver,
	}
}

// dateLayouts 候选日期布局，按常见程度排序
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.000Z",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02-Jan-2006",
	"2006.01.02",
	"2006/01/02",
	"02/01/2006",
	"20060102",
}

// NormalizeDate 依序尝试多种字符串变换与布局组合，
// 首个解析成功的结果以RFC3339(UTC)返回；全部失败时原样保留输入，
// 宁可保留原文也不丢信息
func NormalizeDate(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return raw
	}
	// 去掉括号附注，如 "2020-01-01 (JST)"
	if idx := strings.Index(s, "("); idx != -1 {
		s = strings.TrimSpace(s[:idx])
	}

	for _, candidate := range dateCandidates(s) {
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, candidate); err == nil {
				return t.UTC().Format(time.RFC3339)
			}
		}
	}
	return raw
}

// dateCandidates 同一原始串的有序变换候选
func dateCandidates(s string) []string {
	cands := []string{s}
	// 空格换成日期时间分隔符并补零时区偏移
	if strings.Contains(s, " ") {
		cands = append(cands, strings.Replace(s, " ", "T", 1)+"Z")
	}
	// 点分隔换成横线
	if strings.Contains(s, ".") {
		cands = append(cands, strings.ReplaceAll(s, ".", "-"))
	}
	// 截断到内嵌分隔符之前的日期部分
	if idx := strings.IndexAny(s, "T "); idx != -1 {
		cands = append(cands, s[:idx])
	}
	return cands
}

// Normalize 标准化日期、计算派生指标、补全反向DNS并裁剪空分支
// 对已标准化的记录重复调用结果不变
func (n *Normalizer) Normalize(ctx context.Context, rec *types.WhoisRecord) *types.WhoisRecord {
	if rec.Registration != nil {
		r := rec.Registration
		if r.Created != "" {
			r.Created = NormalizeDate(r.Created)
		}
		if r.Expires != "" {
			r.Expires = NormalizeDate(r.Expires)
		}
		if r.Updated != "" {
			r.Updated = NormalizeDate(r.Updated)
		}
		if r.LastTransferred != "" {
			r.LastTransferred = NormalizeDate(r.LastTransferred)
		}
		n.computeDerived(r)
	}

	// IP记录尽力补全反向DNS，任何失败都不外传
	if rec.QueryType == types.QueryTypeIP && rec.IP != "" &&
		rec.Technical != nil && len(rec.Technical.ReverseDNS) == 0 {
		rec.Technical.ReverseDNS = n.reverseDNS(ctx, rec.IP)
	}

	pruneRecord(rec)
	return rec
}

// computeDerived 从可解析的日期计算年龄与到期倒计时
// 日期解析失败时对应指标整体缺席，不猜测
func (n *Normalizer) computeDerived(r *types.Registration) {
	now := n.now().UTC()

	if t, err := time.Parse(time.RFC3339, r.Created); err == nil {
		days := int(now.Sub(t).Hours() / 24)
		r.AgeDays = &days
		r.AgeYears = strconv.FormatFloat(float64(days)/365.25, 'f', 1, 64)
	}

	if t, err := time.Parse(time.RFC3339, r.Expires); err == nil {
		days := int(math.Ceil(t.Sub(now).Hours() / 24))
		soon := days <= 30
		expired := days < 0
		r.DaysUntilExpiry = &days
		r.ExpiringSoon = &soon
		r.Expired = &expired
	}
}

// reverseDNS 反向解析IP，失败时返回占位列表而不是错误
func (n *Normalizer) reverseDNS(ctx context.Context, ip string) []string {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	names, err := n.resolver.LookupAddr(ctx, ip)
	if err != nil || len(names) == 0 {
		return []string{"No reverse DNS record"}
	}
	for i, name := range names {
		names[i] = strings.TrimSuffix(name, ".")
	}
	return names
}

// pruneRecord 递归裁剪空叶子与空分支
// 键缺席表示"未知"，而不是空字符串
func pruneRecord(rec *types.WhoisRecord) {
	if rec.Registrar != nil && *rec.Registrar == (types.Registrar{}) {
		rec.Registrar = nil
	}
	if rec.Registration != nil && registrationEmpty(rec.Registration) {
		rec.Registration = nil
	}
	if rec.Network != nil && *rec.Network == (types.Network{}) {
		rec.Network = nil
	}
	if rec.ASN != nil && *rec.ASN == (types.ASN{}) {
		rec.ASN = nil
	}
	if rec.Organization != nil && *rec.Organization == (types.Organization{}) {
		rec.Organization = nil
	}
	if rec.Abuse != nil && *rec.Abuse == (types.Abuse{}) {
		rec.Abuse = nil
	}
	if rec.Technical != nil && len(rec.Technical.ReverseDNS) == 0 {
		rec.Technical = nil
	}
	if rec.Contacts != nil {
		cs := rec.Contacts
		cs.Registrant = pruneContact(cs.Registrant)
		cs.Admin = pruneContact(cs.Admin)
		cs.Technical = pruneContact(cs.Technical)
		cs.Billing = pruneContact(cs.Billing)
		if cs.Registrant == nil && cs.Admin == nil && cs.Technical == nil && cs.Billing == nil {
			rec.Contacts = nil
		}
	}
}

func registrationEmpty(r *types.Registration) bool {
	return r.Created == "" && r.Expires == "" && r.Updated == "" &&
		r.LastTransferred == "" && r.AgeDays == nil && r.DaysUntilExpiry == nil
}

func pruneContact(c *types.Contact) *types.Contact {
	if c == nil {
		return nil
	}
	if c.Address != nil && *c.Address == (types.Address{}) {
		c.Address = nil
	}
	if *c == (types.Contact{}) {
		return nil
	}
	return c
}
