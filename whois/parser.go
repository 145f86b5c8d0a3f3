/*
 * @Author: AsisYu
 * @Date: 2025-05-10 16:05:44
 * @Description: WHOIS应答解析器 - 行分类与字段提取
 */
package whois

import (
	"strings"
	"time"

	"whoseek/types"
)

// contactRole 当前行所属的联系人节区上下文
type contactRole int

const (
	roleNone contactRole = iota
	roleRegistrant
	roleAdmin
	roleTechnical
	roleBilling
)

// taggedLine 带节区上下文的键值行
// key已小写，value保留原始大小写
type taggedLine struct {
	role  contactRole
	key   string
	value string
}

// classifyLines 把原始文本切分为带上下文的键值行流
// 只负责切分结构，不解释字段语义
func classifyLines(raw string) []taggedLine {
	lines := strings.Split(raw, "\n")
	out := make([]taggedLine, 0, len(lines))
	role := roleNone

	for _, line := range lines {
		line = strings.TrimSpace(line)
		// 空行与注释横幅直接丢弃
		if line == "" || strings.HasPrefix(line, "%") ||
			strings.HasPrefix(line, "#") || strings.HasPrefix(line, "*") {
			continue
		}

		// 形如 [Registrant] 的整行括号切换节区上下文
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			role = matchSection(strings.ToLower(strings.Trim(line, "[]")))
			continue
		}

		// 按第一个冒号切分键值，无冒号的行忽略
		idx := strings.Index(line, ":")
		if idx <= 0 {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(line[:idx]))
		value := strings.TrimSpace(line[idx+1:])
		if key == "" {
			continue
		}
		out = append(out, taggedLine{role: role, key: key, value: value})
	}
	return out
}

// matchSection 模糊匹配节区名到联系人角色，未识别的括号行清空上下文
func matchSection(section string) contactRole {
	switch {
	case strings.Contains(section, "registrant"):
		return roleRegistrant
	case strings.Contains(section, "admin"):
		return roleAdmin
	case strings.Contains(section, "tech"):
		return roleTechnical
	case strings.Contains(section, "billing"):
		return roleBilling
	default:
		return roleNone
	}
}

// ParseResponse 把原始WHOIS应答解析为结构化记录
// 容错的尽力而为解析：缺字段就缺席，绝不失败
func ParseResponse(raw *types.RawResponse, query, queryType string) *types.WhoisRecord {
	lineCount := len(strings.Split(raw.Data, "\n"))
	rec := newRecord(raw, query, queryType, lineCount)

	for _, ln := range classifyLines(raw.Data) {
		extractField(rec, ln)
	}

	rec.NameServers = dedupe(rec.NameServers)
	rec.Status = dedupe(rec.Status)
	return rec
}

func newRecord(raw *types.RawResponse, query, queryType string, lineCount int) *types.WhoisRecord {
	rec := &types.WhoisRecord{
		Query:        query,
		QueryType:    queryType,
		RawData:      raw.Data,
		WhoisServer:  raw.Server,
		Registration: &types.Registration{},
		Contacts: &types.Contacts{
			Registrant: newContact(),
			Admin:      newContact(),
			Technical:  newContact(),
			Billing:    newContact(),
		},
		Network:      &types.Network{},
		ASN:          &types.ASN{},
		Organization: &types.Organization{},
		Abuse:        &types.Abuse{},
		Technical:    &types.TechnicalInfo{},
		Metadata: &types.Metadata{
			ParsedAt:       time.Now().UTC().Format(time.RFC3339),
			Server:         raw.Server,
			QueryTimeMs:    raw.Elapsed.Milliseconds(),
			DataLength:     len(raw.Data),
			LinesProcessed: lineCount,
		},
	}
	if queryType == types.QueryTypeDomain {
		rec.Domain = query
	}
	if queryType == types.QueryTypeIP {
		rec.IP = query
	}
	return rec
}

func newContact() *types.Contact {
	return &types.Contact{Address: &types.Address{}}
}

// extractField 按优先级的子串启发式把一行写入记录的对应槽位
// 分支顺序即匹配优先级，首个命中即返回，调整顺序会改变归属语义
func extractField(rec *types.WhoisRecord, ln taggedLine) {
	key, value := ln.key, ln.value

	switch {
	// 注册商相关键，再按子串细分到具体字段
	case strings.Contains(key, "registrar"):
		if rec.Registrar == nil {
			rec.Registrar = &types.Registrar{}
		}
		switch {
		case strings.Contains(key, "name"):
			rec.Registrar.Name = value
		case strings.Contains(key, "iana"):
			rec.Registrar.IANAID = value
		case strings.Contains(key, "url"):
			rec.Registrar.URL = value
		case strings.Contains(key, "email"):
			rec.Registrar.Email = value
		case strings.Contains(key, "phone"):
			rec.Registrar.Phone = value
		case strings.Contains(key, "abuse"):
			rec.Registrar.AbuseContact = value
		default:
			rec.Registrar.Name = value
		}

	// 生命周期日期，原始字符串先存下，标准化阶段再解析
	case strings.Contains(key, "creation") || strings.Contains(key, "created"):
		rec.Registration.Created = value
	case strings.Contains(key, "expir") || strings.Contains(key, "renew") || strings.Contains(key, "valid until"):
		rec.Registration.Expires = value
	case strings.Contains(key, "updated") || strings.Contains(key, "modified") || strings.Contains(key, "changed"):
		rec.Registration.Updated = value
	case strings.Contains(key, "last transfer"):
		rec.Registration.LastTransferred = value

	// 名称服务器：小写、去尾点；带URL痕迹的值通常是误标，跳过
	case strings.Contains(key, "name server") || key == "nserver" || strings.Contains(key, "nameserver"):
		if !strings.Contains(value, "http://") && !strings.Contains(value, "https://") {
			ns := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(value)), ".")
			if ns != "" {
				rec.NameServers = append(rec.NameServers, ns)
			}
		}

	// 状态：带http的值是EPP状态说明链接，不是状态本身
	case strings.Contains(key, "status") && !strings.Contains(value, "http"):
		rec.Status = append(rec.Status, value)

	case strings.Contains(key, "dnssec"):
		rec.DNSSEC = value
	case strings.Contains(key, "whois server"):
		rec.WhoisServer = value

	// 网段字段
	case strings.Contains(key, "netrange") || strings.Contains(key, "inetnum"):
		rec.Network.Range = value
	case strings.Contains(key, "cidr"):
		rec.Network.CIDR = value
	case strings.Contains(key, "netname"):
		rec.Network.Name = value
	case strings.Contains(key, "nettype"):
		rec.Network.Type = value
	case strings.Contains(key, "parent"):
		rec.Network.Parent = value
	case strings.Contains(key, "country"):
		rec.Network.Country = value
	case strings.Contains(key, "descr"):
		rec.Network.Description = value

	// ASN字段
	case (strings.Contains(key, "as") && strings.Contains(key, "number")) || key == "origin":
		rec.ASN.Number = strings.Replace(value, "AS", "", 1)
	case strings.Contains(key, "as") && strings.Contains(key, "name"):
		rec.ASN.Name = value
	case strings.Contains(key, "as") && strings.Contains(key, "descr"):
		rec.ASN.Description = value
	case strings.Contains(key, "route"):
		rec.ASN.Route = value

	// 组织字段
	case strings.Contains(key, "org") && strings.Contains(key, "name"):
		rec.Organization.Name = value
	case strings.Contains(key, "org") && strings.Contains(key, "id"):
		rec.Organization.ID = value
	case strings.Contains(key, "org") && strings.Contains(key, "address"):
		rec.Organization.Address = value
	case strings.Contains(key, "org") && strings.Contains(key, "country"):
		rec.Organization.Country = value

	// 滥用举报联系方式
	case strings.Contains(key, "abuse") && strings.Contains(key, "email"):
		rec.Abuse.Email = value
	case strings.Contains(key, "abuse") && strings.Contains(key, "phone"):
		rec.Abuse.Phone = value
	case strings.Contains(key, "abuse") && strings.Contains(key, "contact"):
		rec.Abuse.Contact = value

	// 有活跃节区上下文时交给联系人字段分类器
	case ln.role != roleNone:
		setContactField(contactFor(rec, ln.role), key, value)

	// 无节区归属的通用键只在registrant槽位为空时兜底写入
	case strings.Contains(key, "email"):
		if rec.Contacts.Registrant.Email == "" {
			rec.Contacts.Registrant.Email = value
		}
	case strings.Contains(key, "phone"):
		if rec.Contacts.Registrant.Phone == "" {
			rec.Contacts.Registrant.Phone = value
		}
	case strings.Contains(key, "version"):
		rec.Metadata.WhoisVersion = value
	}
}

func contactFor(rec *types.WhoisRecord, role contactRole) *types.Contact {
	switch role {
	case roleRegistrant:
		return rec.Contacts.Registrant
	case roleAdmin:
		return rec.Contacts.Admin
	case roleTechnical:
		return rec.Contacts.Technical
	case roleBilling:
		return rec.Contacts.Billing
	}
	return nil
}

// setContactField 联系人字段分类器
// 各注册局在不同节区复用同样的通用键（如Organization），
// 每个字段首次写入后不再覆盖，防止靠后的泛化行冲掉节区内的精确值
func setContactField(c *types.Contact, key, value string) {
	if c == nil {
		return
	}
	switch {
	case strings.Contains(key, "name"):
		setIfEmpty(&c.Name, value)
	case strings.Contains(key, "organization") || strings.Contains(key, "org") || strings.Contains(key, "company"):
		setIfEmpty(&c.Organization, value)
	case strings.Contains(key, "email"):
		setIfEmpty(&c.Email, value)
	case strings.Contains(key, "phone"):
		setIfEmpty(&c.Phone, value)
	case strings.Contains(key, "fax"):
		setIfEmpty(&c.Fax, value)
	case strings.Contains(key, "street") || strings.Contains(key, "address"):
		setIfEmpty(&c.Address.Street, value)
	case strings.Contains(key, "city"):
		setIfEmpty(&c.Address.City, value)
	case strings.Contains(key, "state") || strings.Contains(key, "province"):
		setIfEmpty(&c.Address.State, value)
	case strings.Contains(key, "postal") || strings.Contains(key, "zip"):
		setIfEmpty(&c.Address.PostalCode, value)
	case strings.Contains(key, "country"):
		setIfEmpty(&c.Address.Country, value)
	case strings.Contains(key, "id") || strings.Contains(key, "handle"):
		setIfEmpty(&c.ID, value)
	case strings.Contains(key, "type"):
		setIfEmpty(&c.Type, value)
	}
}

func setIfEmpty(dst *string, value string) {
	if *dst == "" {
		*dst = value
	}
}

// dedupe 去重并保留首次出现顺序，同时过滤空串
func dedupe(items []string) []string {
	if len(items) == 0 {
		return items
	}
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		if it == "" || seen[it] {
			continue
		}
		seen[it] = true
		out = append(out, it)
	}
	return out
}
