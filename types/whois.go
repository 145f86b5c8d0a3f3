/*
 * @Author: AsisYu
 * @Date: 2025-05-08 21:40:12
 * @Description: WHOIS结构化记录类型定义
 */
package types

import "time"

// 查询类型
const (
	QueryTypeDomain = "domain"
	QueryTypeIP     = "ip"
	QueryTypeAuto   = "auto"
)

// RawResponse WHOIS服务器返回的原始应答，捕获后不可变
type RawResponse struct {
	Data    string        `json:"data"`
	Server  string        `json:"server"`
	Elapsed time.Duration `json:"-"`
}

// WhoisRecord 解析后的结构化WHOIS记录
// 空的子结构在标准化阶段会被裁剪为nil，序列化时对应键缺失
type WhoisRecord struct {
	Query       string `json:"query"`
	QueryType   string `json:"queryType"`
	RawData     string `json:"rawData,omitempty"`
	WhoisServer string `json:"whoisServer,omitempty"`

	// 域名分支
	Domain       string        `json:"domain,omitempty"`
	Registrar    *Registrar    `json:"registrar,omitempty"`
	Registration *Registration `json:"registration,omitempty"`
	Status       []string      `json:"status,omitempty"`
	NameServers  []string      `json:"nameServers,omitempty"`
	DNSSEC       string        `json:"dnssec,omitempty"`

	Contacts *Contacts `json:"contacts,omitempty"`

	// IP分支
	IP           string         `json:"ip,omitempty"`
	Network      *Network       `json:"network,omitempty"`
	ASN          *ASN           `json:"asn,omitempty"`
	Organization *Organization  `json:"organization,omitempty"`
	Abuse        *Abuse         `json:"abuse,omitempty"`
	Technical    *TechnicalInfo `json:"technical,omitempty"`

	Metadata *Metadata `json:"metadata,omitempty"`
}

// Registrar 注册商信息
type Registrar struct {
	Name         string `json:"name,omitempty"`
	IANAID       string `json:"ianaId,omitempty"`
	URL          string `json:"url,omitempty"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	AbuseContact string `json:"abuseContact,omitempty"`
}

// Registration 注册生命周期日期与派生指标
// 日期字段保存RFC3339；无法解析时保留原始文本，绝不丢弃
type Registration struct {
	Created         string `json:"created,omitempty"`
	Expires         string `json:"expires,omitempty"`
	Updated         string `json:"updated,omitempty"`
	LastTransferred string `json:"lastTransferred,omitempty"`

	AgeDays         *int   `json:"ageDays,omitempty"`
	AgeYears        string `json:"ageYears,omitempty"`
	DaysUntilExpiry *int   `json:"daysUntilExpiry,omitempty"`
	ExpiringSoon    *bool  `json:"expiringSoon,omitempty"`
	Expired         *bool  `json:"expired,omitempty"`
}

// Contacts 四个独立的联系人角色槽位
type Contacts struct {
	Registrant *Contact `json:"registrant,omitempty"`
	Admin      *Contact `json:"admin,omitempty"`
	Technical  *Contact `json:"technical,omitempty"`
	Billing    *Contact `json:"billing,omitempty"`
}

type Contact struct {
	Name         string   `json:"name,omitempty"`
	Organization string   `json:"organization,omitempty"`
	Email        string   `json:"email,omitempty"`
	Phone        string   `json:"phone,omitempty"`
	Fax          string   `json:"fax,omitempty"`
	Address      *Address `json:"address,omitempty"`
	ID           string   `json:"id,omitempty"`
	Type         string   `json:"type,omitempty"`
}

type Address struct {
	Street     string `json:"street,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	Country    string `json:"country,omitempty"`
}

// Network IP网段信息
type Network struct {
	Range       string `json:"range,omitempty"`
	CIDR        string `json:"cidr,omitempty"`
	Name        string `json:"name,omitempty"`
	Type        string `json:"type,omitempty"`
	Parent      string `json:"parent,omitempty"`
	Country     string `json:"country,omitempty"`
	Description string `json:"description,omitempty"`
}

// ASN 自治系统信息
type ASN struct {
	Number      string `json:"number,omitempty"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Route       string `json:"route,omitempty"`
}

type Organization struct {
	Name    string `json:"name,omitempty"`
	ID      string `json:"id,omitempty"`
	Address string `json:"address,omitempty"`
	Country string `json:"country,omitempty"`
}

type Abuse struct {
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Contact string `json:"contact,omitempty"`
}

// TechnicalInfo IP记录的技术补充信息
type TechnicalInfo struct {
	ReverseDNS []string `json:"reverseDNS,omitempty"`
}

// Metadata 解析过程元信息
type Metadata struct {
	ParsedAt       string `json:"parsedAt,omitempty"`
	Server         string `json:"server,omitempty"`
	QueryTimeMs    int64  `json:"queryTimeMs,omitempty"`
	DataLength     int    `json:"dataLength,omitempty"`
	LinesProcessed int    `json:"linesProcessed,omitempty"`
	WhoisVersion   string `json:"whoisVersion,omitempty"`
}

// 批量查询单条结果的终态，互斥
const (
	OutcomeSuccess     = "SUCCESS"
	OutcomeNotFound    = "NOT_FOUND"
	OutcomeTimeout     = "TIMEOUT"
	OutcomeRateLimited = "RATE_LIMITED"
	OutcomeServerError = "SERVER_ERROR"
)

// BulkResult 批量查询中单个查询的独立结果
type BulkResult struct {
	Query   string       `json:"query"`
	Success bool         `json:"success"`
	Status  string       `json:"status"`
	Data    *WhoisRecord `json:"data,omitempty"`
	Error   string       `json:"error,omitempty"`
}

// AvailabilityResult 域名可注册性检查结果
type AvailabilityResult struct {
	Domain    string       `json:"domain"`
	Available bool         `json:"available"`
	Data      *WhoisRecord `json:"data,omitempty"`
}

// DNSResult DNS记录查询结果
type DNSResult struct {
	Domain      string              `json:"domain"`
	Records     map[string][]string `json:"records"`
	Timestamp   string              `json:"timestamp"`
	RecordCount int                 `json:"recordCount"`
}
