/*
 * @Author: AsisYu
 * @Date: 2025-05-12 14:02:51
 * @Description: DNS记录查询服务 - 标准解析器的透传
 */
package services

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"go.uber.org/zap"

	"whoseek/pkg/logger"
	"whoseek/types"
)

// SupportedRecordTypes 支持的DNS记录类型
var SupportedRecordTypes = []string{"A", "AAAA", "MX", "TXT", "NS", "CNAME"}

// DNSService 对标准解析器的尽力而为透传
// 单个类型查询失败就给空列表，整体从不失败
type DNSService struct {
	resolver *net.Resolver
	timeout  time.Duration
	log      *zap.SugaredLogger
}

// NewDNSService 创建DNS查询服务
func NewDNSService() *DNSService {
	return &DNSService{
		resolver: net.DefaultResolver,
		timeout:  10 * time.Second,
		log:      logger.Module("DNS"),
	}
}

// GetRecords 查询域名的全部支持类型记录
func (s *DNSService) GetRecords(ctx context.Context, domain string) *types.DNSResult {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	records := make(map[string][]string, len(SupportedRecordTypes))
	for _, recordType := range SupportedRecordTypes {
		records[recordType] = s.lookup(ctx, recordType, domain)
	}

	count := 0
	for _, values := range records {
		count += len(values)
	}

	return &types.DNSResult{
		Domain:      domain,
		Records:     records,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		RecordCount: count,
	}
}

func (s *DNSService) lookup(ctx context.Context, recordType, domain string) []string {
	values := []string{}

	switch recordType {
	case "A", "AAAA":
		network := "ip4"
		if recordType == "AAAA" {
			network = "ip6"
		}
		ips, err := s.resolver.LookupIP(ctx, network, domain)
		if err != nil {
			return values
		}
		for _, ip := range ips {
			values = append(values, ip.String())
		}
	case "MX":
		mxs, err := s.resolver.LookupMX(ctx, domain)
		if err != nil {
			return values
		}
		for _, mx := range mxs {
			values = append(values, fmt.Sprintf("%d %s", mx.Pref, strings.TrimSuffix(mx.Host, ".")))
		}
	case "TXT":
		txts, err := s.resolver.LookupTXT(ctx, domain)
		if err != nil {
			return values
		}
		values = append(values, txts...)
	case "NS":
		nss, err := s.resolver.LookupNS(ctx, domain)
		if err != nil {
			return values
		}
		for _, ns := range nss {
			values = append(values, strings.TrimSuffix(ns.Host, "."))
		}
	case "CNAME":
		cname, err := s.resolver.LookupCNAME(ctx, domain)
		if err != nil {
			return values
		}
		cname = strings.TrimSuffix(cname, ".")
		// 指向自身的CNAME不算记录
		if cname != "" && !strings.EqualFold(cname, domain) {
			values = append(values, cname)
		}
	}
	return values
}
