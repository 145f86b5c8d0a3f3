/*
 * @Author: AsisYu
 * @Date: 2025-05-09 10:21:37
 * @Description: WHOIS服务器静态配置表
 */
package whois

// tldServers TLD到权威WHOIS服务器的静态映射
var tldServers = map[string]string{
	"com":    "whois.verisign-grs.com",
	"net":    "whois.verisign-grs.com",
	"org":    "whois.pir.org",
	"info":   "whois.afilias.net",
	"biz":    "whois.biz",
	"io":     "whois.nic.io",
	"co":     "whois.nic.co",
	"ai":     "whois.nic.ai",
	"me":     "whois.nic.me",
	"tv":     "whois.nic.tv",
	"uk":     "whois.nic.uk",
	"de":     "whois.denic.de",
	"fr":     "whois.nic.fr",
	"it":     "whois.nic.it",
	"es":     "whois.nic.es",
	"nl":     "whois.domain-registry.nl",
	"eu":     "whois.eu",
	"ca":     "whois.cira.ca",
	"au":     "whois.auda.org.au",
	"jp":     "whois.jprs.jp",
	"cn":     "whois.cnnic.cn",
	"in":     "whois.registry.in",
	"br":     "whois.registro.br",
	"ru":     "whois.tcinet.ru",
	"ch":     "whois.nic.ch",
	"se":     "whois.iis.se",
	"no":     "whois.norid.no",
	"dk":     "whois.dk-hostmaster.dk",
	"fi":     "whois.fi",
	"pl":     "whois.dns.pl",
	"cz":     "whois.nic.cz",
	"sk":     "whois.sk-nic.sk",
	"hu":     "whois.nic.hu",
	"ro":     "whois.rotld.ro",
	"bg":     "whois.register.bg",
	"gr":     "whois.iana.org",
	"tr":     "whois.nic.tr",
	"app":    "whois.nic.google",
	"dev":    "whois.nic.google",
	"page":   "whois.nic.google",
	"xyz":    "whois.nic.xyz",
	"online": "whois.nic.online",
	"site":   "whois.nic.site",
	"tech":   "whois.nic.tech",
	"store":  "whois.nic.store",
	"fun":    "whois.nic.fun",
	"live":   "whois.nic.live",
	"club":   "whois.nic.club",
	"news":   "whois.nic.news",
	"blog":   "whois.nic.blog",
	"asia":   "whois.nic.asia",
	"us":     "whois.nic.us",
	"mobi":   "whois.afilias.net",
	"tel":    "whois.nic.tel",
	"travel": "whois.nic.travel",
	"arpa":   "whois.iana.org",
	"int":    "whois.iana.org",
}

// defaultWhoisServer 未匹配TLD时的兜底服务器
const defaultWhoisServer = "whois.ripe.org"

// rirServers 五大区域互联网注册机构的WHOIS服务器
var rirServers = map[string]string{
	"arin":    "whois.arin.net",
	"ripe":    "whois.ripe.net",
	"apnic":   "whois.apnic.net",
	"lacnic":  "whois.lacnic.net",
	"afrinic": "whois.afrinic.net",
	"iana":    "whois.iana.org",
}

// notFoundPhrases 未注册应答的特征短语，命中即短路为NOT_FOUND
// 必须在结构化解析前扫描，这类应答通常不含可解析字段
var notFoundPhrases = []string{
	"No match",
	"NOT FOUND",
	"No entries found",
	"No data found",
	"Status: free",
	"Domain not found",
	"No objects found",
	"This query returned 0 objects",
	"No information available",
}

// rateLimitPhrases 上游限流应答的特征短语
var rateLimitPhrases = []string{
	"Query rate exceeded",
	"Limit exceeded",
}
