package whois

import (
	"bufio"
	"context"
	"net"
	"testing"
	"time"

	"whoseek/types"
)

// startFakeWhois 启动一个本地假WHOIS服务器: 读一行查询，回写固定应答后关闭连接
func startFakeWhois(t *testing.T, response string) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("无法启动假服务器: %v", err)
	}
	t.Cleanup(func() { ln.Close() })

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go func(c net.Conn) {
				defer c.Close()
				bufio.NewReader(c).ReadString('\n')
				c.Write([]byte(response))
			}(conn)
		}
	}()
	return ln.Addr().String()
}

func testClient() *ProtocolClient {
	d := &net.Dialer{}
	return &ProtocolClient{
		timeout: 5 * time.Second,
		maxHops: maxReferralHops,
		dial:    d.DialContext,
	}
}

// TestQuerySuccess 正常应答原样返回并记录应答服务器
func TestQuerySuccess(t *testing.T) {
	response := "Domain Name: EXAMPLE.COM\nRegistrar: Example Registrar Inc.\n"
	addr := startFakeWhois(t, response)

	raw, err := testClient().Query(context.Background(), addr, "example.com")
	if err != nil {
		t.Fatalf("Query失败: %v", err)
	}
	if raw.Data != response {
		t.Errorf("Data = %q", raw.Data)
	}
	if raw.Server != addr {
		t.Errorf("Server = %q, 期望 %q", raw.Server, addr)
	}
	if raw.Elapsed <= 0 {
		t.Error("Elapsed应为正值")
	}
	t.Log("✅ 正常查询返回原始应答")
}

// TestQueryNotFound 未注册短语短路为NOT_FOUND
func TestQueryNotFound(t *testing.T) {
	addr := startFakeWhois(t, "No match for domain \"EXAMPLE-FREE.COM\".\n>>> Last update <<<\n")

	_, err := testClient().Query(context.Background(), addr, "example-free.com")
	if kind := types.KindOf(err); kind != types.ErrNotFound {
		t.Fatalf("错误分类 = %v, 期望 %v (err=%v)", kind, types.ErrNotFound, err)
	}
}

// TestQueryEmptyResponse 过短应答归类为EMPTY_RESPONSE
func TestQueryEmptyResponse(t *testing.T) {
	addr := startFakeWhois(t, "  \r\n ")

	_, err := testClient().Query(context.Background(), addr, "example.com")
	if kind := types.KindOf(err); kind != types.ErrEmptyResponse {
		t.Fatalf("错误分类 = %v, 期望 %v", kind, types.ErrEmptyResponse)
	}
}

// TestQueryRateLimited 上游限流短语归类为RATE_LIMITED
func TestQueryRateLimited(t *testing.T) {
	addr := startFakeWhois(t, "Query rate exceeded for your network. Try again later.\n")

	_, err := testClient().Query(context.Background(), addr, "example.com")
	if kind := types.KindOf(err); kind != types.ErrRateLimited {
		t.Fatalf("错误分类 = %v, 期望 %v", kind, types.ErrRateLimited)
	}
}

// TestQueryFollowsReferral 应答含引用标记时追到下一跳并以最终跳为准
func TestQueryFollowsReferral(t *testing.T) {
	finalResponse := "Domain Name: EXAMPLE.COM\nRegistrar: Authoritative Registrar\n"
	finalAddr := startFakeWhois(t, finalResponse)
	firstAddr := startFakeWhois(t, "Domain Name: EXAMPLE.COM\nWhois Server: "+finalAddr+"\n")

	raw, err := testClient().Query(context.Background(), firstAddr, "example.com")
	if err != nil {
		t.Fatalf("Query失败: %v", err)
	}
	if raw.Server != finalAddr {
		t.Errorf("Server = %q, 期望最终跳 %q", raw.Server, finalAddr)
	}
	if raw.Data != finalResponse {
		t.Errorf("Data = %q, 期望最终跳应答", raw.Data)
	}
	t.Log("✅ 引用重定向追到最终服务器")
}

// TestQueryReferralLoop 相互引用的服务器不会死循环
func TestQueryReferralLoop(t *testing.T) {
	lnA, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { lnA.Close() })
	addrA := lnA.Addr().String()

	// B引用回A，A引用B
	addrB := startFakeWhois(t, "Remote data for example.com\nrefer: "+addrA+"\n")
	go func() {
		for {
			conn, err := lnA.Accept()
			if err != nil {
				return
			}
			go func(c net.Conn) {
				defer c.Close()
				bufio.NewReader(c).ReadString('\n')
				c.Write([]byte("Initial data for example.com\nrefer: " + addrB + "\n"))
			}(conn)
		}
	}()

	raw, err := testClient().Query(context.Background(), addrA, "example.com")
	if err != nil {
		t.Fatalf("Query失败: %v", err)
	}
	// 已访问过的服务器不再跳转，保留B的应答
	if raw.Server != addrB {
		t.Errorf("Server = %q, 期望 %q", raw.Server, addrB)
	}
}

// TestQueryReferralFailureKeepsPrevious 引用跳转失败时保留上一跳应答
func TestQueryReferralFailureKeepsPrevious(t *testing.T) {
	// 找一个已关闭的端口作为坏引用目标
	dead, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	deadAddr := dead.Addr().String()
	dead.Close()

	firstResponse := "Domain Name: EXAMPLE.COM\nRegistrar: First Registrar\nrefer: " + deadAddr + "\n"
	firstAddr := startFakeWhois(t, firstResponse)

	raw, err := testClient().Query(context.Background(), firstAddr, "example.com")
	if err != nil {
		t.Fatalf("Query失败: %v", err)
	}
	if raw.Server != firstAddr {
		t.Errorf("Server = %q, 期望第一跳 %q", raw.Server, firstAddr)
	}
	if raw.Data != firstResponse {
		t.Errorf("Data应保留第一跳应答")
	}
	t.Log("✅ 坏引用不影响已取得的应答")
}

// TestQueryConnectionRefused 首跳拒绝连接时返回CONNECTION_REFUSED
func TestQueryConnectionRefused(t *testing.T) {
	dead, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	deadAddr := dead.Addr().String()
	dead.Close()

	_, err = testClient().Query(context.Background(), deadAddr, "example.com")
	if kind := types.KindOf(err); kind != types.ErrConnectionRefused {
		t.Fatalf("错误分类 = %v, 期望 %v (err=%v)", kind, types.ErrConnectionRefused, err)
	}
}

// TestQueryTimeout 服务器挂起不应答时按超时归类
func TestQueryTimeout(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { ln.Close() })
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			// 接受连接但永不应答
			defer conn.Close()
		}
	}()

	d := &net.Dialer{}
	c := &ProtocolClient{timeout: 200 * time.Millisecond, maxHops: maxReferralHops, dial: d.DialContext}
	_, err = c.Query(context.Background(), ln.Addr().String(), "example.com")
	if kind := types.KindOf(err); kind != types.ErrTimeout {
		t.Fatalf("错误分类 = %v, 期望 %v (err=%v)", kind, types.ErrTimeout, err)
	}
}

// TestExtractReferral 引用标记解析与协议前缀剥离
func TestExtractReferral(t *testing.T) {
	cases := []struct {
		data string
		want string
	}{
		{"ReferralServer: rwhois://rwhois.example.net:4321\n", "rwhois.example.net:4321"},
		{"refer: whois.iana.org\n", "whois.iana.org"},
		{"Whois Server: whois.markmonitor.com\n", "whois.markmonitor.com"},
		{"ReferralServer: whois://whois.example.net/path\n", "whois.example.net"},
		{"Domain Name: EXAMPLE.COM\n", ""},
		// 行中出现而非行首的标记不算引用
		{"Registrar Whois Server: whois.example.com\n", ""},
	}
	for _, tc := range cases {
		if got := extractReferral(tc.data); got != tc.want {
			t.Errorf("extractReferral(%q) = %q, 期望 %q", tc.data, got, tc.want)
		}
	}
}
