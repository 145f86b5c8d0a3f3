/*
 * @Author: AsisYu
 * @Date: 2025-05-13 11:05:52
 * @Description: JWT认证中间件 - 短时效单次令牌
 */
package middleware

import (
	"net"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt/v4"

	"whoseek/pkg/logger"
	"whoseek/utils"
)

// Claims 令牌声明: 标准字段之外绑定单次nonce和客户端IP
type Claims struct {
	jwt.StandardClaims
	Nonce string `json:"nonce"`
	IP    string `json:"ip"`
}

// normalizeIP 统一本地回环地址表示，避免IPv4/IPv6写法不一致导致校验失败
func normalizeIP(ip string) string {
	if ip == "::1" || ip == "127.0.0.1" {
		return "localhost"
	}
	if host, _, err := net.SplitHostPort(ip); err == nil {
		return normalizeIP(host)
	}
	return ip
}

// AuthRequired 校验Bearer令牌: 签名、有效期、IP绑定、nonce单次使用
func AuthRequired(rdb *redis.Client) gin.HandlerFunc {
	log := logger.Module("Auth")
	return func(c *gin.Context) {
		secret := os.Getenv("JWT_SECRET")
		if secret == "" {
			log.Error("JWT_SECRET未配置")
			utils.ErrorResponse(c, 500, "SERVER_MISCONFIGURED", "认证服务不可用")
			c.Abort()
			return
		}

		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			utils.ErrorResponse(c, 401, "UNAUTHORIZED", "缺少认证令牌")
			c.Abort()
			return
		}
		tokenString := strings.TrimPrefix(header, "Bearer ")

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			utils.ErrorResponse(c, 401, "UNAUTHORIZED", "令牌无效或已过期")
			c.Abort()
			return
		}

		if normalizeIP(claims.IP) != normalizeIP(c.ClientIP()) {
			log.Warnf("令牌IP不匹配: token=%s, client=%s", claims.IP, c.ClientIP())
			utils.ErrorResponse(c, 401, "UNAUTHORIZED", "令牌与请求来源不匹配")
			c.Abort()
			return
		}

		// nonce只允许使用一次，用SetNX占位直到令牌自然过期
		nonceKey := "auth:nonce:" + claims.Nonce
		ok, err := rdb.SetNX(c.Request.Context(), nonceKey, 1, time.Minute).Result()
		if err != nil {
			log.Errorf("nonce校验失败: %v", err)
			utils.ErrorResponse(c, 500, "INTERNAL_SERVER_ERROR", "认证服务异常")
			c.Abort()
			return
		}
		if !ok {
			utils.ErrorResponse(c, 401, "UNAUTHORIZED", "令牌已被使用")
			c.Abort()
			return
		}

		c.Next()
	}
}
