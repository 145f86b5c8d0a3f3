/*
 * @Author: AsisYu
 * @Date: 2025-05-14 11:42:06
 * @Description: 令牌签发处理器
 */
package handlers

import (
	"net"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"whoseek/middleware"
	"whoseek/pkg/logger"
	"whoseek/utils"
)

// tokenTTL 令牌有效期很短，配合单次nonce防止重放
const tokenTTL = 30 * time.Second

// GenerateToken 签发绑定客户端IP的一次性短时令牌
func GenerateToken(c *gin.Context) {
	log := logger.WithRequest(c, "Auth")

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Error("JWT_SECRET未配置")
		utils.ErrorResponse(c, 500, "SERVER_MISCONFIGURED", "认证服务不可用")
		return
	}

	clientIP := c.ClientIP()
	if net.ParseIP(clientIP) == nil && clientIP != "localhost" {
		utils.ErrorResponse(c, 400, "INVALID_REQUEST", "无法识别客户端地址")
		return
	}

	now := time.Now()
	claims := middleware.Claims{
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(tokenTTL).Unix(),
		},
		Nonce: uuid.New().String(),
		IP:    clientIP,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		log.Errorf("令牌签发失败: %v", err)
		utils.ErrorResponse(c, 500, "INTERNAL_SERVER_ERROR", "令牌签发失败")
		return
	}

	c.JSON(200, gin.H{
		"token":      signed,
		"expires_in": int(tokenTTL.Seconds()),
	})
}
