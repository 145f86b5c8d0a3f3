/*
 * @Author: AsisYu
 * @Date: 2025-05-08 20:30:12
 * @Description: 统一API响应结构
 */
package utils

import (
	"time"

	"github.com/gin-gonic/gin"
)

// APIResponse 统一响应信封
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *MetaInfo   `json:"meta,omitempty"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MetaInfo 响应元信息
type MetaInfo struct {
	Timestamp  string `json:"timestamp"`
	RequestID  string `json:"requestId,omitempty"`
	Cached     bool   `json:"cached,omitempty"`
	Processing int64  `json:"processingTimeMs,omitempty"`
}

// SuccessResponse 统一成功响应，自动带上请求ID
func SuccessResponse(c *gin.Context, data interface{}, meta *MetaInfo) {
	if meta == nil {
		meta = &MetaInfo{}
	}
	if meta.Timestamp == "" {
		meta.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}
	if meta.RequestID == "" {
		meta.RequestID = c.GetString("request_id")
	}

	c.JSON(200, APIResponse{
		Success: true,
		Data:    data,
		Meta:    meta,
	})
}

// ErrorResponse 统一错误响应
func ErrorResponse(c *gin.Context, statusCode int, errorCode string, message string) {
	c.JSON(statusCode, APIResponse{
		Success: false,
		Error: &APIError{
			Code:    errorCode,
			Message: message,
		},
		Meta: &MetaInfo{
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			RequestID: c.GetString("request_id"),
		},
	})
}
