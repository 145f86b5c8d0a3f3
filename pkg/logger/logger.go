/*
 * @Author: AsisYu
 * @Date: 2025-05-07 23:10:41
 * @Description: 统一日志系统 - 基于uber-go/zap
 */
package logger

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	base  *zap.Logger
	sugar *zap.SugaredLogger
)

// ContextKey 从context取请求ID用的键类型
type ContextKey string

const RequestIDKey ContextKey = "request_id"

// Init 初始化全局logger
// dev环境输出彩色控制台格式，生产环境输出JSON便于聚合
func Init(env string) error {
	var cfg zap.Config
	if env == "dev" || env == "development" {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg = zap.NewProductionConfig()
	}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.CallerKey = "caller"

	// AddCallerSkip(1)跳过本包的包装层，显示真实调用位置
	l, err := cfg.Build(
		zap.AddCaller(),
		zap.AddCallerSkip(1),
		zap.AddStacktrace(zapcore.ErrorLevel),
	)
	if err != nil {
		return err
	}

	base = l
	sugar = l.Sugar()

	// 把标准库log重定向到zap，兼容老代码路径
	stdLog := zap.NewStdLog(l)
	log.SetOutput(stdLog.Writer())
	log.SetFlags(0)

	return nil
}

// Module 创建带模块名的logger
// 用法: logger.Module("Whois").Infof("...")
func Module(name string) *zap.SugaredLogger {
	if sugar == nil {
		return zap.NewExample().Sugar().Named(name)
	}
	return sugar.Named(name)
}

// WithRequest 从gin context提取请求ID与客户端IP，生成带字段的logger
func WithRequest(c *gin.Context, moduleName string) *zap.SugaredLogger {
	l := Module(moduleName)
	if requestID, exists := c.Get("request_id"); exists {
		l = l.With("request_id", requestID)
	}
	return l.With("client_ip", c.ClientIP())
}

// FromContext 从标准context提取请求ID
func FromContext(ctx context.Context, moduleName string) *zap.SugaredLogger {
	l := Module(moduleName)
	if requestID := ctx.Value(RequestIDKey); requestID != nil {
		l = l.With("request_id", requestID)
	}
	return l
}

// Sync 刷新日志缓冲区，进程退出前调用
func Sync() {
	if base != nil {
		_ = base.Sync()
	}
}

// DeriveEnvironment 从环境变量推导运行环境
func DeriveEnvironment() string {
	if ginMode := os.Getenv("GIN_MODE"); ginMode == "release" {
		return "production"
	}
	if env := os.Getenv("APP_ENV"); env != "" {
		return env
	}
	return "dev"
}
