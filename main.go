/*
 * @Author: AsisYu
 * @Date: 2025-05-12 08:30:15
 * @Description: WHOIS解析服务入口
 */
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"golang.org/x/time/rate"
	"gopkg.in/natefinch/lumberjack.v2"

	"whoseek/middleware"
	"whoseek/pkg/logger"
	"whoseek/routes"
	"whoseek/services"
)

var logFile *lumberjack.Logger

// setupGinLog gin框架自身日志走切割器，业务日志统一走zap
func setupGinLog() {
	if err := os.MkdirAll("logs", 0755); err != nil {
		log.Printf("警告: 无法创建日志目录: %v", err)
	}

	logFile = &lumberjack.Logger{
		Filename:   fmt.Sprintf("logs/server_%s.log", time.Now().Format("2006-01-02")),
		MaxSize:    100, // MB
		MaxBackups: 30,
		MaxAge:     90,
		Compress:   true,
		LocalTime:  true,
	}

	gin.DefaultWriter = io.MultiWriter(os.Stdout, logFile)
}

func newRedisClient() *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	db := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			db = n
		}
	}
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       db,
	})
}

func corsConfig() cors.Config {
	config := cors.DefaultConfig()
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		config.AllowOrigins = strings.Split(origins, ",")
	} else {
		config.AllowAllOrigins = true
	}
	config.AllowHeaders = append(config.AllowHeaders, "Authorization", "X-Request-ID")
	config.ExposeHeaders = append(config.ExposeHeaders, "X-Request-ID")
	return config
}

func main() {
	// .env缺失不是错误，容器环境直接用环境变量
	if err := godotenv.Load(); err != nil {
		log.Println("未找到.env文件，使用环境变量")
	}

	env := logger.DeriveEnvironment()
	if err := logger.Init(env); err != nil {
		log.Fatalf("日志初始化失败: %v", err)
	}
	defer logger.Sync()
	mainLog := logger.Module("Main")

	setupGinLog()

	rdb := newRedisClient()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := rdb.Ping(ctx).Err(); err != nil {
		mainLog.Warnf("Redis连接失败，缓存与分布式限流不可用: %v", err)
	}
	cancel()

	container := services.NewServiceContainer(rdb)
	container.InitializeLimiter("ratelimit:api", 60, time.Minute)
	defer container.Shutdown()

	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	ipLimiter := middleware.NewIPRateLimiter(rate.Limit(10), 20)

	r.Use(middleware.RequestID())
	r.Use(middleware.AccessLog())
	r.Use(middleware.ErrorHandler())
	r.Use(cors.New(corsConfig()))
	r.Use(middleware.RateLimit(ipLimiter))
	r.Use(middleware.InjectServices(container))

	routes.RegisterAPIRoutes(r, container)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3900"
	}

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		mainLog.Infof("服务启动, 监听端口 %s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			mainLog.Fatalf("服务启动失败: %v", err)
		}
	}()

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	mainLog.Info("收到退出信号，开始关闭")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		mainLog.Errorf("服务关闭异常: %v", err)
	}
	mainLog.Info("服务已退出")
}
