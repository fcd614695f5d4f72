// @title Yumzy API
// @version 1.0
// @description 短视频点餐平台后端：菜品信息流、订单计价与积分
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "yumzy/internal/domain/comment"
	_ "yumzy/internal/domain/common"
	_ "yumzy/internal/domain/food"
	_ "yumzy/internal/domain/order"
	_ "yumzy/internal/domain/partner"
	_ "yumzy/internal/domain/save"
	_ "yumzy/internal/domain/user"
	"yumzy/internal/pkg/config"
	"yumzy/internal/pkg/middleware"
	"yumzy/internal/pkg/push"
	"yumzy/internal/pkg/registry"
	"yumzy/internal/pkg/uploader"
	"yumzy/pkg/cache"
	"yumzy/pkg/database"
	"yumzy/pkg/logger"
	"yumzy/pkg/metrics"
	"yumzy/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func main() {
	config.LoadConfig()
	cfg := config.GlobalConfig

	if err := logger.InitLogger(cfg.App.Env, cfg.App.Debug); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.InitDatabase(cfg.Database, cfg.IsProduction())
	if err != nil {
		logger.Log.Fatal("Failed to connect database", zap.Error(err))
	}
	if err := database.RegisterPoolMetrics(db, prometheus.DefaultRegisterer, cfg.Database.DBName); err != nil {
		logger.Log.Warn("Failed to register pool metrics", zap.Error(err))
	}

	rdb, err := database.InitRedis(cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to connect redis", zap.Error(err))
	}
	defer rdb.Close()

	gin.SetMode(cfg.Server.Mode)
	r := gin.New()

	collector := metrics.GetGlobalCollector()
	limiter := middleware.NewIPRateLimiter(rate.Limit(20), 40)

	r.Use(
		middleware.RequestIDMiddleware(),
		middleware.LoggerMiddleware(),
		middleware.RecoveryMiddleware(),
		middleware.SecurityHeadersMiddleware(),
		cors.New(cors.Config{
			AllowOrigins:     cfg.Server.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
			ExposeHeaders:    []string{middleware.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		middleware.RateLimitMiddleware(limiter),
		middleware.MetricsMiddleware(collector),
		middleware.SystemMetricsMiddleware(collector),
	)

	moduleCtx := &registry.ModuleContext{
		Config:   cfg,
		DB:       db,
		Cache:    cache.NewRedisCache(rdb, "yumzy"),
		Router:   r,
		Tokens:   utils.NewTokenManager(cfg.JWT.Secret, time.Duration(cfg.JWT.Expire)*time.Hour),
		Uploader: uploader.NewUploader(cfg.OSS),
		Notifier: push.NewPushService(cfg.Push),
		Metrics:  collector,
	}
	if err := registry.InitModules(moduleCtx); err != nil {
		logger.Log.Fatal("Failed to init modules", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 定期清理不活跃 IP 的限流器
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := limiter.Cleanup(); n > 0 {
					logger.Log.Debug("Rate limiters evicted", zap.Int("count", n))
				}
			}
		}
	}()

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Log.Info("Server starting", zap.String("port", cfg.Server.Port), zap.String("env", cfg.App.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("Server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	// 等待 worker 池写完积分流水
	if err := registry.CloseModules(); err != nil {
		logger.Log.Error("Failed to close modules", zap.Error(err))
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	logger.Log.Info("Server exited")
}
