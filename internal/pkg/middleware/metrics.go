package middleware

import (
	"net/http"
	"runtime"
	"time"

	"yumzy/pkg/logger"
	"yumzy/pkg/metrics"
	"yumzy/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MetricsMiddleware 记录 HTTP 请求指标，endpoint 使用路由模板避免高基数
func MetricsMiddleware(collector *metrics.MetricsCollector) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		collector.RecordHTTPRequest(c.Request.Method, endpoint, c.Writer.Status(), time.Since(start))
	}
}

// SystemMetricsMiddleware 系统指标中间件
func SystemMetricsMiddleware(collector *metrics.MetricsCollector) gin.HandlerFunc {
	return func(c *gin.Context) {
		collector.UpdateActiveGoroutines(runtime.NumGoroutine())

		var m runtime.MemStats
		runtime.ReadMemStats(&m)
		collector.UpdateMemoryUsage(m.Alloc)

		c.Next()
	}
}

// RecoveryMiddleware 捕获 panic，按统一响应格式返回 500
func RecoveryMiddleware() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Log.Error("panic recovered",
			zap.Any("error", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", RequestID(c)),
		)
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "Internal server error")
		c.Abort()
	})
}

// SecurityHeadersMiddleware 安全头中间件
func SecurityHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")

		c.Next()
	}
}
