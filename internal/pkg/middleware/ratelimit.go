package middleware

import (
	"net/http"
	"sync"
	"time"

	"yumzy/pkg/response"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter 存储每个IP的限流器
type IPRateLimiter struct {
	ips map[string]*ipLimiter
	mu  sync.Mutex
	r   rate.Limit
	b   int
	ttl time.Duration
	now func() time.Time
}

// NewIPRateLimiter 创建一个新的IP限流器
// r: 每秒允许的请求数 (QPS)
// b: 桶的大小 (Burst)
func NewIPRateLimiter(r rate.Limit, b int) *IPRateLimiter {
	return &IPRateLimiter{
		ips: make(map[string]*ipLimiter),
		r:   r,
		b:   b,
		ttl: 10 * time.Minute,
		now: time.Now,
	}
}

// GetLimiter 获取指定IP的限流器
func (i *IPRateLimiter) GetLimiter(ip string) *rate.Limiter {
	i.mu.Lock()
	defer i.mu.Unlock()

	now := i.now()
	entry, exists := i.ips[ip]
	if !exists {
		entry = &ipLimiter{limiter: rate.NewLimiter(i.r, i.b)}
		i.ips[ip] = entry
	}
	entry.lastSeen = now

	return entry.limiter
}

// Cleanup 清理超过 ttl 未访问的 IP，返回清理数量
func (i *IPRateLimiter) Cleanup() int {
	i.mu.Lock()
	defer i.mu.Unlock()

	removed := 0
	cutoff := i.now().Add(-i.ttl)
	for ip, entry := range i.ips {
		if entry.lastSeen.Before(cutoff) {
			delete(i.ips, ip)
			removed++
		}
	}
	return removed
}

// Size 当前跟踪的 IP 数
func (i *IPRateLimiter) Size() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return len(i.ips)
}

// RateLimitMiddleware 限流中间件
func RateLimitMiddleware(limiter *IPRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.GetLimiter(c.ClientIP()).Allow() {
			response.Error(c, http.StatusTooManyRequests, response.ErrTooManyRequests, "Too many requests")
			c.Abort()
			return
		}
		c.Next()
	}
}
