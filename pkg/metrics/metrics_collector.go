package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsCollector 指标收集器
type MetricsCollector struct {
	// HTTP 指标
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// 缓存指标
	cacheHitsTotal   *prometheus.CounterVec
	cacheMissesTotal *prometheus.CounterVec

	// 订单指标
	ordersCreatedTotal    *prometheus.CounterVec
	orderFinalAmount      prometheus.Histogram
	orderDiscountAmount   prometheus.Histogram
	couponChecksTotal     *prometheus.CounterVec
	loyaltyPointsEarned   prometheus.Counter
	loyaltyPointsRedeemed prometheus.Counter
	orderStatusTotal      *prometheus.CounterVec

	// 异步任务指标
	workerTasksTotal *prometheus.CounterVec

	// 应用指标
	activeGoroutines prometheus.Gauge
	memoryUsage      prometheus.Gauge
}

// NewMetricsCollector 创建指标收集器，指标注册到 reg
func NewMetricsCollector(reg prometheus.Registerer) *MetricsCollector {
	f := promauto.With(reg)
	amountBuckets := []float64{50, 100, 200, 500, 1000, 2000, 5000}

	return &MetricsCollector{
		httpRequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),

		httpRequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),

		cacheHitsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cache_hits_total",
				Help: "Total number of cache hits",
			},
			[]string{"cache_type", "key_prefix"},
		),

		cacheMissesTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cache_misses_total",
				Help: "Total number of cache misses",
			},
			[]string{"cache_type", "key_prefix"},
		),

		ordersCreatedTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orders_created_total",
				Help: "Total number of orders placed",
			},
			[]string{"payment_option", "coupon"},
		),

		orderFinalAmount: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "order_final_amount",
				Help:    "Payable amount of placed orders",
				Buckets: amountBuckets,
			},
		),

		orderDiscountAmount: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "order_discount_amount",
				Help:    "Total discount (coupon + loyalty) of placed orders",
				Buckets: amountBuckets,
			},
		),

		couponChecksTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "coupon_checks_total",
				Help: "Coupon preview requests by result",
			},
			[]string{"result"},
		),

		loyaltyPointsEarned: f.NewCounter(
			prometheus.CounterOpts{
				Name: "loyalty_points_earned_total",
				Help: "Loyalty points awarded by orders",
			},
		),

		loyaltyPointsRedeemed: f.NewCounter(
			prometheus.CounterOpts{
				Name: "loyalty_points_redeemed_total",
				Help: "Loyalty points redeemed on orders",
			},
		),

		orderStatusTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "order_status_changes_total",
				Help: "Order status changes by target status",
			},
			[]string{"status"},
		),

		workerTasksTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "worker_tasks_total",
				Help: "Async worker tasks by outcome",
			},
			[]string{"outcome"},
		),

		activeGoroutines: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "active_goroutines",
				Help: "Number of active goroutines",
			},
		),

		memoryUsage: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "memory_usage_bytes",
				Help: "Memory usage in bytes",
			},
		),
	}
}

// RecordHTTPRequest 记录 HTTP 请求指标
func (m *MetricsCollector) RecordHTTPRequest(method, endpoint string, status int, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, endpoint, getStatusCategory(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordCacheOperation 记录缓存命中情况
func (m *MetricsCollector) RecordCacheOperation(cacheType, keyPrefix string, hit bool) {
	if hit {
		m.cacheHitsTotal.WithLabelValues(cacheType, keyPrefix).Inc()
	} else {
		m.cacheMissesTotal.WithLabelValues(cacheType, keyPrefix).Inc()
	}
}

// RecordOrder 记录下单指标
func (m *MetricsCollector) RecordOrder(paymentOption string, withCoupon bool, finalAmount, discount float64, pointsUsed, pointsEarned int) {
	coupon := "none"
	if withCoupon {
		coupon = "applied"
	}
	m.ordersCreatedTotal.WithLabelValues(paymentOption, coupon).Inc()
	m.orderFinalAmount.Observe(finalAmount)
	m.orderDiscountAmount.Observe(discount)
	m.loyaltyPointsRedeemed.Add(float64(pointsUsed))
	m.loyaltyPointsEarned.Add(float64(pointsEarned))
}

// RecordCouponCheck 记录优惠券预览结果 (valid / invalid)
func (m *MetricsCollector) RecordCouponCheck(valid bool) {
	result := "invalid"
	if valid {
		result = "valid"
	}
	m.couponChecksTotal.WithLabelValues(result).Inc()
}

// RecordStatusChange 记录订单状态变更
func (m *MetricsCollector) RecordStatusChange(status string) {
	m.orderStatusTotal.WithLabelValues(status).Inc()
}

// RecordWorkerTask 记录异步任务结果 (success / retry / dropped)
func (m *MetricsCollector) RecordWorkerTask(outcome string) {
	m.workerTasksTotal.WithLabelValues(outcome).Inc()
}

// UpdateActiveGoroutines 更新 goroutine 数量
func (m *MetricsCollector) UpdateActiveGoroutines(count int) {
	m.activeGoroutines.Set(float64(count))
}

// UpdateMemoryUsage 更新内存使用
func (m *MetricsCollector) UpdateMemoryUsage(bytes uint64) {
	m.memoryUsage.Set(float64(bytes))
}

// getStatusCategory 获取状态分类
func getStatusCategory(status int) string {
	switch {
	case status >= 200 && status < 300:
		return "2xx"
	case status >= 300 && status < 400:
		return "3xx"
	case status >= 400 && status < 500:
		return "4xx"
	case status >= 500:
		return "5xx"
	default:
		return "unknown"
	}
}

var (
	globalCollector *MetricsCollector
	globalOnce      sync.Once
)

// GetGlobalCollector 获取全局指标收集器（注册到默认 Registry）
func GetGlobalCollector() *MetricsCollector {
	globalOnce.Do(func() {
		globalCollector = NewMetricsCollector(prometheus.DefaultRegisterer)
	})
	return globalCollector
}
