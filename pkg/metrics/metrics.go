// Package metrics 提供基于Prometheus的指标收集
//
// 指标分三类：
//   - HTTP请求：请求总数、耗时分布、处理中的请求数（由middleware.Metrics记录）
//   - 图书业务：列表缓存命中/未命中、新增图书数
//   - 基础设施：缓存熔断器状态、领域事件发布数
//
// 所有指标注册到Prometheus默认Registry，由 GET /metrics 暴露。
//
// 使用示例：
//
//	metrics.InitMetrics()
//	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
//
//	metrics.ObserveCacheLookup(true)
//	metrics.IncLibrosCreated()
//
// 命名规范：Counter以_total结尾，Histogram以单位结尾(_seconds)。
// 标签只用有限取值的维度（method、status、result），不要把图书ID或搜索词放进标签。
package metrics

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// 缓存查询结果标签
const (
	CacheHit  = "hit"
	CacheMiss = "miss"
)

var (
	initOnce sync.Once

	// HTTP请求相关指标

	// HTTPRequestsTotal HTTP请求总数（Counter）
	// 标签：method（GET/POST）、path（路由模板，如/api/Libros/:id）、status（200/400）
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时（Histogram）
	// 桶设置：1ms、10ms、100ms、500ms、1s、5s、10s
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数（Gauge）
	HTTPRequestsInProgress prometheus.Gauge

	// 业务指标

	// LibrosCacheLookupsTotal 列表缓存查询次数（Counter）
	// 标签：result（hit/miss）
	LibrosCacheLookupsTotal *prometheus.CounterVec

	// LibrosCreatedTotal 新增图书总数（Counter）
	LibrosCreatedTotal prometheus.Counter

	// 熔断器指标

	// CircuitBreakerState 熔断器状态（Gauge）
	// 0=CLOSED, 1=OPEN, 2=HALF_OPEN
	CircuitBreakerState *prometheus.GaugeVec

	// CircuitBreakerRequests 熔断器请求总数（Counter）
	// 标签：name（熔断器名称）、result（success/failure/rejected）
	CircuitBreakerRequests *prometheus.CounterVec

	// 消息队列指标

	// MessagesPublishedTotal 消息发布总数（Counter）
	// 标签：exchange（交换机）、routing_key（路由键）、result（success/failure）
	MessagesPublishedTotal *prometheus.CounterVec
)

// InitMetrics 初始化所有Prometheus指标
//
// 可以重复调用，只有第一次会注册。
// 下面的便捷函数都会先调用它，所以单元测试里不需要手动初始化。
func InitMetrics() {
	initOnce.Do(register)
}

func register() {
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP请求总数",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP请求耗时（秒）",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_progress",
			Help: "正在处理的HTTP请求数",
		},
	)

	LibrosCacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "libros_cache_lookups_total",
			Help: "图书列表缓存查询次数",
		},
		[]string{"result"},
	)

	LibrosCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "libros_created_total",
			Help: "新增图书总数",
		},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "熔断器状态（0=CLOSED, 1=OPEN, 2=HALF_OPEN）",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "熔断器请求总数",
		},
		[]string{"name", "result"},
	)

	MessagesPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messages_published_total",
			Help: "消息发布总数",
		},
		[]string{"exchange", "routing_key", "result"},
	)
}

// ObserveHTTPRequest 记录一次HTTP请求
func ObserveHTTPRequest(method, path string, status int, seconds float64) {
	InitMetrics()
	HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(seconds)
}

// IncInProgress 处理中的请求数+1，返回对应的-1函数
func IncInProgress() func() {
	InitMetrics()
	HTTPRequestsInProgress.Inc()
	return HTTPRequestsInProgress.Dec
}

// ObserveCacheLookup 记录一次列表缓存查询
func ObserveCacheLookup(hit bool) {
	InitMetrics()
	result := CacheMiss
	if hit {
		result = CacheHit
	}
	LibrosCacheLookupsTotal.WithLabelValues(result).Inc()
}

// IncLibrosCreated 新增图书数+1
func IncLibrosCreated() {
	InitMetrics()
	LibrosCreatedTotal.Inc()
}

// SetBreakerState 记录熔断器状态
func SetBreakerState(name string, state int) {
	InitMetrics()
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}

// IncBreakerRequest 记录一次经过熔断器的调用
// result: success / failure / rejected
func IncBreakerRequest(name, result string) {
	InitMetrics()
	CircuitBreakerRequests.WithLabelValues(name, result).Inc()
}

// IncMessagePublished 记录一次消息发布
func IncMessagePublished(exchange, routingKey string, ok bool) {
	InitMetrics()
	result := "success"
	if !ok {
		result = "failure"
	}
	MessagesPublishedTotal.WithLabelValues(exchange, routingKey, result).Inc()
}
