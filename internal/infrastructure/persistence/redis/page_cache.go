package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/xiebiao/libraryapi/internal/domain/libro"
	"github.com/xiebiao/libraryapi/pkg/circuitbreaker"
	"github.com/xiebiao/libraryapi/pkg/metrics"
)

// BreakerName 缓存熔断器名称（日志和指标标签）
const BreakerName = "libros-cache"

// PageCache 基于Redis的分页缓存
//
// 1. 值为分页信封的JSON，过期由Redis的key TTL负责（SET key value EX ttl）
// 2. 多实例部署时共享同一份缓存
// 3. 所有调用经过熔断器，Redis故障期间直接返回错误，由调用方按未命中处理
type PageCache struct {
	client  redis.UniversalClient
	ttl     time.Duration
	prefix  string
	breaker *circuitbreaker.CircuitBreaker
}

var _ libro.PageCache = (*PageCache)(nil)

// NewPageCache 创建Redis分页缓存
// prefix会拼在缓存键之前，多个环境共用一个Redis时用来隔离
func NewPageCache(client redis.UniversalClient, ttl time.Duration, prefix string, breaker *circuitbreaker.CircuitBreaker) *PageCache {
	return &PageCache{
		client:  client,
		ttl:     ttl,
		prefix:  prefix,
		breaker: breaker,
	}
}

// NewBreaker 创建缓存熔断器，状态变化记录日志和指标
func NewBreaker(maxFailures uint32, openTimeout time.Duration, logger *zap.Logger) *circuitbreaker.CircuitBreaker {
	cb := circuitbreaker.NewCircuitBreaker(BreakerName, circuitbreaker.Config{
		MaxRequests: 1,
		Timeout:     openTimeout,
		ReadyToTrip: func(counts circuitbreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
	})
	cb.SetStateChangeCallback(func(name string, from, to circuitbreaker.State) {
		logger.Warn("缓存熔断器状态变化",
			zap.String("name", name),
			zap.Stringer("from", from),
			zap.Stringer("to", to),
		)
		metrics.SetBreakerState(name, int(to))
	})
	return cb
}

// Get 读取缓存，key不存在（或已过期）返回未命中
func (c *PageCache) Get(ctx context.Context, key string) (*libro.Page, bool, error) {
	var val []byte
	err := c.execute(func() error {
		b, err := c.client.Get(ctx, c.prefix+key).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil
		}
		val = b
		return err
	})
	if err != nil {
		return nil, false, fmt.Errorf("获取缓存失败: %w", err)
	}
	if val == nil {
		return nil, false, nil
	}

	var page libro.Page
	if err := json.Unmarshal(val, &page); err != nil {
		return nil, false, fmt.Errorf("反序列化失败: %w", err)
	}
	return &page, true, nil
}

// Set 写入缓存，TTL从写入时刻起算
func (c *PageCache) Set(ctx context.Context, key string, page *libro.Page) error {
	val, err := json.Marshal(page)
	if err != nil {
		return fmt.Errorf("序列化失败: %w", err)
	}

	err = c.execute(func() error {
		return c.client.Set(ctx, c.prefix+key, val, c.ttl).Err()
	})
	if err != nil {
		return fmt.Errorf("设置缓存失败: %w", err)
	}
	return nil
}

func (c *PageCache) execute(fn func() error) error {
	if c.breaker == nil {
		return fn()
	}

	err := c.breaker.Execute(fn)
	switch {
	case errors.Is(err, circuitbreaker.ErrOpenState):
		metrics.IncBreakerRequest(BreakerName, "rejected")
	case err != nil:
		metrics.IncBreakerRequest(BreakerName, "failure")
	default:
		metrics.IncBreakerRequest(BreakerName, "success")
	}
	return err
}
