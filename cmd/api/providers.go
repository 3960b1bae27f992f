package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	applibro "github.com/xiebiao/libraryapi/internal/application/libro"
	"github.com/xiebiao/libraryapi/internal/domain/libro"
	"github.com/xiebiao/libraryapi/internal/infrastructure/config"
	"github.com/xiebiao/libraryapi/internal/infrastructure/persistence/memory"
	"github.com/xiebiao/libraryapi/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/libraryapi/internal/infrastructure/persistence/sqlstore"
	"github.com/xiebiao/libraryapi/internal/interface/http/handler"
	"github.com/xiebiao/libraryapi/internal/interface/http/middleware"
	"github.com/xiebiao/libraryapi/internal/interface/http/router"
	"github.com/xiebiao/libraryapi/pkg/mq"
)

// App 组装完成的应用
type App struct {
	Server  *http.Server
	Limiter *middleware.RateLimiter // 未启用限流时为nil
}

func newApp(server *http.Server, limiter *middleware.RateLimiter) *App {
	return &App{Server: server, Limiter: limiter}
}

// openDB 打开数据库连接，cleanup关闭连接池
func openDB(dbCfg config.DatabaseConfig, mode string, log *zap.Logger) (*gorm.DB, func(), error) {
	db, err := sqlstore.NewDB(dbCfg, mode, log)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return db, cleanup, nil
}

func provideDB(cfg *config.Config, log *zap.Logger) (*gorm.DB, func(), error) {
	return openDB(cfg.Database, cfg.Server.Mode, log)
}

// providePageCache 按cache.driver选择列表缓存
// redis缓存带熔断：Redis故障时直接按未命中处理，请求回落到数据库
func providePageCache(cfg *config.Config, log *zap.Logger) (libro.PageCache, func(), error) {
	switch cfg.Cache.Driver {
	case "redis":
		client, err := redis.NewClient(context.Background(), cfg.Redis, log)
		if err != nil {
			return nil, nil, err
		}
		breaker := redis.NewBreaker(cfg.Cache.Breaker.MaxFailures, cfg.Cache.Breaker.OpenTimeout, log)
		cache := redis.NewPageCache(client, cfg.Cache.TTL, cfg.Cache.KeyPrefix, breaker)
		return cache, func() { _ = client.Close() }, nil

	case "memory":
		cache := memory.NewPageCache(memory.PageCacheOptions{
			Capacity:           cfg.Cache.Capacity,
			NumShards:          cfg.Cache.NumShards,
			TTL:                cfg.Cache.TTL,
			EvictionPercentage: cfg.Cache.EvictionPercentage,
		})
		return cache, func() {}, nil

	default:
		return nil, nil, fmt.Errorf("不支持的缓存驱动: %s", cfg.Cache.Driver)
	}
}

// providePublisher 启用mq时发布libro.created事件，否则丢弃
func providePublisher(cfg *config.Config, log *zap.Logger) (applibro.EventPublisher, func(), error) {
	if !cfg.MQ.Enabled {
		return applibro.NopPublisher{}, func() {}, nil
	}

	publisher, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, cfg.MQ.ExchangeType, log)
	if err != nil {
		return nil, nil, err
	}
	return publisher, func() { _ = publisher.Close() }, nil
}

func provideRateLimiter(cfg *config.Config) *middleware.RateLimiter {
	if !cfg.RateLimit.Enabled {
		return nil
	}
	return middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
}

func provideEngine(cfg *config.Config, libros *handler.LibroHandler, limiter *middleware.RateLimiter, log *zap.Logger) (*gin.Engine, error) {
	return router.New(router.Options{
		Server:    cfg.Server,
		CORS:      cfg.CORS,
		RateLimit: cfg.RateLimit,
		Libros:    libros,
		Limiter:   limiter,
		Logger:    log,
	})
}

func provideHTTPServer(cfg *config.Config, engine *gin.Engine) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}
