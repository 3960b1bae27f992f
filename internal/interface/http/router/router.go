// Package router 组装gin引擎：中间件链 + 路由表
package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/xiebiao/libraryapi/internal/infrastructure/config"
	"github.com/xiebiao/libraryapi/internal/interface/http/dto"
	"github.com/xiebiao/libraryapi/internal/interface/http/handler"
	"github.com/xiebiao/libraryapi/internal/interface/http/middleware"
	"github.com/xiebiao/libraryapi/pkg/metrics"
)

// Options 路由依赖
type Options struct {
	Server    config.ServerConfig
	CORS      config.CORSConfig
	RateLimit config.RateLimitConfig

	Libros  *handler.LibroHandler
	Limiter *middleware.RateLimiter // RateLimit.Enabled为false时可为nil
	Logger  *zap.Logger

	// Now 校验"出版日期不能是未来"时使用的时钟，默认time.Now
	Now func() time.Time
}

// New 创建gin引擎
//
// 中间件顺序：
//  1. Recovery   最外层，兜住后面所有中间件的panic
//  2. RequestID  生成请求ID，后续日志、Span都会带上
//  3. Logger     访问日志
//  4. Tracing    根Span
//  5. Metrics    请求计数与耗时
//  6. CORS       预检请求在这里直接返回
//  7. RateLimit  只作用于 /api
func New(opts Options) (*gin.Engine, error) {
	gin.SetMode(ginMode(opts.Server.Mode))
	metrics.InitMetrics()

	now := opts.Now
	if now == nil {
		now = time.Now
	}
	if err := dto.RegisterValidators(now); err != nil {
		return nil, err
	}

	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	r := gin.New()
	r.Use(
		middleware.Recovery(log),
		middleware.RequestID(),
		middleware.Logger(log),
		middleware.Tracing(),
		middleware.Metrics(),
		middleware.CORS(opts.CORS),
	)

	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger文档，生产环境不开放
	if gin.Mode() != gin.ReleaseMode {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group("/api")
	if opts.RateLimit.Enabled && opts.Limiter != nil {
		api.Use(middleware.RateLimit(opts.Limiter))
	}

	// 前端使用 /api/Libros，小写路径作为别名
	for _, prefix := range []string{"/Libros", "/libros"} {
		libros := api.Group(prefix)
		{
			libros.GET("", opts.Libros.ListLibros)
			libros.POST("", opts.Libros.CreateLibro)
			libros.GET("/:id", opts.Libros.GetLibro)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "El recurso solicitado no fue encontrado"})
	})

	return r, nil
}

func ginMode(mode string) string {
	switch mode {
	case gin.ReleaseMode, gin.TestMode:
		return mode
	default:
		return gin.DebugMode
	}
}
