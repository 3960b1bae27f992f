//go:build wireinject
// +build wireinject

// Wire依赖注入配置
//
// 修改Provider后重新生成：
//
//	wire gen ./cmd/api
//
// 依赖链：
//
//	*gorm.DB → libro.Repository ┐
//	libro.PageCache ────────────┼→ *applibro.Service → *handler.LibroHandler → *gin.Engine → *http.Server
//	applibro.EventPublisher ────┘

package main

import (
	"github.com/google/wire"
	"go.uber.org/zap"

	applibro "github.com/xiebiao/libraryapi/internal/application/libro"
	"github.com/xiebiao/libraryapi/internal/infrastructure/config"
	"github.com/xiebiao/libraryapi/internal/infrastructure/persistence/sqlstore"
	"github.com/xiebiao/libraryapi/internal/interface/http/handler"
)

// infrastructureSet 数据库、缓存、消息队列
var infrastructureSet = wire.NewSet(
	provideDB,
	providePageCache,
	providePublisher,
)

// repositorySet 仓储
var repositorySet = wire.NewSet(
	sqlstore.NewLibroRepository,
)

// applicationSet 应用服务
var applicationSet = wire.NewSet(
	applibro.NewService,
)

// httpSet 处理器、中间件、路由、HTTP服务
var httpSet = wire.NewSet(
	handler.NewLibroHandler,
	provideRateLimiter,
	provideEngine,
	provideHTTPServer,
)

// InitializeApp 初始化整个应用
// cleanup按创建的逆序关闭消息队列、Redis、数据库连接
func InitializeApp(cfg *config.Config, log *zap.Logger) (*App, func(), error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		applicationSet,
		httpSet,
		newApp,
	)
	return nil, nil, nil
}
