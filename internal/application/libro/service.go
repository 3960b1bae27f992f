package libro

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/libraryapi/internal/domain/libro"
)

const tracerName = "libraryapi/application/libro"

// EventPublisher 领域事件发布端口(由pkg/mq.Publisher实现)
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, message interface{}) error
}

// NopPublisher 未启用消息队列时使用,丢弃所有事件
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, interface{}) error { return nil }

// Service 图书目录服务
// 设计说明:
// 1. 列表查询先查缓存,未命中才访问数据库,结果写入缓存直到过期
// 2. 新增图书不清理缓存,过期前列表可能读到旧数据
// 3. 数据库错误记录日志后原样返回,不重试
type Service struct {
	repo      libro.Repository
	cache     libro.PageCache
	publisher EventPublisher
	logger    *zap.Logger
}

// NewService 创建图书目录服务
func NewService(repo libro.Repository, cache libro.PageCache, publisher EventPublisher, logger *zap.Logger) *Service {
	if publisher == nil {
		publisher = NopPublisher{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:      repo,
		cache:     cache,
		publisher: publisher,
		logger:    logger.Named("libro"),
	}
}
