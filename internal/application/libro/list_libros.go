package libro

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/xiebiao/libraryapi/internal/domain/libro"
	"github.com/xiebiao/libraryapi/pkg/metrics"
	"github.com/xiebiao/libraryapi/pkg/tracing"
)

// ListLibrosQuery 列表查询参数
// 页码和每页数量由调用方(HTTP层)先做默认值与范围处理
type ListLibrosQuery struct {
	PageNumber int
	PageSize   int
	SearchTerm string // 标题子串,区分大小写;空白视为未指定
	Genero     string // 体裁精确匹配;空白视为未指定
}

// ListLibros 分页查询图书(带缓存)
// 流程:
// 1. 计算缓存键,命中直接返回,不访问数据库
// 2. 未命中: 查询总数和当前页 → 组装分页信封 → 写入缓存
// 3. 缓存故障按未命中处理,只记日志
func (s *Service) ListLibros(ctx context.Context, q ListLibrosQuery) (*libro.Page, error) {
	if q.PageNumber < 1 {
		return nil, libro.ErrInvalidPageNumber
	}
	if q.PageSize < 1 {
		return nil, libro.ErrInvalidPageSize
	}

	ctx, span := tracing.StartSpan(ctx, tracerName, "LibroService.ListLibros")
	defer span.End()

	search := normalize(q.SearchTerm)
	genero := normalize(q.Genero)
	key := PageCacheKey(q.PageNumber, q.PageSize, search, genero)
	span.SetAttributes(attribute.String("cache.key", key))

	if page, ok := s.cachedPage(ctx, key); ok {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		metrics.ObserveCacheLookup(true)
		return page, nil
	}
	span.SetAttributes(attribute.Bool("cache.hit", false))
	metrics.ObserveCacheLookup(false)

	params := libro.ListParams{
		Page:       q.PageNumber,
		PageSize:   q.PageSize,
		SearchTerm: search,
		Genero:     genero,
	}

	items, total, err := s.repo.List(ctx, params)
	if err != nil {
		s.logger.Error("查询图书列表失败",
			zap.Int("page", q.PageNumber),
			zap.Int("page_size", q.PageSize),
			zap.String("search", search),
			zap.String("genero", genero),
			zap.Error(err),
		)
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository list failed")
		return nil, err
	}

	page := libro.NewPage(items, total, q.PageNumber, q.PageSize)

	if err := s.cache.Set(ctx, key, page); err != nil {
		s.logger.Warn("写入列表缓存失败", zap.String("key", key), zap.Error(err))
	}

	return page, nil
}

func (s *Service) cachedPage(ctx context.Context, key string) (*libro.Page, bool) {
	page, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("读取列表缓存失败", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	if ok {
		s.logger.Debug("列表缓存命中", zap.String("key", key))
	}
	return page, ok
}

func normalize(v string) string {
	if strings.TrimSpace(v) == "" {
		return ""
	}
	return v
}
