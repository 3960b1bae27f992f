package libro

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/libraryapi/internal/domain/libro"
	"github.com/xiebiao/libraryapi/pkg/metrics"
	"github.com/xiebiao/libraryapi/pkg/tracing"
)

// RoutingKeyLibroCreated 新增图书事件的routing key
const RoutingKeyLibroCreated = "libro.created"

// CreateLibroInput 新增图书参数(已通过HTTP层校验)
type CreateLibroInput struct {
	Titulo           string
	Autor            string
	Descripcion      string
	Genero           string
	FechaPublicacion libro.Date
}

// LibroCreatedEvent libro.created 事件消息体
type LibroCreatedEvent struct {
	ID               uint       `json:"id"`
	Titulo           string     `json:"titulo"`
	Autor            string     `json:"autor"`
	Genero           string     `json:"genero"`
	FechaPublicacion libro.Date `json:"fechaPublicacion"`
}

// CreateLibro 新增图书
// 注意: 不清理列表缓存,已缓存的分页在过期前不会包含新图书
func (s *Service) CreateLibro(ctx context.Context, in CreateLibroInput) (*libro.Libro, error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "LibroService.CreateLibro")
	defer span.End()

	l := libro.NewLibro(in.Titulo, in.Autor, in.Descripcion, in.Genero, in.FechaPublicacion)

	if err := s.repo.Create(ctx, l); err != nil {
		s.logger.Error("新增图书失败", zap.String("titulo", in.Titulo), zap.Error(err))
		span.RecordError(err)
		return nil, err
	}

	metrics.IncLibrosCreated()
	s.logger.Info("新增图书", zap.Uint("id", l.ID), zap.String("titulo", l.Titulo))

	// 事件发布失败不影响新增结果
	event := LibroCreatedEvent{
		ID:               l.ID,
		Titulo:           l.Titulo,
		Autor:            l.Autor,
		Genero:           l.Genero,
		FechaPublicacion: l.FechaPublicacion,
	}
	if err := s.publisher.Publish(ctx, RoutingKeyLibroCreated, event); err != nil {
		s.logger.Warn("发布libro.created事件失败", zap.Uint("id", l.ID), zap.Error(err))
	}

	return l, nil
}
