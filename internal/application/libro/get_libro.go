package libro

import (
	"context"

	"github.com/xiebiao/libraryapi/internal/domain/libro"
)

// GetLibro 按ID查询图书(不走缓存)
// 不存在返回libro.ErrLibroNotFound
func (s *Service) GetLibro(ctx context.Context, id uint) (*libro.Libro, error) {
	return s.repo.FindByID(ctx, id)
}
