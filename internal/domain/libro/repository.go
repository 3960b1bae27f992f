package libro

import (
	"context"
	"math"
)

// Repository 图书仓储接口(依赖倒置原则)
// 由domain层定义,infrastructure层实现
type Repository interface {
	// List 按条件分页查询,按ID降序,同时返回满足条件的总数
	List(ctx context.Context, params ListParams) ([]*Libro, int64, error)

	// FindByID 根据ID查找图书,不存在返回ErrLibroNotFound
	FindByID(ctx context.Context, id uint) (*Libro, error)

	// Create 插入图书并回填ID
	Create(ctx context.Context, libro *Libro) error

	// Update 按ID更新全部字段,不存在返回ErrLibroNotFound
	Update(ctx context.Context, libro *Libro) error

	// Delete 按ID删除,不存在时什么也不做
	Delete(ctx context.Context, id uint) error
}

// ListParams 列表查询参数
type ListParams struct {
	Page       int    // 页码(从1开始)
	PageSize   int    // 每页数量
	SearchTerm string // 标题子串(区分大小写),空表示不过滤
	Genero     string // 体裁(精确匹配),空表示不过滤
}

// Offset 跳过的记录数
// 页码过大导致溢出时返回math.MaxInt(超出任何实际数据量)
func (p ListParams) Offset() int {
	if p.OffsetOverflows() {
		return math.MaxInt
	}
	return (p.Page - 1) * p.PageSize
}

// OffsetOverflows (Page-1)*PageSize超出int范围
func (p ListParams) OffsetOverflows() bool {
	return p.Page > 1 && p.PageSize > 0 && p.Page-1 > math.MaxInt/p.PageSize
}
