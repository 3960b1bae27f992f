package dto

import (
	"github.com/xiebiao/libraryapi/internal/domain/libro"
)

// CreateLibroRequest HTTP新增图书请求
// validator tag说明:
// - notblank: 自定义规则,去掉首尾空白后不能为空
// - utf16max: 按UTF-16码元计算长度(emoji等占2个),与前端String.length一致
// - notfuture: 自定义规则,出版日期不能晚于今天
type CreateLibroRequest struct {
	Titulo           string     `json:"titulo" binding:"notblank,utf16max=200" example:"Cien años de soledad"`
	Autor            string     `json:"autor" binding:"notblank,utf16max=200" example:"Gabriel García Márquez"`
	Descripcion      string     `json:"descripcion" binding:"notblank" example:"La historia de la familia Buendía"`
	Genero           string     `json:"genero" binding:"utf16max=100" example:"Ficción"`
	FechaPublicacion libro.Date `json:"fechaPublicacion" binding:"required,notfuture" swaggertype:"string" format:"date" example:"1967-05-30"`
}

// ListLibrosQuery 列表查询参数
// 页码和每页数量的默认值、范围处理见Normalize
type ListLibrosQuery struct {
	PageNumber int    `form:"pageNumber,default=1"`
	PageSize   int    `form:"pageSize,default=10"`
	SearchTerm string `form:"searchTerm"`
	Genero     string `form:"genero"`
}

// 分页参数边界
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Normalize 分页参数修正
// pageNumber<1 → 1; pageSize<1 → 10; pageSize>100 → 100
func (q *ListLibrosQuery) Normalize() {
	if q.PageNumber < 1 {
		q.PageNumber = 1
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}
	if q.PageSize > MaxPageSize {
		q.PageSize = MaxPageSize
	}
}

// LibroResponse HTTP图书响应
type LibroResponse struct {
	ID               uint   `json:"id" example:"1"`
	Titulo           string `json:"titulo" example:"Cien años de soledad"`
	Autor            string `json:"autor" example:"Gabriel García Márquez"`
	Descripcion      string `json:"descripcion" example:"La historia de la familia Buendía"`
	Genero           string `json:"genero" example:"Ficción"`
	FechaPublicacion string `json:"fechaPublicacion" example:"1967-05-30"`
}

// PageResponse HTTP分页响应(字段与前端PaginatedResponse一致)
type PageResponse struct {
	Items           []LibroResponse `json:"items"`
	PageNumber      int             `json:"pageNumber" example:"1"`
	PageSize        int             `json:"pageSize" example:"10"`
	TotalCount      int64           `json:"totalCount" example:"42"`
	TotalPages      int             `json:"totalPages" example:"5"`
	HasPreviousPage bool            `json:"hasPreviousPage" example:"false"`
	HasNextPage     bool            `json:"hasNextPage" example:"true"`
}

// NewLibroResponse 领域实体 → HTTP响应
func NewLibroResponse(l *libro.Libro) LibroResponse {
	return LibroResponse{
		ID:               l.ID,
		Titulo:           l.Titulo,
		Autor:            l.Autor,
		Descripcion:      l.Descripcion,
		Genero:           l.Genero,
		FechaPublicacion: l.FechaPublicacion.String(),
	}
}

// NewPageResponse 分页信封 → HTTP响应
func NewPageResponse(p *libro.Page) PageResponse {
	items := make([]LibroResponse, len(p.Items))
	for i, l := range p.Items {
		items[i] = NewLibroResponse(l)
	}
	return PageResponse{
		Items:           items,
		PageNumber:      p.PageNumber,
		PageSize:        p.PageSize,
		TotalCount:      p.TotalCount,
		TotalPages:      p.TotalPages,
		HasPreviousPage: p.HasPreviousPage,
		HasNextPage:     p.HasNextPage,
	}
}
