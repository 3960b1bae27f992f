package libro

// Page 分页信封
// 每次查询构造一次,随后写入缓存,直到过期
type Page struct {
	Items           []*Libro `json:"items"`
	PageNumber      int      `json:"pageNumber"`
	PageSize        int      `json:"pageSize"`
	TotalCount      int64    `json:"totalCount"`
	TotalPages      int      `json:"totalPages"`
	HasPreviousPage bool     `json:"hasPreviousPage"`
	HasNextPage     bool     `json:"hasNextPage"`
}

// NewPage 由当前页数据和总数构造分页信封
// pageSize必须>0(由调用方保证)
func NewPage(items []*Libro, totalCount int64, pageNumber, pageSize int) *Page {
	if items == nil {
		items = []*Libro{}
	}

	totalPages := int(totalCount / int64(pageSize))
	if totalCount%int64(pageSize) != 0 {
		totalPages++
	}

	return &Page{
		Items:           items,
		PageNumber:      pageNumber,
		PageSize:        pageSize,
		TotalCount:      totalCount,
		TotalPages:      totalPages,
		HasPreviousPage: pageNumber > 1,
		HasNextPage:     pageNumber < totalPages,
	}
}
