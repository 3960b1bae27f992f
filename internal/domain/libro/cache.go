package libro

import (
	"context"
)

// PageCache 分页结果缓存
// 设计说明:
// 1. 过期时间在实现构造时固定,写入后不会被更新或主动删除
// 2. 新增图书不会清理任何缓存,过期前允许读到旧数据
// 3. 未命中返回(nil, false, nil);error只表示缓存服务本身故障
type PageCache interface {
	Get(ctx context.Context, key string) (*Page, bool, error)
	Set(ctx context.Context, key string, page *Page) error
}
