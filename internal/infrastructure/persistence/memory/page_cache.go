package memory

import (
	"context"
	"time"

	"github.com/viccon/sturdyc"

	"github.com/xiebiao/libraryapi/internal/domain/libro"
)

// PageCacheOptions 进程内列表缓存参数
type PageCacheOptions struct {
	Capacity           int           // 最大条目数(所有分片合计)
	NumShards          int           // 分片数,减少锁竞争
	TTL                time.Duration // 写入后的绝对过期时间
	EvictionPercentage int           // 分片写满时淘汰的比例
	Clock              sturdyc.Clock // 为nil时使用真实时钟
}

// PageCache 基于sturdyc的进程内分页缓存
// 只使用Get/Set,不用GetOrFetch: 同一个键的并发未命中会各自查询数据库
type PageCache struct {
	client *sturdyc.Client[*libro.Page]
}

var _ libro.PageCache = (*PageCache)(nil)

// NewPageCache 创建进程内分页缓存
func NewPageCache(opts PageCacheOptions) *PageCache {
	var sturdyOpts []sturdyc.Option
	if opts.Clock != nil {
		sturdyOpts = append(sturdyOpts, sturdyc.WithClock(opts.Clock))
	}

	client := sturdyc.New[*libro.Page](
		opts.Capacity,
		opts.NumShards,
		opts.TTL,
		opts.EvictionPercentage,
		sturdyOpts...,
	)

	return &PageCache{client: client}
}

// Get 读取缓存,过期条目视为未命中
func (c *PageCache) Get(_ context.Context, key string) (*libro.Page, bool, error) {
	page, ok := c.client.Get(key)
	if !ok {
		return nil, false, nil
	}
	return page, true, nil
}

// Set 写入缓存,过期时间从写入时刻起算
func (c *PageCache) Set(_ context.Context, key string, page *libro.Page) error {
	c.client.Set(key, page)
	return nil
}

// Size 当前条目数(含已过期但未被清理的)
func (c *PageCache) Size() int {
	return c.client.Size()
}
