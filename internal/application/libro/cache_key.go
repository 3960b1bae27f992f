package libro

import (
	"fmt"
	"strconv"
	"strings"
)

// allSentinel 未指定搜索词/体裁时在缓存键中的占位
const allSentinel = "all"

// PageCacheKey 列表缓存键
// 格式: libros:list:{page}:{size}:{search}:{genero}
// 有值的字段加引号,搜索"all"或含冒号的值不会与其他键冲突
func PageCacheKey(page, pageSize int, searchTerm, genero string) string {
	return fmt.Sprintf("libros:list:%d:%d:%s:%s", page, pageSize, keyPart(searchTerm), keyPart(genero))
}

func keyPart(v string) string {
	if strings.TrimSpace(v) == "" {
		return allSentinel
	}
	return strconv.Quote(v)
}
