package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/libraryapi/pkg/metrics"
)

// Metrics Prometheus指标中间件
// path标签使用路由模板（/api/Libros/:id），未匹配路由统一记为unmatched，避免高基数
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		done := metrics.IncInProgress()
		defer done()

		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.ObserveHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start).Seconds())
	}
}
