package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/xiebiao/libraryapi/pkg/response"
)

// Recovery panic恢复中间件
// 记录堆栈后返回统一的500错误体；非release模式下附带detail和stackTrace
func Recovery(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				stack := string(debug.Stack())
				log.Error("panic recovered",
					zap.String("request_id", GetRequestID(c)),
					zap.Any("error", rec),
					zap.String("stack", stack),
				)

				if c.Writer.Written() {
					c.Abort()
					return
				}
				response.Panic(c, fmt.Sprint(rec), stack)
			}
		}()
		c.Next()
	}
}
