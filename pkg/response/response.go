package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/xiebiao/libraryapi/pkg/errors"
)

// ErrorBody 统一错误响应结构
// 设计说明：
// 1. 成功响应直接返回业务数据（图书、分页信封），不再包一层
// 2. Message是用户友好的提示信息，前端直接展示
// 3. Code是业务错误码，方便客户端区分错误类型
// 4. Detail/StackTrace只在非release模式下返回
// 5. Errors是字段校验错误：字段名 → 错误信息列表
type ErrorBody struct {
	Code       int                 `json:"code,omitempty"`
	Message    string              `json:"message"`
	Detail     string              `json:"detail,omitempty"`
	StackTrace string              `json:"stackTrace,omitempty"`
	Errors     map[string][]string `json:"errors,omitempty"`
}

// OK 200响应
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created 201响应，location为新资源地址
func Created(c *gin.Context, location string, data interface{}) {
	if location != "" {
		c.Header("Location", location)
	}
	c.JSON(http.StatusCreated, data)
}

// Error 错误响应（自动处理AppError）
// 用法：
//
//	page, err := h.service.ListLibros(...)
//	if err != nil {
//	    response.Error(c, err)
//	    return
//	}
//
// 1. 状态码由错误码类别决定（400/401/404/500）
// 2. 非AppError一律按500处理，返回通用提示
// 3. 原始错误挂到c.Errors，由日志中间件统一记录
func Error(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)
	status := apperrors.HTTPStatus(appErr.Code)

	_ = c.Error(err)

	body := ErrorBody{
		Code:    appErr.Code,
		Message: appErr.Message,
	}
	if status == http.StatusInternalServerError {
		body.Message = apperrors.ErrInternal.Message
	}
	if Debug() {
		body.Detail = err.Error()
	}

	c.AbortWithStatusJSON(status, body)
}

// ValidationError 400字段校验错误
func ValidationError(c *gin.Context, fieldErrors map[string][]string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorBody{
		Code:    apperrors.ErrCodeValidation,
		Message: apperrors.ErrValidation.Message,
		Errors:  fieldErrors,
	})
}

// Panic 500响应（recovery中间件使用）
func Panic(c *gin.Context, detail, stack string) {
	body := ErrorBody{
		Code:    apperrors.ErrCodeInternal,
		Message: apperrors.ErrInternal.Message,
	}
	if Debug() {
		body.Detail = detail
		body.StackTrace = stack
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, body)
}

// Debug 非release模式下返回错误细节
func Debug() bool {
	return gin.Mode() != gin.ReleaseMode
}
