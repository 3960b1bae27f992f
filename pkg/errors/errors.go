package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError 自定义应用错误
// 设计说明：
// 1. Code用于区分错误类别，边界层(HTTP)据此映射状态码
// 2. Message是用户友好的提示信息（直接返回给前端）
// 3. Err是内部错误，仅记录到日志或在调试模式下作为detail返回
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 支持errors.Is和errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is 按错误码比较，便于 errors.Is(err, ErrNotFound) 这样的判断
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// New 创建新的AppError
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap 包装系统错误（如数据库错误、缓存错误）
func Wrap(err error, message string) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
		Err:     err,
	}
}

// Wrapf 格式化包装错误
func Wrapf(err error, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// InvalidParams 参数错误（对应原先的 ArgumentException）
func InvalidParams(message string) *AppError {
	return New(ErrCodeInvalidParams, message)
}

// =========================================
// 错误码定义
// =========================================
// 规范：
// - 400xx: 参数错误
// - 401xx: 认证授权错误
// - 404xx: 资源不存在
// - 500xx: 服务端错误（数据库异常、缓存异常）

const (
	ErrCodeInternal      = 50000 // 内部错误
	ErrCodeDatabaseError = 50001 // 数据库错误
	ErrCodeCacheError    = 50002 // 缓存错误

	ErrCodeUnauthorized = 40100 // 未授权

	ErrCodeNotFound      = 40400 // 资源不存在(通用)
	ErrCodeLibroNotFound = 40401 // 图书不存在

	ErrCodeInvalidParams = 40000 // 参数错误(通用)
	ErrCodeValidation    = 40001 // 校验失败
	ErrCodeBindError     = 40002 // 请求体格式错误
)

// 预定义错误
var (
	ErrInternal      = New(ErrCodeInternal, "Ha ocurrido un error interno en el servidor")
	ErrDatabaseError = New(ErrCodeDatabaseError, "Error de base de datos")
	ErrCacheError    = New(ErrCodeCacheError, "Error del servicio de caché")

	ErrUnauthorized = New(ErrCodeUnauthorized, "No tiene autorización para realizar esta operación")

	ErrNotFound = New(ErrCodeNotFound, "El recurso solicitado no fue encontrado")

	ErrInvalidParams = New(ErrCodeInvalidParams, "Parámetros inválidos")
	ErrValidation    = New(ErrCodeValidation, "Uno o más errores de validación ocurrieron")
	ErrBindError     = New(ErrCodeBindError, "El cuerpo de la solicitud no es válido")
)

// HTTPStatus 错误码 → HTTP状态码
// 只看错误码所属的类别(前三位)，新增错误码无需修改这里
func HTTPStatus(code int) int {
	switch code / 100 {
	case 400:
		return http.StatusBadRequest
	case 401:
		return http.StatusUnauthorized
	case 404:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// IsAppError 判断是否为AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError 提取AppError（如果不是AppError则包装成Internal错误）
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, ErrInternal.Message)
}
