package libro

import (
	apperrors "github.com/xiebiao/libraryapi/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrLibroNotFound 图书不存在
	ErrLibroNotFound = apperrors.New(apperrors.ErrCodeLibroNotFound, "El libro solicitado no fue encontrado")

	// ErrInvalidPageNumber 页码必须>=1
	ErrInvalidPageNumber = apperrors.InvalidParams("El número de página debe ser mayor o igual a 1")

	// ErrInvalidPageSize 每页数量必须>=1
	ErrInvalidPageSize = apperrors.InvalidParams("El tamaño de página debe ser mayor o igual a 1")
)
