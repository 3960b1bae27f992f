package handler

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	applibro "github.com/xiebiao/libraryapi/internal/application/libro"
	"github.com/xiebiao/libraryapi/internal/interface/http/dto"
	apperrors "github.com/xiebiao/libraryapi/pkg/errors"
	"github.com/xiebiao/libraryapi/pkg/response"
)

// LibroHandler 图书HTTP处理器
type LibroHandler struct {
	service *applibro.Service
}

// NewLibroHandler 创建图书处理器
func NewLibroHandler(service *applibro.Service) *LibroHandler {
	return &LibroHandler{service: service}
}

// ListLibros 分页查询图书
// @Summary      图书列表
// @Description  分页查询图书，按ID倒序；searchTerm按标题子串匹配（区分大小写），genero精确匹配。结果缓存5分钟
// @Tags         Libros
// @Produce      json
// @Param        pageNumber query int    false "页码，<1按1处理"        default(1)
// @Param        pageSize   query int    false "每页数量，1~100"        default(10)
// @Param        searchTerm query string false "标题关键词"
// @Param        genero     query string false "体裁"
// @Success      200 {object} dto.PageResponse
// @Failure      400 {object} response.ErrorBody "参数错误"
// @Failure      500 {object} response.ErrorBody "服务器错误"
// @Router       /api/Libros [get]
func (h *LibroHandler) ListLibros(c *gin.Context) {
	var q dto.ListLibrosQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		if fieldErrors := dto.QueryErrors(c.Request.URL.Query()); len(fieldErrors) > 0 {
			response.ValidationError(c, fieldErrors)
			return
		}
		response.Error(c, &apperrors.AppError{
			Code:    apperrors.ErrCodeInvalidParams,
			Message: apperrors.ErrInvalidParams.Message,
			Err:     err,
		})
		return
	}
	q.Normalize()

	page, err := h.service.ListLibros(c.Request.Context(), applibro.ListLibrosQuery{
		PageNumber: q.PageNumber,
		PageSize:   q.PageSize,
		SearchTerm: q.SearchTerm,
		Genero:     q.Genero,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.NewPageResponse(page))
}

// CreateLibro 新增图书
// @Summary      新增图书
// @Description  新增一条图书记录。不会清理列表缓存
// @Tags         Libros
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateLibroRequest true "图书信息"
// @Success      201 {object} dto.LibroResponse
// @Header       201 {string} Location "/api/Libros/{id}"
// @Failure      400 {object} response.ErrorBody "校验失败"
// @Failure      500 {object} response.ErrorBody "服务器错误"
// @Router       /api/Libros [post]
func (h *LibroHandler) CreateLibro(c *gin.Context) {
	var req dto.CreateLibroRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if fieldErrors, ok := dto.FieldErrors(err); ok {
			response.ValidationError(c, fieldErrors)
			return
		}
		// JSON格式错误、日期无法解析
		response.Error(c, &apperrors.AppError{
			Code:    apperrors.ErrCodeBindError,
			Message: apperrors.ErrBindError.Message,
			Err:     err,
		})
		return
	}

	created, err := h.service.CreateLibro(c.Request.Context(), applibro.CreateLibroInput{
		Titulo:           req.Titulo,
		Autor:            req.Autor,
		Descripcion:      req.Descripcion,
		Genero:           req.Genero,
		FechaPublicacion: req.FechaPublicacion,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, fmt.Sprintf("/api/Libros/%d", created.ID), dto.NewLibroResponse(created))
}

// GetLibro 按ID查询图书
// @Summary      图书详情
// @Tags         Libros
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} dto.LibroResponse
// @Failure      400 {object} response.ErrorBody "ID格式错误"
// @Failure      404 {object} response.ErrorBody "图书不存在"
// @Router       /api/Libros/{id} [get]
func (h *LibroHandler) GetLibro(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.Error(c, apperrors.InvalidParams("El id del libro no es válido"))
		return
	}

	l, err := h.service.GetLibro(c.Request.Context(), uint(id))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.NewLibroResponse(l))
}
