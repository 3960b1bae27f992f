package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/libraryapi/pkg/errors"
)

func perform(t *testing.T, mode string, handler gin.HandlerFunc) (*httptest.ResponseRecorder, ErrorBody) {
	t.Helper()

	prev := gin.Mode()
	gin.SetMode(mode)
	t.Cleanup(func() { gin.SetMode(prev) })

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	handler(c)

	var body ErrorBody
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	}
	return w, body
}

func TestError_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"参数错误", apperrors.InvalidParams("pageNumber inválido"), http.StatusBadRequest, "pageNumber inválido"},
		{"未授权", apperrors.ErrUnauthorized, http.StatusUnauthorized, apperrors.ErrUnauthorized.Message},
		{"不存在", fmt.Errorf("repo: %w", apperrors.ErrNotFound), http.StatusNotFound, apperrors.ErrNotFound.Message},
		{"数据库错误", apperrors.Wrap(errors.New("deadlock"), "查询图书失败"), http.StatusInternalServerError, apperrors.ErrInternal.Message},
		{"普通错误", errors.New("boom"), http.StatusInternalServerError, apperrors.ErrInternal.Message},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, body := perform(t, gin.ReleaseMode, func(c *gin.Context) { Error(c, tt.err) })

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantMsg, body.Message)
			assert.Empty(t, body.Detail, "release模式不返回detail")
		})
	}
}

func TestError_DetailOutsideRelease(t *testing.T) {
	_, body := perform(t, gin.DebugMode, func(c *gin.Context) {
		Error(c, apperrors.Wrap(errors.New("deadlock"), "查询图书失败"))
	})

	assert.Equal(t, apperrors.ErrInternal.Message, body.Message)
	assert.Contains(t, body.Detail, "deadlock")
}

func TestError_RecordsGinError(t *testing.T) {
	var recorded int
	perform(t, gin.TestMode, func(c *gin.Context) {
		Error(c, errors.New("boom"))
		recorded = len(c.Errors)
	})
	assert.Equal(t, 1, recorded)
}

func TestValidationError(t *testing.T) {
	w, body := perform(t, gin.TestMode, func(c *gin.Context) {
		ValidationError(c, map[string][]string{"titulo": {"El título es requerido"}})
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperrors.ErrValidation.Message, body.Message)
	assert.Equal(t, []string{"El título es requerido"}, body.Errors["titulo"])
}

func TestPanic(t *testing.T) {
	w, body := perform(t, gin.ReleaseMode, func(c *gin.Context) { Panic(c, "nil map", "goroutine 1") })
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, body.StackTrace)

	_, body = perform(t, gin.DebugMode, func(c *gin.Context) { Panic(c, "nil map", "goroutine 1") })
	assert.Equal(t, "nil map", body.Detail)
	assert.Equal(t, "goroutine 1", body.StackTrace)
}

func TestCreated(t *testing.T) {
	w, _ := perform(t, gin.TestMode, func(c *gin.Context) {
		Created(c, "/api/Libros/3", gin.H{"id": 3})
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "/api/Libros/3", w.Header().Get("Location"))
}
