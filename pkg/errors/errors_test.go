package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code int
		want int
	}{
		{ErrCodeInvalidParams, http.StatusBadRequest},
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeBindError, http.StatusBadRequest},
		{ErrCodeUnauthorized, http.StatusUnauthorized},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeLibroNotFound, http.StatusNotFound},
		{ErrCodeInternal, http.StatusInternalServerError},
		{ErrCodeDatabaseError, http.StatusInternalServerError},
		{12345, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.code))
		})
	}
}

func TestGetAppError(t *testing.T) {
	t.Run("AppError原样返回", func(t *testing.T) {
		wrapped := fmt.Errorf("handler: %w", ErrNotFound)
		got := GetAppError(wrapped)
		assert.Same(t, ErrNotFound, got)
	})

	t.Run("普通错误包装为Internal", func(t *testing.T) {
		raw := errors.New("connection refused")
		got := GetAppError(raw)
		assert.Equal(t, ErrCodeInternal, got.Code)
		assert.ErrorIs(t, got, raw)
	})
}

func TestAppError_Is(t *testing.T) {
	err := Wrap(errors.New("boom"), "查询失败")
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.True(t, errors.Is(fmt.Errorf("ctx: %w", ErrNotFound), ErrNotFound))
	assert.Contains(t, err.Error(), "boom")
}
