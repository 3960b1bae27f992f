package router

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	applibro "github.com/xiebiao/libraryapi/internal/application/libro"
	"github.com/xiebiao/libraryapi/internal/infrastructure/config"
	"github.com/xiebiao/libraryapi/internal/infrastructure/persistence/memory"
	"github.com/xiebiao/libraryapi/internal/infrastructure/persistence/sqlstore"
	"github.com/xiebiao/libraryapi/internal/interface/http/handler"
	"github.com/xiebiao/libraryapi/internal/interface/http/middleware"
)

func newTestRouter(t *testing.T, mode string, rateLimit config.RateLimitConfig) *gin.Engine {
	t.Helper()

	db, err := sqlstore.NewDB(config.DatabaseConfig{
		Driver:       "sqlite",
		Path:         fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_")),
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		AutoMigrate:  true,
	}, mode, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	cache := memory.NewPageCache(memory.PageCacheOptions{
		Capacity:           100,
		NumShards:          2,
		TTL:                5 * time.Minute,
		EvictionPercentage: 10,
	})
	service := applibro.NewService(sqlstore.NewLibroRepository(db), cache, nil, zap.NewNop())

	var limiter *middleware.RateLimiter
	if rateLimit.Enabled {
		limiter = middleware.NewRateLimiter(rateLimit.RPS, rateLimit.Burst)
	}

	r, err := New(Options{
		Server: config.ServerConfig{Mode: mode},
		CORS: config.CORSConfig{
			Enabled:      true,
			AllowOrigins: []string{"http://localhost:3000"},
			AllowMethods: []string{"GET", "POST", "OPTIONS"},
			MaxAge:       time.Hour,
		},
		RateLimit: rateLimit,
		Libros:    handler.NewLibroHandler(service),
		Limiter:   limiter,
		Logger:    zap.NewNop(),
	})
	require.NoError(t, err)
	return r
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestRouter_Ping(t *testing.T) {
	r := newTestRouter(t, gin.TestMode, config.RateLimitConfig{})

	w := get(r, "/ping")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "pong")
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
}

func TestRouter_LibrosRoutes(t *testing.T) {
	r := newTestRouter(t, gin.TestMode, config.RateLimitConfig{})

	for _, path := range []string{"/api/Libros", "/api/libros"} {
		w := get(r, path+"?pageSize=5")
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.Contains(t, w.Body.String(), `"pageSize":5`)
	}

	assert.Equal(t, http.StatusNotFound, get(r, "/api/Libros/1").Code)
}

func TestRouter_CreateThenFetch(t *testing.T) {
	r := newTestRouter(t, gin.TestMode, config.RateLimitConfig{})

	body := `{"titulo":"Ficciones","autor":"Jorge Luis Borges","descripcion":"Cuentos","genero":"Ficción","fechaPublicacion":"1944-12-31"}`
	req := httptest.NewRequest(http.MethodPost, "/api/Libros", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	location := w.Header().Get("Location")
	require.NotEmpty(t, location)
	fetched := get(r, location)
	assert.Equal(t, http.StatusOK, fetched.Code)
	assert.Contains(t, fetched.Body.String(), `"fechaPublicacion":"1944-12-31"`)
}

func TestRouter_Preflight(t *testing.T) {
	r := newTestRouter(t, gin.TestMode, config.RateLimitConfig{})

	req := httptest.NewRequest(http.MethodOptions, "/api/Libros", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "3600", w.Header().Get("Access-Control-Max-Age"))
}

func TestRouter_MetricsEndpoint(t *testing.T) {
	r := newTestRouter(t, gin.TestMode, config.RateLimitConfig{})
	get(r, "/api/Libros")

	w := get(r, "/metrics")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
	assert.Contains(t, w.Body.String(), "libros_cache_lookups_total")
}

func TestRouter_NoRoute(t *testing.T) {
	r := newTestRouter(t, gin.TestMode, config.RateLimitConfig{})

	w := get(r, "/api/Autores")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "message")
}

func TestRouter_SwaggerOnlyOutsideRelease(t *testing.T) {
	debug := newTestRouter(t, gin.TestMode, config.RateLimitConfig{})
	assert.NotEqual(t, http.StatusNotFound, get(debug, "/swagger/index.html").Code)

	t.Run("release", func(t *testing.T) {
		defer gin.SetMode(gin.TestMode)
		release := newTestRouter(t, gin.ReleaseMode, config.RateLimitConfig{})
		assert.Equal(t, http.StatusNotFound, get(release, "/swagger/index.html").Code)
	})
}

func TestRouter_RateLimitOnlyOnAPI(t *testing.T) {
	r := newTestRouter(t, gin.TestMode, config.RateLimitConfig{Enabled: true, RPS: 0.001, Burst: 1})

	assert.Equal(t, http.StatusOK, get(r, "/api/Libros").Code)
	assert.Equal(t, http.StatusTooManyRequests, get(r, "/api/Libros").Code)
	assert.Equal(t, http.StatusOK, get(r, "/ping").Code, "健康检查不限流")
}
