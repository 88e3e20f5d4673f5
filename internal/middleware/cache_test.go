package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/showdeck/showdeck/internal/config"
)

func cacheTestServer(t *testing.T) (*echo.Echo, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	cfg := config.CacheConfig{
		Enabled:     true,
		Methods:     map[string]bool{"GET": true},
		TTL:         time.Minute,
		KeyStrategy: "route_query",
		Prefix:      "cache",
	}
	e := echo.New()
	e.GET("/s/:code", func(c echo.Context) error {
		return c.String(http.StatusOK, c.Param("code"))
	}, NewRedisCache(cfg, rdb))
	return e, rdb
}

func get(e *echo.Echo, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestRedisCacheKeysPerPathNotPerRoute(t *testing.T) {
	e, _ := cacheTestServer(t)

	rec := get(e, "/s/aaa")
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	assert.Equal(t, "aaa", rec.Body.String())

	// a different code on the same route must not be served from the first
	// code's cache entry
	rec = get(e, "/s/bbb")
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	assert.Equal(t, "bbb", rec.Body.String())

	rec = get(e, "/s/aaa")
	assert.Equal(t, "HIT", rec.Header().Get("X-Cache"))
	assert.Equal(t, "aaa", rec.Body.String())
}
