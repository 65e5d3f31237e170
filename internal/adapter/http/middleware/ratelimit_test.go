package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"strike-connect/internal/adapter/http/middleware"
	redisStore "strike-connect/internal/adapter/storage/redis"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func setupRateLimitRouter(store middleware.RateLimitStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	rule := middleware.RateLimitRule{Limit: 3, Window: time.Minute}
	r.POST("/login", middleware.RateLimiter(store, "login", rule, zerolog.Nop()), func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	return r
}

func newRedisRateLimitStore(t *testing.T) *redisStore.RateLimitStore {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return redisStore.NewRateLimitStore(client)
}

func doLogin(router *gin.Engine, remoteAddr string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequestWithContext(context.Background(), http.MethodPost, "/login", nil)
	req.RemoteAddr = remoteAddr
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimiter_AllowsWithinLimit(t *testing.T) {
	router := setupRateLimitRouter(newRedisRateLimitStore(t))

	for i := 0; i < 3; i++ {
		w := doLogin(router, "10.0.0.1:5000")
		assert.Equal(t, 200, w.Code, "request %d should succeed", i+1)
		assert.Equal(t, "3", w.Header().Get("X-RateLimit-Limit"))
		assert.NotEmpty(t, w.Header().Get("X-RateLimit-Remaining"))
		assert.NotEmpty(t, w.Header().Get("X-RateLimit-Reset"))
	}
}

func TestRateLimiter_BlocksOverLimit(t *testing.T) {
	router := setupRateLimitRouter(newRedisRateLimitStore(t))

	for i := 0; i < 3; i++ {
		assert.Equal(t, 200, doLogin(router, "10.0.0.1:5000").Code)
	}

	w := doLogin(router, "10.0.0.1:5000")
	assert.Equal(t, 429, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "RATE_001")
}

func TestRateLimiter_KeyedByClientIP(t *testing.T) {
	router := setupRateLimitRouter(newRedisRateLimitStore(t))

	for i := 0; i < 3; i++ {
		assert.Equal(t, 200, doLogin(router, "10.0.0.1:5000").Code)
	}
	assert.Equal(t, 200, doLogin(router, "10.0.0.2:5000").Code)
}

type failingStore struct{}

func (failingStore) Allow(context.Context, string, int64, time.Duration) (*redisStore.RateLimitResult, error) {
	return nil, errors.New("redis down")
}

func TestRateLimiter_DegradedMode(t *testing.T) {
	router := setupRateLimitRouter(failingStore{})

	for i := 0; i < 5; i++ {
		w := doLogin(router, "10.0.0.1:5000")
		assert.Equal(t, 200, w.Code)
		assert.Empty(t, w.Header().Get("X-RateLimit-Limit"))
	}
}

func TestDefaultRateLimitRules(t *testing.T) {
	rules := middleware.DefaultRateLimitRules()
	assert.Equal(t, int64(10), rules["login"].Limit)
	assert.Equal(t, int64(6), rules["test_acl"].Limit)
	assert.Equal(t, int64(120), rules["api"].Limit)
}
