package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"coolrentals/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func protectedRouter(tokens utils.TokenStore) *gin.Engine {
	r := gin.New()
	r.Use(utils.ErrorHandler())
	r.GET("/admin/ping", AdminAuth(tokens), func(c *gin.Context) {
		claims, ok := AdminClaims(c)
		if !ok {
			c.String(http.StatusInternalServerError, "no claims")
			return
		}
		c.String(http.StatusOK, c.GetString(AdminIDKey)+"|"+claims.Email)
	})
	return r
}

func call(r http.Handler, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAdminAuthRejectsMissingOrBadTokens(t *testing.T) {
	r := protectedRouter(nil)

	w := call(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"Not authorized, no token"}`, w.Body.String())

	w = call(r, "Token abc")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = call(r, "Bearer not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"Not authorized, token failed"}`, w.Body.String())
}

func TestAdminAuthAdmitsValidTokenUntilRevoked(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	tokens := utils.NewTokenStore(client)
	r := protectedRouter(tokens)

	token, claims, err := utils.GenerateToken("admin-1", "owner@example.com", time.Hour)
	require.NoError(t, err)

	w := call(r, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "admin-1|owner@example.com", w.Body.String())

	require.NoError(t, tokens.Revoke(context.Background(), claims.TokenID, claims.ExpiresAt))
	w = call(r, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"Not authorized, token revoked"}`, w.Body.String())

	// Without the revocation store the gate fails closed.
	mr.Close()
	w = call(r, "Bearer "+token)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRateLimitPerClient(t *testing.T) {
	r := gin.New()
	r.Use(utils.ErrorHandler(), RateLimitMiddleware(2))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	hit := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Forwarded-For", ip+", 10.0.0.1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusNoContent, hit("203.0.113.5"))
	assert.Equal(t, http.StatusNoContent, hit("203.0.113.5"))
	assert.Equal(t, http.StatusTooManyRequests, hit("203.0.113.5"))
	assert.Equal(t, http.StatusNoContent, hit("203.0.113.9"))
}

func TestRateLimiterDropsIdleClients(t *testing.T) {
	clock := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	store := newRateLimiterStore(2)
	store.now = func() time.Time { return clock }
	store.lastSweep = clock

	first := store.getLimiter("203.0.113.5")
	store.getLimiter("203.0.113.9")
	require.Len(t, store.limiters, 2)

	clock = clock.Add(limiterIdleTTL / 2)
	assert.Same(t, first, store.getLimiter("203.0.113.5"))

	clock = clock.Add(limiterIdleTTL / 2)
	store.getLimiter("198.51.100.1")
	assert.Len(t, store.limiters, 2)
	assert.NotContains(t, store.limiters, "203.0.113.9")
	assert.Same(t, first, store.limiters["203.0.113.5"].limiter)

	clock = clock.Add(2 * limiterIdleTTL)
	store.getLimiter("198.51.100.2")
	assert.Len(t, store.limiters, 1)
	assert.Contains(t, store.limiters, "198.51.100.2")
}

func TestRequestLoggerTagsRequests(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	r := gin.New()
	r.Use(RequestLogger(zap.New(core)))
	r.GET("/", func(c *gin.Context) {
		_, ok := c.Get(LoggerKey)
		assert.True(t, ok)
		c.Status(http.StatusTeapot)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	req.Header.Set("X-Real-IP", "198.51.100.7")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "req-42", w.Header().Get(RequestIDHeader))
	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	fields := entries[0].ContextMap()
	assert.Equal(t, "req-42", fields["requestId"])
	assert.Equal(t, "198.51.100.7", fields["ip"])
	assert.EqualValues(t, http.StatusTeapot, fields["status"])
}
