// AngelaMos | 2026
// ratelimit_test.go

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	redis_rate "github.com/go-redis/redis_rate/v10"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return rdb
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimiter_BlocksAfterBurst(t *testing.T) {
	rl := NewRateLimiter(newTestRedis(t), RateLimitConfig{
		Limit: PerMinute(2, 2),
	})
	h := rl.Handler(okHandler())

	codes := make([]int, 0, 3)
	for range 3 {
		req := httptest.NewRequest(http.MethodPost, "/mpesa/stkpush", nil)
		req.RemoteAddr = "10.0.0.1:5000"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)

		if rec.Code == http.StatusTooManyRequests {
			assert.NotEmpty(t, rec.Header().Get("Retry-After"))
		}
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRateLimiter_KeysAreIndependent(t *testing.T) {
	rl := NewRateLimiter(newTestRedis(t), RateLimitConfig{
		Limit: PerMinute(1, 1),
	})
	h := rl.Handler(okHandler())

	for _, addr := range []string{"10.0.0.1:1", "10.0.0.2:1"} {
		req := httptest.NewRequest(http.MethodGet, "/rooms", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestRateLimiter_FallsBackWhenRedisIsDown(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = rdb.Close() })
	mr.Close()

	var limited int
	rl := NewRateLimiter(rdb, RateLimitConfig{
		Limit: PerMinute(1, 1),
		OnLimited: func(w http.ResponseWriter, _ *http.Request, res *redis_rate.Result) {
			limited++
			WriteRateLimitExceeded(w, res)
		},
	})
	h := rl.Handler(okHandler())

	first := httptest.NewRecorder()
	h.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/", nil))
	second := httptest.NewRecorder()
	h.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, 1, limited)
}

func TestRateLimiter_NamespacedKey(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/rooms", nil)
	req.RemoteAddr = "10.0.0.9:4000"

	global := NewRateLimiter(nil, RateLimitConfig{Namespace: "apartment:global"})
	bare := NewRateLimiter(nil, RateLimitConfig{})

	assert.Equal(t, "apartment:global:ratelimit:ip:10.0.0.9", global.key(req))
	assert.Equal(t, "ratelimit:ip:10.0.0.9", bare.key(req))
}

func TestKeyFuncs(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/tenants/15/balance", nil)
	req.RemoteAddr = "192.168.1.9:4411"
	assert.Equal(t, "ratelimit:ip:192.168.1.9", KeyByIP(req))

	req.Header.Set("X-Forwarded-For", "1.1.1.1, 2.2.2.2")
	assert.Equal(t, "ratelimit:ip:2.2.2.2", KeyByIP(req))

	authed := req.WithContext(WithClaims(req.Context(), &AccessTokenClaims{UserID: 4, Role: RoleManager}))
	assert.Equal(t, "ratelimit:user:4", KeyByUser(authed))
	assert.Equal(t, "ratelimit:user:4:endpoint:/tenants/{id}/balance", KeyByUserAndEndpoint(authed))
}

func TestPerWindowDefaultsToMinute(t *testing.T) {
	l := PerWindow(10, 3, 0)
	require.Equal(t, 10, l.Rate)
	assert.Equal(t, 3, l.Burst)
	assert.Equal(t, PerMinute(10, 3).Period, l.Period)
}
