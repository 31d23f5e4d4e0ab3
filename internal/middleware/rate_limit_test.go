package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.t
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.t = f.t.Add(d)
	f.mu.Unlock()
}

func newLimiter(t *testing.T, rate int, win time.Duration) (*RateLimiter, *fakeClock) {
	t.Helper()
	rl := NewShardedRateLimiter(rate, win, 4)
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	rl.now = clock.Now
	t.Cleanup(rl.Stop)
	return rl, clock
}

func TestNewShardedRateLimiter_Shards(t *testing.T) {
	tests := []struct {
		name      string
		numShards int
		want      int
	}{
		{"default when zero", 0, defaultNumShards},
		{"default when negative", -1, defaultNumShards},
		{"custom", 8, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rl := NewShardedRateLimiter(10, time.Minute, tt.numShards)
			defer rl.Stop()
			assert.Len(t, rl.shards, tt.want)
		})
	}
}

func TestRateLimiter_Allow(t *testing.T) {
	rl, clock := newLimiter(t, 2, time.Minute)

	ok, remaining, _ := rl.allow("a")
	assert.True(t, ok)
	assert.Equal(t, 1, remaining)

	ok, remaining, _ = rl.allow("a")
	assert.True(t, ok)
	assert.Equal(t, 0, remaining)

	ok, _, _ = rl.allow("a")
	assert.False(t, ok)

	ok, _, _ = rl.allow("b")
	assert.True(t, ok, "clients are limited independently")

	clock.Advance(time.Minute)
	ok, remaining, _ = rl.allow("a")
	assert.True(t, ok, "a new window refills the bucket")
	assert.Equal(t, 1, remaining)
}

func TestRateLimiter_Middleware(t *testing.T) {
	rl, clock := newLimiter(t, 1, 30*time.Second)

	router := gin.New()
	router.Use(rl.RateLimit())
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	do := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		router.ServeHTTP(w, req)
		return w
	}

	w := do()
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, strconv.FormatInt(clock.Now().Add(30*time.Second).Unix(), 10), w.Header().Get("X-RateLimit-Reset"))

	clock.Advance(10 * time.Second)
	w = do()
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "20", w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "rate_limit_exceeded")
}

func TestRateLimiter_PrincipalKey(t *testing.T) {
	rl, _ := newLimiter(t, 1, time.Minute)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(string(PrincipalKey), c.GetHeader("X-Test-Principal"))
		c.Next()
	})
	router.Use(rl.PrincipalRateLimit())
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	do := func(principal string) int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Test-Principal", principal)
		router.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, do("kitchen"))
	assert.Equal(t, http.StatusOK, do("pantry"), "same IP, different principal")
	assert.Equal(t, http.StatusTooManyRequests, do("kitchen"))
}

func TestRateLimiter_CleanupAndStats(t *testing.T) {
	rl, clock := newLimiter(t, 5, time.Minute)
	rl.allow("a")
	rl.allow("b")

	total, perShard := rl.Stats()
	assert.Equal(t, 2, total)
	assert.Len(t, perShard, 4)

	clock.Advance(3 * time.Minute)
	rl.cleanupExpired()
	total, _ = rl.Stats()
	assert.Zero(t, total)

	rl.Stop()
	rl.Stop()
}
