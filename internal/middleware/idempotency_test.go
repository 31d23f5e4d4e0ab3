package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newIdempotentRouter(t *testing.T, status int) (*gin.Engine, *int) {
	t.Helper()
	idem := NewIdempotency(time.Minute)
	t.Cleanup(idem.Stop)

	calls := 0
	router := gin.New()
	router.Use(idem.Handler())
	handler := func(c *gin.Context) {
		calls++
		c.Header("Location", "/api/pans/7")
		c.JSON(status, gin.H{"call": calls})
	}
	router.POST("/api/pans", handler)
	router.GET("/api/pans", handler)
	return router, &calls
}

func doIdempotent(router *gin.Engine, method, key, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, "/api/pans", strings.NewReader(body))
	if key != "" {
		req.Header.Set(IdempotencyKeyHeader, key)
	}
	router.ServeHTTP(w, req)
	return w
}

func TestIdempotency_Replay(t *testing.T) {
	router, calls := newIdempotentRouter(t, http.StatusCreated)

	first := doIdempotent(router, http.MethodPost, "k1", `{"name":"a"}`)
	second := doIdempotent(router, http.MethodPost, "k1", `{"name":"a"}`)

	assert.Equal(t, 1, *calls)
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, "/api/pans/7", second.Header().Get("Location"))
	assert.Equal(t, "true", second.Header().Get(IdempotencyReplayedHeader))
	assert.Empty(t, first.Header().Get(IdempotencyReplayedHeader))
}

func TestIdempotency_ExecutesAgain(t *testing.T) {
	tests := []struct {
		name   string
		status int
		method string
		keys   [2]string
		bodies [2]string
	}{
		{"different body", http.StatusCreated, http.MethodPost, [2]string{"k", "k"}, [2]string{`{"a":1}`, `{"a":2}`}},
		{"different key", http.StatusCreated, http.MethodPost, [2]string{"k1", "k2"}, [2]string{"{}", "{}"}},
		{"no key", http.StatusCreated, http.MethodPost, [2]string{"", ""}, [2]string{"{}", "{}"}},
		{"failed response not stored", http.StatusUnprocessableEntity, http.MethodPost, [2]string{"k", "k"}, [2]string{"{}", "{}"}},
		{"safe method ignored", http.StatusOK, http.MethodGet, [2]string{"k", "k"}, [2]string{"", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, calls := newIdempotentRouter(t, tt.status)
			doIdempotent(router, tt.method, tt.keys[0], tt.bodies[0])
			w := doIdempotent(router, tt.method, tt.keys[1], tt.bodies[1])

			assert.Equal(t, 2, *calls)
			assert.Empty(t, w.Header().Get(IdempotencyReplayedHeader))
		})
	}
}

func TestIdempotencyCache_Expiry(t *testing.T) {
	cache := newIdempotencyCache(time.Minute)
	defer cache.Stop()

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	cache.Set("a", &cachedResponse{StatusCode: http.StatusCreated})
	_, ok := cache.Get("a")
	assert.True(t, ok)

	now = now.Add(2 * time.Minute)
	_, ok = cache.Get("a")
	assert.False(t, ok)

	cache.cleanup()
	assert.Zero(t, cache.Len())
}
