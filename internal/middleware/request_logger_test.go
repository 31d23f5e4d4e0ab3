package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestLogger(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		attach    error
		wantLevel string
	}{
		{"ok", http.StatusOK, nil, "info"},
		{"client error", http.StatusNotFound, nil, "warn"},
		{"server error", http.StatusInternalServerError, errors.New("store down"), "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := &recordingSink{}
			router := gin.New()
			router.Use(RequestID(), RequestLogger(sink))
			router.GET("/api/pans", func(c *gin.Context) {
				if tt.attach != nil {
					_ = c.Error(tt.attach)
				}
				c.Status(tt.status)
			})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/pans?api_key=secret", nil)
			router.ServeHTTP(w, req)

			entries := sink.all()
			require.Len(t, entries, 1)
			e := entries[0]
			assert.Equal(t, tt.wantLevel, e.Level)
			assert.Equal(t, tt.status, e.StatusCode)
			assert.Equal(t, "/api/pans", e.Path, "query strings are not stored")
			assert.NotEmpty(t, e.RequestID)
			if tt.attach != nil {
				assert.Equal(t, tt.attach.Error(), e.Error)
			}
		})
	}
}

func TestRequestLogger_NilSink(t *testing.T) {
	router := gin.New()
	router.Use(RequestLogger(nil))
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRedactQuery(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/?api_key=secret&x=1", nil)

	got := redactQuery(c)
	assert.Contains(t, got, "api_key=REDACTED")
	assert.Contains(t, got, "x=1")
	assert.NotContains(t, got, "secret")
}
