package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandonleon/carbsmart/internal/domain/dto"
)

func TestRecovery(t *testing.T) {
	tests := []struct {
		name        string
		language    string
		wantMessage string
	}{
		{"english", "", "An unexpected error occurred"},
		{"portuguese", "pt-BR", "Ocorreu um erro inesperado"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(RequestID(), Recovery())
			router.GET("/panic", func(*gin.Context) { panic("scale exploded") })

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/panic", nil)
			if tt.language != "" {
				req.Header.Set("Accept-Language", tt.language)
			}
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusInternalServerError, w.Code)
			var body dto.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, dto.ErrCodeInternal, body.Error)
			assert.Equal(t, tt.wantMessage, body.Message)
			assert.Equal(t, w.Header().Get(RequestIDHeader), body.RequestID)
		})
	}
}

func TestRecovery_NoPanic(t *testing.T) {
	router := gin.New()
	router.Use(Recovery())
	router.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}
