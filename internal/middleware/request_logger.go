package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/brandonleon/carbsmart/internal/domain/model"
	"github.com/brandonleon/carbsmart/internal/logger"
)

// RequestLogger logs every request through zerolog and, when sink is not
// nil, queues a copy for the log store.
func RequestLogger(sink LogSink) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)
		statusCode := c.Writer.Status()
		path := c.Request.URL.Path
		if c.Request.URL.RawQuery != "" {
			path += "?" + redactQuery(c)
		}

		log := logger.Logger().With().
			Str("request_id", GetRequestID(c)).
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status_code", statusCode).
			Int64("duration_ms", latency.Milliseconds()).
			Str("ip", c.ClientIP()).
			Str("user_agent", c.Request.UserAgent()).
			Str("principal", GetPrincipal(c)).
			Logger()

		switch {
		case statusCode >= http.StatusInternalServerError:
			log.Error().Msg("HTTP request")
		case statusCode >= http.StatusBadRequest:
			log.Warn().Msg("HTTP request")
		default:
			log.Info().Msg("HTTP request")
		}

		if sink == nil {
			return
		}
		entry := &model.LogEntry{
			Timestamp:  time.Now().UTC(),
			Level:      getLogLevel(statusCode),
			Message:    "HTTP request",
			RequestID:  GetRequestID(c),
			Method:     c.Request.Method,
			Path:       c.Request.URL.Path,
			StatusCode: statusCode,
			Duration:   latency.Milliseconds(),
			IP:         c.ClientIP(),
			UserAgent:  c.Request.UserAgent(),
			Principal:  GetPrincipal(c),
		}
		if len(c.Errors) > 0 {
			entry.Error = c.Errors.Last().Error()
		}
		sink.Log(entry)
	}
}

// redactQuery hides API keys passed as query parameters.
func redactQuery(c *gin.Context) string {
	q := c.Request.URL.Query()
	if q.Has(APIKeyQuery) {
		q.Set(APIKeyQuery, "REDACTED")
	}
	return q.Encode()
}

func getLogLevel(statusCode int) string {
	switch {
	case statusCode >= http.StatusInternalServerError:
		return "error"
	case statusCode >= http.StatusBadRequest:
		return "warn"
	default:
		return "info"
	}
}
