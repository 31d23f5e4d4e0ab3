package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	// IdempotencyKeyHeader is the HTTP header name for idempotency key.
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyKeyTTL is the TTL for cached idempotency responses.
	IdempotencyKeyTTL = 5 * time.Minute
	// IdempotencyReplayedHeader marks a replayed response.
	IdempotencyReplayedHeader = "X-Idempotency-Replayed"

	maxIdempotentBody = 1 << 20
)

type cachedResponse struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	StoredAt   time.Time
}

// Idempotency replays the first successful response of a POST, PUT or
// PATCH carrying an Idempotency-Key. Keys are scoped to the caller, method,
// path and body, so reusing a key with a different payload executes again.
type Idempotency struct {
	cache *idempotencyCache
}

// NewIdempotency creates the middleware state. Call Stop on shutdown.
func NewIdempotency(ttl time.Duration) *Idempotency {
	if ttl <= 0 {
		ttl = IdempotencyKeyTTL
	}
	return &Idempotency{cache: newIdempotencyCache(ttl)}
}

// Stop ends the cache cleanup goroutine.
func (i *Idempotency) Stop() {
	i.cache.Stop()
}

// Handler returns the gin middleware.
func (i *Idempotency) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
		default:
			c.Next()
			return
		}

		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}

		cacheKey, ok := idempotencyCacheKey(key, c)
		if !ok {
			c.Next()
			return
		}

		if cached, ok := i.cache.Get(cacheKey); ok {
			for k, v := range cached.Header {
				c.Writer.Header()[k] = v
			}
			c.Header(IdempotencyReplayedHeader, "true")
			c.Data(cached.StatusCode, cached.Header.Get("Content-Type"), cached.Body)
			c.Abort()
			return
		}

		writer := &captureWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = writer
		c.Next()

		status := writer.Status()
		if status >= 200 && status < 300 {
			i.cache.Set(cacheKey, &cachedResponse{
				StatusCode: status,
				Header:     replayableHeaders(writer.Header()),
				Body:       writer.body.Bytes(),
			})
		}
	}
}

// idempotencyCacheKey hashes the key with the request identity. Bodies
// larger than 1 MiB are not eligible.
func idempotencyCacheKey(key string, c *gin.Context) (string, bool) {
	h := sha256.New()
	for _, part := range []string{key, GetPrincipal(c), c.Request.Method, c.Request.URL.Path} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}

	if c.Request.Body != nil {
		orig := c.Request.Body
		body, err := io.ReadAll(io.LimitReader(orig, maxIdempotentBody+1))
		c.Request.Body = readCloser{io.MultiReader(bytes.NewReader(body), orig), orig}
		if err != nil || len(body) > maxIdempotentBody {
			return "", false
		}
		h.Write(body)
	}
	return hex.EncodeToString(h.Sum(nil)), true
}

func replayableHeaders(src http.Header) http.Header {
	dst := make(http.Header)
	for _, k := range []string{"Content-Type", "Location"} {
		if v := src.Values(k); len(v) > 0 {
			dst[k] = append([]string(nil), v...)
		}
	}
	return dst
}

type captureWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *captureWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

type readCloser struct {
	io.Reader
	io.Closer
}
