package middleware

import (
	"hash/fnv"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/brandonleon/carbsmart/internal/domain/dto"
	"github.com/brandonleon/carbsmart/internal/i18n"
)

const defaultNumShards = 16

// window tracks the fixed window of one client.
type window struct {
	tokens int
	start  time.Time
}

type rateLimiterShard struct {
	mu      sync.Mutex
	clients map[string]*window
}

// RateLimiter is a fixed-window limiter sharded by client key to reduce
// lock contention.
type RateLimiter struct {
	shards    []*rateLimiterShard
	numShards int
	rate      int
	window    time.Duration
	now       func() time.Time
	stopCh    chan struct{}
	stopOnce  sync.Once
}

// NewRateLimiter creates a limiter allowing rate requests per window.
func NewRateLimiter(rate int, window time.Duration) *RateLimiter {
	return NewShardedRateLimiter(rate, window, defaultNumShards)
}

// NewShardedRateLimiter creates a limiter with a custom shard count.
func NewShardedRateLimiter(rate int, win time.Duration, numShards int) *RateLimiter {
	if numShards <= 0 {
		numShards = defaultNumShards
	}

	shards := make([]*rateLimiterShard, numShards)
	for i := range shards {
		shards[i] = &rateLimiterShard{clients: make(map[string]*window)}
	}

	rl := &RateLimiter{
		shards:    shards,
		numShards: numShards,
		rate:      rate,
		window:    win,
		now:       time.Now,
		stopCh:    make(chan struct{}),
	}
	go rl.cleanup()
	return rl
}

func (rl *RateLimiter) shard(key string) *rateLimiterShard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return rl.shards[h.Sum32()%uint32(rl.numShards)]
}

// allow consumes one token for key. It returns the tokens left and when
// the current window resets.
func (rl *RateLimiter) allow(key string) (bool, int, time.Time) {
	s := rl.shard(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	now := rl.now()
	w, ok := s.clients[key]
	if !ok || now.Sub(w.start) >= rl.window {
		w = &window{tokens: rl.rate, start: now}
		s.clients[key] = w
	}
	reset := w.start.Add(rl.window)
	if w.tokens <= 0 {
		return false, 0, reset
	}
	w.tokens--
	return true, w.tokens, reset
}

// RateLimit limits requests per client IP.
func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return rl.middleware(func(c *gin.Context) string { return "ip:" + c.ClientIP() })
}

// PrincipalRateLimit limits requests per authenticated caller, falling back
// to the client IP. It must run after Credentials.
func (rl *RateLimiter) PrincipalRateLimit() gin.HandlerFunc {
	return rl.middleware(func(c *gin.Context) string {
		if p := GetPrincipal(c); p != "" {
			return "principal:" + p
		}
		return "ip:" + c.ClientIP()
	})
}

func (rl *RateLimiter) middleware(key func(*gin.Context) string) gin.HandlerFunc {
	limit := strconv.Itoa(rl.rate)
	return func(c *gin.Context) {
		allowed, remaining, reset := rl.allow(key(c))

		c.Header("X-RateLimit-Limit", limit)
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(reset.Unix(), 10))

		if !allowed {
			wait := int(math.Ceil(reset.Sub(rl.now()).Seconds()))
			if wait < 1 {
				wait = 1
			}
			c.Header("Retry-After", strconv.Itoa(wait))
			message := i18n.GetTranslator().Translate(i18n.ErrKeyRateLimitExceeded, i18n.GetLocale(c))
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				dto.NewError(dto.ErrCodeRateLimit, message).WithRequestID(GetRequestID(c)))
			return
		}
		c.Next()
	}
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanupExpired()
		case <-rl.stopCh:
			return
		}
	}
}

// cleanupExpired drops clients whose window ended more than a window ago.
func (rl *RateLimiter) cleanupExpired() {
	now := rl.now()
	for _, s := range rl.shards {
		s.mu.Lock()
		for key, w := range s.clients {
			if now.Sub(w.start) > 2*rl.window {
				delete(s.clients, key)
			}
		}
		s.mu.Unlock()
	}
}

// Stop ends the cleanup goroutine. It is safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stopCh) })
}

// Stats returns the number of tracked clients, in total and per shard.
func (rl *RateLimiter) Stats() (total int, perShard []int) {
	perShard = make([]int, rl.numShards)
	for i, s := range rl.shards {
		s.mu.Lock()
		perShard[i] = len(s.clients)
		total += perShard[i]
		s.mu.Unlock()
	}
	return total, perShard
}
