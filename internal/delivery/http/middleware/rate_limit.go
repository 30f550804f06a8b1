package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"jobboard-backend/internal/delivery/http/response"
	"jobboard-backend/internal/domain"
	"jobboard-backend/pkg/logger"
	"jobboard-backend/pkg/redis"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
)

// RateLimitConfig allows Limit requests per Window for each KeyFunc value.
type RateLimitConfig struct {
	Limit     int
	Window    time.Duration
	KeyFunc   func(*gin.Context) string
	KeyPrefix string
	// FailClosed rejects requests when Redis errors instead of counting in memory
	FailClosed bool
}

// fixedWindowScript increments KEYS[1], starting its TTL on the first hit.
// Returns {count, ttl_seconds}.
var fixedWindowScript = goredis.NewScript(`
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
return {count, redis.call('TTL', KEYS[1])}
`)

type window struct {
	count   int
	resetAt time.Time
}

// memoryCounter is the per-process fallback used while Redis is down.
type memoryCounter struct {
	mu        sync.Mutex
	windows   map[string]*window
	lastSweep time.Time
}

var fallbackCounter = &memoryCounter{windows: make(map[string]*window)}

func (m *memoryCounter) hit(key string, span time.Duration, now time.Time) (int, time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if now.Sub(m.lastSweep) > 5*time.Minute {
		for k, w := range m.windows {
			if now.After(w.resetAt) {
				delete(m.windows, k)
			}
		}
		m.lastSweep = now
	}

	w, ok := m.windows[key]
	if !ok || now.After(w.resetAt) {
		w = &window{resetAt: now.Add(span)}
		m.windows[key] = w
	}
	w.count++
	return w.count, w.resetAt
}

func redisHit(ctx context.Context, client *goredis.Client, key string, span time.Duration) (int, time.Time, error) {
	seconds := int(span / time.Second)
	if seconds < 1 {
		seconds = 1
	}
	vals, err := fixedWindowScript.Run(ctx, client, []string{key}, seconds).Int64Slice()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("rate limit script: %w", err)
	}
	if len(vals) != 2 {
		return 0, time.Time{}, fmt.Errorf("rate limit script returned %d values", len(vals))
	}
	return int(vals[0]), time.Now().Add(time.Duration(vals[1]) * time.Second), nil
}

// GlobalRateLimitConfig limits every route per client address
func GlobalRateLimitConfig(limit int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{
		Limit:      limit,
		Window:     window,
		KeyPrefix:  "rl:ip:",
		FailClosed: false, // Fail open by default for availability
		KeyFunc:    ClientAddress,
	}
}

// WriteRateLimitConfig is the stricter budget for public writes (contact
// form, auth sync) where Redis trouble should reject rather than pass.
func WriteRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		Limit:      10,
		Window:     time.Minute,
		KeyPrefix:  "rl:write:",
		FailClosed: true,
		KeyFunc:    ClientAddress,
	}
}

// UploadRateLimitConfig returns config for file upload endpoints
func UploadRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		Limit:      10,
		Window:     time.Minute,
		KeyPrefix:  "rl:upload:",
		FailClosed: false,
		KeyFunc: func(c *gin.Context) string {
			if uid := c.GetString(string(domain.KeyUserID)); uid != "" {
				return uid
			}
			return ClientAddress(c)
		},
	}
}

// RateLimitMiddleware counts requests per key in fixed windows, in Redis when
// it is reachable and in process memory otherwise. FailClosed configs answer
// 503 instead of falling back.
func RateLimitMiddleware(config RateLimitConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := config.KeyPrefix + config.KeyFunc(c)

		count, resetAt, err := countHit(c.Request.Context(), key, config)
		if err != nil {
			logger.Log.Error("Rate limit store unavailable", "path", c.FullPath(), "error", err)
			response.Error(c, http.StatusServiceUnavailable, "Service temporarily unavailable. Please try again.", nil)
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(config.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(max(config.Limit-count, 0)))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(resetAt.Unix(), 10))

		if count > config.Limit {
			c.Header("Retry-After", strconv.Itoa(max(int(time.Until(resetAt).Seconds()), 1)))
			logger.Log.Warn("Rate limit triggered",
				"key", key,
				"path", c.FullPath(),
				"request_id", c.GetString(string(domain.KeyRequestID)),
			)
			response.Error(c, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}

func countHit(ctx context.Context, key string, config RateLimitConfig) (int, time.Time, error) {
	if client := redis.Client(); client != nil {
		count, resetAt, err := redisHit(ctx, client, key, config.Window)
		if err == nil {
			return count, resetAt, nil
		}
		if config.FailClosed {
			return 0, time.Time{}, err
		}
		logger.Log.Warn("Rate limit falling back to memory", "error", err)
	}
	count, resetAt := fallbackCounter.hit(key, config.Window, time.Now())
	return count, resetAt, nil
}
