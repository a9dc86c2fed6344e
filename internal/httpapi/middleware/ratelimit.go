package middleware

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/bengobox/starter-service/internal/httpapi"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RateLimiter enforces fixed-window request budgets stored in Redis, so the
// budget is shared by every replica pointing at the same instance.
type RateLimiter struct {
	client    redis.UniversalClient
	namespace string
	logger    *zap.Logger
	now       func() time.Time
}

// NewRateLimiter creates a limiter whose keys live under namespace.
func NewRateLimiter(client redis.UniversalClient, namespace string, logger *zap.Logger) *RateLimiter {
	return &RateLimiter{client: client, namespace: namespace, logger: logger, now: time.Now}
}

// Limit allows limit requests per window for each key produced by keyFn.
// Redis failures let the request through.
func (l *RateLimiter) Limit(name string, limit int, window time.Duration, keyFn func(*http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			now := l.now()
			windowStart := now.Truncate(window)
			key := fmt.Sprintf("%s:ratelimit:%s:%s:%d", l.namespace, name, keyFn(r), windowStart.Unix())

			count, err := l.increment(r.Context(), key, window)
			if err != nil {
				l.logger.Warn("rate limiter unavailable", zap.String("limiter", name), zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}

			remaining := limit - int(count)
			if remaining < 0 {
				remaining = 0
			}
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))

			if count > int64(limit) {
				retryAfter := int(math.Ceil(windowStart.Add(window).Sub(now).Seconds()))
				if retryAfter < 1 {
					retryAfter = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				httpapi.Error(w, http.StatusTooManyRequests, "rate_limited", "too many requests", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (l *RateLimiter) increment(ctx context.Context, key string, window time.Duration) (int64, error) {
	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

// ByClientIP keys requests by caller address.
func ByClientIP(r *http.Request) string {
	return httpapi.ClientIP(r)
}
