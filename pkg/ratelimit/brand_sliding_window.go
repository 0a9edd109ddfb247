// Package ratelimit provides a Redis-backed request limiter shared by every
// API instance.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"brand_server/pkg/logger"
)

// slidingWindow keeps one sorted set per key, scored by request time.
// It returns 1 when admitted, otherwise the negated wait in milliseconds.
var slidingWindow = redis.NewScript(`
	local key = KEYS[1]
	local now = tonumber(ARGV[1])
	local window_start = tonumber(ARGV[2])
	local max_requests = tonumber(ARGV[3])
	local window_ms = tonumber(ARGV[4])

	redis.call('ZREMRANGEBYSCORE', key, '-inf', window_start)

	local count = redis.call('ZCARD', key)
	if count < max_requests then
		redis.call('ZADD', key, now, now .. '-' .. math.random())
		redis.call('PEXPIRE', key, window_ms * 2)
		return 1
	end

	local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
	if #oldest > 0 then
		return -(oldest[2] + window_ms - now)
	end
	return 0
`)

// SlidingWindowLimiter admits at most limit requests per key within any
// window-long interval.
type SlidingWindowLimiter struct {
	redis  *redis.Client
	limit  int
	window time.Duration
	prefix string
}

// NewSlidingWindowLimiter creates a limiter. A nil client admits everything.
func NewSlidingWindowLimiter(redisClient *redis.Client, limit int, window time.Duration) *SlidingWindowLimiter {
	return &SlidingWindowLimiter{
		redis:  redisClient,
		limit:  limit,
		window: window,
		prefix: "brand:ratelimit:",
	}
}

// Limit is the number of requests admitted per window.
func (l *SlidingWindowLimiter) Limit() int { return l.limit }

// Allow records one request for key. When it is rejected the returned
// duration is how long until the oldest request leaves the window.
// Redis failures admit the request.
func (l *SlidingWindowLimiter) Allow(ctx context.Context, key string) (bool, time.Duration) {
	if l.redis == nil || l.limit <= 0 {
		return true, 0
	}

	now := time.Now()
	result, err := slidingWindow.Run(ctx, l.redis, []string{l.prefix + key},
		now.UnixMilli(),
		now.Add(-l.window).UnixMilli(),
		l.limit,
		l.window.Milliseconds(),
	).Int64()
	if err != nil {
		logger.WithContext(ctx).WithError(err).Warn("[RateLimit] redis unavailable, admitting %s", key)
		return true, 0
	}

	switch {
	case result == 1:
		return true, 0
	case result < 0:
		return false, time.Duration(-result) * time.Millisecond
	default:
		return false, l.window
	}
}

func (l *SlidingWindowLimiter) String() string {
	return fmt.Sprintf("sliding window %d/%s", l.limit, l.window)
}
