package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// incrWindow bumps the counter and starts the window on the first hit.
var incrWindow = redis.NewScript(`
local n = redis.call("INCR", KEYS[1])
if n == 1 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return n
`)

// Limiter is a fixed-window request counter backed by Redis.
type Limiter struct {
	client      redis.Cmdable
	maxRequests int
	window      time.Duration
}

func NewLimiter(client redis.Cmdable, maxRequests int, window time.Duration) *Limiter {
	return &Limiter{
		client:      client,
		maxRequests: maxRequests,
		window:      window,
	}
}

func getIPKey(ip, purpose string) string {
	return fmt.Sprintf("ratelimit:%s:ip:%s", purpose, ip)
}

// Allow counts one request from ip for purpose and reports whether it is
// within the limit. Incrementing and starting the window is one atomic
// script call.
func (l *Limiter) Allow(ctx context.Context, ip, purpose string) (bool, error) {
	n, err := incrWindow.Run(ctx, l.client, []string{getIPKey(ip, purpose)}, l.window.Milliseconds()).Int64()
	if err != nil {
		return false, fmt.Errorf("failed to record request: %w", err)
	}
	return n <= int64(l.maxRequests), nil
}

// Reset clears the counter for ip and purpose.
func (l *Limiter) Reset(ctx context.Context, ip, purpose string) error {
	if err := l.client.Del(ctx, getIPKey(ip, purpose)).Err(); err != nil {
		return fmt.Errorf("failed to reset rate limit: %w", err)
	}
	return nil
}
