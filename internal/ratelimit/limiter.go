package ratelimit

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	DefaultPrefix = "snipdeck:ratelimit:"
	DefaultLimit  = 10
	DefaultWindow = time.Minute
)

var errUnexpectedReply = errors.New("ratelimit: unexpected script reply")

// Limiter is a fixed-window counter in Redis. A nil Client allows everything,
// which is how the web server runs without Redis.
type Limiter struct {
	Client *redis.Client
	Prefix string
	Limit  int
	Window time.Duration
}

var allowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
if current > tonumber(ARGV[1]) then
  local ttl = redis.call("PTTL", KEYS[1])
  return {0, ttl}
end
local ttl = redis.call("PTTL", KEYS[1])
return {1, ttl}
`)

// Key joins the parts that identify a caller, e.g. action and client ip.
func Key(parts ...string) string {
	return strings.Join(parts, ":")
}

func (l *Limiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	if l == nil || l.Client == nil {
		return true, 0, nil
	}

	limit := l.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	window := l.Window
	if window <= 0 {
		window = DefaultWindow
	}
	prefix := l.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}

	res, err := allowScript.Run(ctx, l.Client, []string{prefix + key}, limit, window.Milliseconds()).Result()
	if err != nil {
		return false, 0, err
	}

	values, ok := res.([]any)
	if !ok || len(values) != 2 {
		return false, 0, errUnexpectedReply
	}

	allowed, _ := values[0].(int64)
	ttlMs, _ := values[1].(int64)
	if ttlMs < 0 {
		ttlMs = window.Milliseconds()
	}

	return allowed == 1, time.Duration(ttlMs) * time.Millisecond, nil
}
