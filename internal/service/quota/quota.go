// Package quota enforces the shared per-client analysis quota in Redis.
//
// Each client key owns a token bucket stored as a Redis hash and updated
// atomically by a Lua script, so every API replica sees the same budget.
package quota

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter decides whether a client may start another analysis.
type Limiter interface {
	Allow(ctx context.Context, key string) (allowed bool, retryAfter time.Duration, err error)
}

// BucketConfig describes one token bucket.
type BucketConfig struct {
	Capacity   int64
	RefillRate float64 // tokens per second
}

// NewBucketConfigFromPerHour spreads perHour tokens evenly over an hour.
func NewBucketConfigFromPerHour(perHour int) BucketConfig {
	if perHour <= 0 {
		return BucketConfig{}
	}
	return BucketConfig{
		Capacity:   int64(perHour),
		RefillRate: float64(perHour) / 3600.0,
	}
}

// RedisLimiter is a token-bucket Limiter backed by a Lua script.
type RedisLimiter struct {
	redis  *redis.Client
	bucket BucketConfig
	script *redis.Script
	prefix string
	now    func() time.Time
}

// NewRedisLimiter returns nil when rdb is nil; a nil *RedisLimiter allows
// everything.
func NewRedisLimiter(rdb *redis.Client, bucket BucketConfig) *RedisLimiter {
	if rdb == nil {
		return nil
	}
	return &RedisLimiter{
		redis:  rdb,
		bucket: bucket,
		script: redis.NewScript(luaTokenBucketScript),
		prefix: "quota:analysis:",
		now:    time.Now,
	}
}

// Redis truncates Lua numbers to integers on return, so retry_after is
// rounded up to whole seconds inside the script. The epsilons absorb float
// error from rates like 1/3600.
const luaTokenBucketScript = `
local key = KEYS[1]
local capacity = tonumber(ARGV[1])
local refill_rate = tonumber(ARGV[2])
local now = tonumber(ARGV[3])
local cost = tonumber(ARGV[4])

local tokens = capacity
local last_refill = now

local data = redis.call("HMGET", key, "tokens", "last_refill")
if data[1] then
  tokens = tonumber(data[1]) or capacity
end
if data[2] then
  last_refill = tonumber(data[2]) or now
end

local delta = now - last_refill
if delta < 0 then
  delta = 0
end

tokens = math.min(capacity, tokens + delta * refill_rate)

local allowed = 0
local retry_after = 0

if tokens + 1e-9 >= cost then
  tokens = math.max(0, tokens - cost)
  allowed = 1
else
  retry_after = math.ceil((cost - tokens) / refill_rate - 1e-6)
end

redis.call("HSET", key, "tokens", tostring(tokens), "last_refill", tostring(now))
redis.call("EXPIRE", key, math.ceil(capacity / refill_rate) + 1)

return { allowed, retry_after }
`

// Allow consumes one token for key. Redis failures fail open and are logged.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	if l == nil || l.redis == nil {
		return true, 0, nil
	}
	if l.bucket.Capacity <= 0 || l.bucket.RefillRate <= 0 {
		return true, 0, nil
	}

	nowSec := float64(l.now().UnixNano()) / 1e9
	res, err := l.script.Run(ctx, l.redis, []string{l.prefix + key}, l.bucket.Capacity, l.bucket.RefillRate, nowSec, 1).Result()
	if err != nil {
		slog.Error("redis quota script error", slog.String("key", key), slog.Any("error", err))
		return true, 0, err
	}

	vals, ok := res.([]interface{})
	if !ok || len(vals) < 2 {
		slog.Error("redis quota unexpected script result", slog.String("key", key), slog.Any("result", res))
		return true, 0, nil
	}

	allowed := toInt64(vals[0]) == 1
	retryAfter := time.Duration(toInt64(vals[1])) * time.Second
	return allowed, retryAfter, nil
}

// Ping checks Redis for readiness probes.
func (l *RedisLimiter) Ping(ctx context.Context) error {
	if l == nil || l.redis == nil {
		return nil
	}
	return l.redis.Ping(ctx).Err()
}

func toInt64(v interface{}) int64 {
	switch t := v.(type) {
	case int64:
		return t
	case int:
		return int64(t)
	case float64:
		if math.IsNaN(t) {
			return 0
		}
		return int64(t)
	default:
		return 0
	}
}
