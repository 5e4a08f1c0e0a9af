package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// tokens 與 last_refill(ms) 存在同一個hash
var tokenBucketScript = redis.NewScript(`
local key = KEYS[1]
local capacity = tonumber(ARGV[1])
local refill_ms = tonumber(ARGV[2])
local now = tonumber(ARGV[3])
local ttl = tonumber(ARGV[4])

local bucket = redis.call('HMGET', key, 'tokens', 'last_refill')
local tokens = tonumber(bucket[1])
local last = tonumber(bucket[2])
if tokens == nil then
	tokens = capacity
	last = now
end

if now > last and refill_ms > 0 then
	tokens = math.min(capacity, tokens + (now - last) / refill_ms)
	last = now
end

local allowed = 0
if tokens >= 1 then
	tokens = tokens - 1
	allowed = 1
end

redis.call('HSET', key, 'tokens', tostring(tokens), 'last_refill', last)
redis.call('PEXPIRE', key, ttl)
return allowed
`)

// RedisLimiter 多個instance共用的token bucket
// redis 失敗時拒絕請求
type RedisLimiter struct {
	LimiterConfig
	client redis.Scripter
	prefix string
	now    func() time.Time
	logger *zerolog.Logger
}

func NewRedisLimiter(client redis.Scripter, prefix string, config LimiterConfig, logger *zerolog.Logger) *RedisLimiter {
	if client == nil {
		panic("redis limiter client can't be nil")
	}
	if config.Capacity <= 0 {
		config.Capacity = 1
	}
	if logger == nil {
		logger = &log.Logger
	}
	return &RedisLimiter{LimiterConfig: config, client: client, prefix: prefix, now: time.Now, logger: logger}
}

func (r *RedisLimiter) key(key string) string {
	return fmt.Sprintf("ratelimit:%s:%s", r.prefix, key)
}

func (r *RedisLimiter) Allow(ctx context.Context, key string) bool {
	refillMs := r.RefillRate.Milliseconds()
	// 桶子補滿之後就可以過期
	ttl := int64(r.Capacity)*refillMs + time.Second.Milliseconds()

	res, err := tokenBucketScript.Run(ctx, r.client, []string{r.key(key)},
		r.Capacity, refillMs, r.now().UnixMilli(), ttl).Int64()
	if err != nil {
		r.logger.Error().Err(err).Str("key", key).Msg("rate limit script failed")
		return false
	}
	return res == 1
}
