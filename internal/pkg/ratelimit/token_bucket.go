package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Limiter 依key限流，key通常是client ip
type Limiter interface {
	Allow(ctx context.Context, key string) bool
}

type LimiterConfig struct {
	Capacity   int           // 桶子容量
	RefillRate time.Duration // 每補充一個token的間隔
}

func GetDefaultLimiterConfig() LimiterConfig {
	return LimiterConfig{
		Capacity:   10,
		RefillRate: 6 * time.Second,
	}
}

// TokenBucket 單一key的桶子
// 每次 Allow 時依經過時間補充，不需背景goroutine
type TokenBucket struct {
	LimiterConfig
	mu           sync.Mutex
	current      float64
	lastRefilled time.Time
	now          func() time.Time
}

func NewTokenBucket(config *LimiterConfig) *TokenBucket {
	return newTokenBucket(config, time.Now)
}

func newTokenBucket(config *LimiterConfig, now func() time.Time) *TokenBucket {
	t := &TokenBucket{now: now}
	if config != nil {
		t.LimiterConfig = *config
	} else {
		t.LimiterConfig = GetDefaultLimiterConfig()
	}
	if t.Capacity <= 0 {
		t.Capacity = 1
	}
	t.current = float64(t.Capacity)
	t.lastRefilled = now()
	return t
}

func (t *TokenBucket) refill(now time.Time) {
	if t.RefillRate <= 0 {
		t.current = float64(t.Capacity)
		t.lastRefilled = now
		return
	}
	elapsed := now.Sub(t.lastRefilled)
	if elapsed <= 0 {
		return
	}
	t.current += float64(elapsed) / float64(t.RefillRate)
	if t.current > float64(t.Capacity) {
		t.current = float64(t.Capacity)
	}
	t.lastRefilled = now
}

func (t *TokenBucket) Allow() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.refill(t.now())
	if t.current < 1 {
		return false
	}
	t.current--
	return true
}

// KeyedLimiter 每個key一個桶子，例如client ip
// 桶子只存在本機記憶體，多個instance共用限額請用 RedisLimiter
type KeyedLimiter struct {
	config    LimiterConfig
	mu        sync.Mutex
	buckets   map[string]*TokenBucket
	lastSweep time.Time
	now       func() time.Time
}

func NewKeyedLimiter(config LimiterConfig) *KeyedLimiter {
	return &KeyedLimiter{config: config, buckets: make(map[string]*TokenBucket), now: time.Now}
}

// idleTTL 閒置超過這段時間的桶子一定已補滿，刪掉等同新建
func (l *KeyedLimiter) idleTTL() time.Duration {
	capacity := l.config.Capacity
	if capacity <= 0 {
		capacity = 1
	}
	if l.config.RefillRate <= 0 {
		return time.Minute
	}
	return time.Duration(capacity) * l.config.RefillRate
}

func (l *KeyedLimiter) Allow(ctx context.Context, key string) bool {
	l.mu.Lock()
	now := l.now()
	if ttl := l.idleTTL(); now.Sub(l.lastSweep) >= ttl {
		l.sweep(now, ttl)
		l.lastSweep = now
	}
	b, ok := l.buckets[key]
	if !ok {
		b = newTokenBucket(&l.config, l.now)
		l.buckets[key] = b
	}
	l.mu.Unlock()
	return b.Allow()
}

// sweep 呼叫端需持有 l.mu
func (l *KeyedLimiter) sweep(now time.Time, ttl time.Duration) {
	for key, b := range l.buckets {
		b.mu.Lock()
		idle := now.Sub(b.lastRefilled) >= ttl
		b.mu.Unlock()
		if idle {
			delete(l.buckets, key)
		}
	}
}

// Len 目前追蹤中的key數
func (l *KeyedLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}
