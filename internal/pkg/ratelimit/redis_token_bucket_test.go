package ratelimit

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type RedisLimiterTestSuite struct {
	suite.Suite
	client *redis.Client
	ctx    context.Context
}

func (s *RedisLimiterTestSuite) SetupSuite() {
	addr := os.Getenv("POS_TEST_REDIS")
	if addr == "" {
		s.T().Skip("POS_TEST_REDIS not set")
	}
	s.client = redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   1, // 用測試DB
	})
	s.ctx = context.Background()
	require.NoError(s.T(), s.client.Ping(s.ctx).Err(), "Redis連線失敗")
}

func (s *RedisLimiterTestSuite) TearDownSuite() {
	if s.client != nil {
		s.client.Close()
	}
}

func (s *RedisLimiterTestSuite) SetupTest() {
	s.client.FlushDB(s.ctx)
}

func TestRedisLimiterSuite(t *testing.T) {
	suite.Run(t, new(RedisLimiterTestSuite))
}

func (s *RedisLimiterTestSuite) newLimiter(capacity int, refill time.Duration) (*RedisLimiter, *fakeClock) {
	logger := zerolog.Nop()
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	l := NewRedisLimiter(s.client, "test", LimiterConfig{Capacity: capacity, RefillRate: refill}, &logger)
	l.now = clock.Now
	return l, clock
}

func (s *RedisLimiterTestSuite) TestBasicRateLimit() {
	l, _ := s.newLimiter(5, time.Second)

	for i := 0; i < 5; i++ {
		require.True(s.T(), l.Allow(s.ctx, "10.0.0.1"), "應該允許第 %d 次請求", i+1)
	}
	require.False(s.T(), l.Allow(s.ctx, "10.0.0.1"), "第6次應該被拒絕")
	require.True(s.T(), l.Allow(s.ctx, "10.0.0.2"), "不同key互不影響")
}

func (s *RedisLimiterTestSuite) TestRefill() {
	l, clock := s.newLimiter(2, time.Second)

	require.True(s.T(), l.Allow(s.ctx, "ip"))
	require.True(s.T(), l.Allow(s.ctx, "ip"))
	require.False(s.T(), l.Allow(s.ctx, "ip"))

	clock.Advance(1500 * time.Millisecond)
	require.True(s.T(), l.Allow(s.ctx, "ip"))
	require.False(s.T(), l.Allow(s.ctx, "ip"))

	ttl, err := s.client.PTTL(s.ctx, l.key("ip")).Result()
	require.NoError(s.T(), err)
	require.Greater(s.T(), ttl, time.Duration(0))
}
