package redis_repo

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/RoyceAzure/lab/pos/internal/domain/model"
	"github.com/redis/go-redis/v9"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionRepo 登入session，過期由redis TTL處理
type SessionRepo struct {
	client *redis.Client
}

func NewSessionRepo(client *redis.Client) *SessionRepo {
	return &SessionRepo{client: client}
}

func generateSessionKey(token string) string {
	return fmt.Sprintf("session:%s", token)
}

func (r *SessionRepo) Create(ctx context.Context, session *model.Session) error {
	key := generateSessionKey(session.Token)
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session already expired at %s", session.ExpiresAt)
	}

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key,
			"user_id", session.UserID,
			"email", session.Email,
			"expires_at", session.ExpiresAt.UTC().Format(time.RFC3339),
		)
		pipe.Expire(ctx, key, ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

func (r *SessionRepo) Get(ctx context.Context, token string) (*model.Session, error) {
	values, err := r.client.HGetAll(ctx, generateSessionKey(token)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if len(values) == 0 {
		return nil, ErrSessionNotFound
	}

	userID, err := strconv.ParseUint(values["user_id"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid user_id in session: %w", err)
	}
	expiresAt, err := time.Parse(time.RFC3339, values["expires_at"])
	if err != nil {
		return nil, fmt.Errorf("invalid expires_at in session: %w", err)
	}

	return &model.Session{
		Token:     token,
		UserID:    uint(userID),
		Email:     values["email"],
		ExpiresAt: expiresAt,
	}, nil
}

// Touch 延長session，不存在回傳 ErrSessionNotFound
func (r *SessionRepo) Touch(ctx context.Context, token string, ttl time.Duration) (time.Time, error) {
	key := generateSessionKey(token)
	expiresAt := time.Now().Add(ttl)

	ok, err := r.client.Expire(ctx, key, ttl).Result()
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to refresh session: %w", err)
	}
	if !ok {
		return time.Time{}, ErrSessionNotFound
	}
	if err := r.client.HSet(ctx, key, "expires_at", expiresAt.UTC().Format(time.RFC3339)).Err(); err != nil {
		return time.Time{}, fmt.Errorf("failed to refresh session: %w", err)
	}
	return expiresAt, nil
}

func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	if err := r.client.Del(ctx, generateSessionKey(token)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
