package redis_repo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/RoyceAzure/lab/pos/internal/domain/model"
	"github.com/redis/go-redis/v9"
)

// CartDraftRepo 購物車暫存
// 同一使用者重新登入時還原，明細依加入順序存在list
type CartDraftRepo struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCartDraftRepo(client *redis.Client, ttl time.Duration) *CartDraftRepo {
	return &CartDraftRepo{client: client, ttl: ttl}
}

func generateCartItemKey(userID uint) string {
	return fmt.Sprintf("cart:%d:items", userID)
}

// 整份覆寫並設定TTL，空購物車直接刪除
var saveDraftScript = redis.NewScript(`
	redis.call('DEL', KEYS[1])
	if #ARGV < 2 then
		return 0
	end
	for i = 2, #ARGV do
		redis.call('RPUSH', KEYS[1], ARGV[i])
	end
	redis.call('EXPIRE', KEYS[1], tonumber(ARGV[1]))
	return #ARGV - 1
`)

func (r *CartDraftRepo) Save(ctx context.Context, userID uint, lines []model.CartLine) error {
	args := []interface{}{int64(r.ttl / time.Second)}
	for _, line := range lines {
		payload, err := json.Marshal(line)
		if err != nil {
			return fmt.Errorf("failed to encode cart line %d: %w", line.ProductID, err)
		}
		args = append(args, string(payload))
	}

	if err := saveDraftScript.Run(ctx, r.client, []string{generateCartItemKey(userID)}, args...).Err(); err != nil && err != redis.Nil {
		return fmt.Errorf("failed to save cart draft: %w", err)
	}
	return nil
}

// Load 沒有暫存回傳空slice
func (r *CartDraftRepo) Load(ctx context.Context, userID uint) ([]model.CartLine, error) {
	items, err := r.client.LRange(ctx, generateCartItemKey(userID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load cart draft: %w", err)
	}

	lines := make([]model.CartLine, 0, len(items))
	for _, item := range items {
		var line model.CartLine
		if err := json.Unmarshal([]byte(item), &line); err != nil {
			return nil, fmt.Errorf("invalid cart draft line: %w", err)
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func (r *CartDraftRepo) Delete(ctx context.Context, userID uint) error {
	if err := r.client.Del(ctx, generateCartItemKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to delete cart draft: %w", err)
	}
	return nil
}
