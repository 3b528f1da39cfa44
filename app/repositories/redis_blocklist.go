package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisBlocklistPrefix = "pizza:blocklist:"

// RedisBlocklist keeps revoked token ids as Redis keys that expire together
// with the token, so the registry never needs pruning.
type RedisBlocklist struct {
	client *redis.Client
	now    func() time.Time
}

func NewRedisBlocklist(client *redis.Client) *RedisBlocklist {
	return &RedisBlocklist{client: client, now: time.Now}
}

func (b *RedisBlocklist) Revoke(ctx context.Context, jti, tokenType string, expiresAt time.Time) error {
	ttl := expiresAt.Sub(b.now())
	if ttl <= 0 {
		// Already expired; validation rejects it without the registry.
		return nil
	}

	if err := b.client.SetNX(ctx, redisBlocklistPrefix+jti, tokenType, ttl).Err(); err != nil {
		return fmt.Errorf("blocklist: redis revoke %s: %w", jti, err)
	}
	return nil
}

func (b *RedisBlocklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := b.client.Exists(ctx, redisBlocklistPrefix+jti).Result()
	if err != nil {
		return false, fmt.Errorf("blocklist: redis lookup %s: %w", jti, err)
	}
	return n > 0, nil
}
