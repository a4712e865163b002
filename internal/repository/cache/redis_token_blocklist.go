package cache

import (
	"context"
	"time"

	"study-assistant-be/internal/repository/contract"

	"github.com/redis/go-redis/v9"
)

const revokedTokenPrefix = "revoked_token:"

// RedisTokenBlocklist shares revocations across instances.
type RedisTokenBlocklist struct {
	rdb *redis.Client
}

func NewRedisTokenBlocklist(rdb *redis.Client) contract.TokenBlocklist {
	return &RedisTokenBlocklist{rdb: rdb}
}

func (r *RedisTokenBlocklist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return r.rdb.Set(ctx, revokedTokenPrefix+tokenID, "1", ttl).Err()
}

func (r *RedisTokenBlocklist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := r.rdb.Exists(ctx, revokedTokenPrefix+tokenID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
