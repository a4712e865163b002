package memory

import (
	"context"
	"time"

	"study-assistant-be/internal/repository/contract"

	"github.com/patrickmn/go-cache"
)

type TokenBlocklist struct {
	cache *cache.Cache
}

func NewTokenBlocklist() contract.TokenBlocklist {
	return &TokenBlocklist{
		cache: cache.New(24*time.Hour, 10*time.Minute),
	}
}

func (r *TokenBlocklist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	r.cache.Set(tokenID, struct{}{}, ttl)
	return nil
}

func (r *TokenBlocklist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	_, found := r.cache.Get(tokenID)
	return found, nil
}
