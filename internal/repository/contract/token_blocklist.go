package contract

import (
	"context"
	"time"
)

// TokenBlocklist remembers signed-out access tokens until they would expire anyway.
type TokenBlocklist interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
