package contract

import (
	"context"
	"time"
)

// TokenDenylistRepository remembers revoked access tokens (by jti) until they expire.
type TokenDenylistRepository interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
