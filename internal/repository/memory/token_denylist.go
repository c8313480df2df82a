package memory

import (
	"context"
	"time"

	"ai-summarizer-be/internal/repository/contract"

	"github.com/patrickmn/go-cache"
)

type TokenDenylist struct {
	cache *cache.Cache
}

var _ contract.TokenDenylistRepository = &TokenDenylist{}

func NewTokenDenylist() *TokenDenylist {
	// Entries carry their own TTL; purge expired items every 10 minutes
	c := cache.New(24*time.Hour, 10*time.Minute)
	return &TokenDenylist{
		cache: c,
	}
}

func (r *TokenDenylist) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	r.cache.Set(jti, struct{}{}, ttl)
	return nil
}

func (r *TokenDenylist) IsRevoked(_ context.Context, jti string) (bool, error) {
	_, found := r.cache.Get(jti)
	return found, nil
}
