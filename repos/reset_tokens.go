package repos

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

const resetTokenPrefix = "reset-token:"

type ResetTokenRepo struct {
	client *redis.Client
}

func NewResetTokenRepo(client *redis.Client) *ResetTokenRepo {
	return &ResetTokenRepo{client: client}
}

// MarkUsed records jti until ttl elapses and reports whether this was its first
// use. Without a redis client every token is accepted.
func (c *ResetTokenRepo) MarkUsed(ctx context.Context, jti string, ttl time.Duration) (bool, error) {
	if c.client == nil {
		return true, nil
	}
	if ttl < time.Second {
		ttl = time.Second
	}
	return c.client.SetNX(ctx, resetTokenPrefix+jti, 1, ttl).Result()
}

// Release forgets jti so the token can be presented again.
func (c *ResetTokenRepo) Release(ctx context.Context, jti string) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, resetTokenPrefix+jti).Err()
}
