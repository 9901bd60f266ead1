package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Rate limiting key pattern:
// - ratelimit:vote:{key} - fixed window counter per client

// RateLimitConfig contains configuration for vote rate limiting
type RateLimitConfig struct {
	VoteLimit  int           // Max votes per window
	VoteWindow time.Duration // Vote rate limit window
}

// DefaultRateLimitConfig returns sensible defaults
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		VoteLimit:  30,
		VoteWindow: 60 * time.Second,
	}
}

// RateLimiter handles rate limiting using Redis
type RateLimiter struct {
	client *goredis.Client
	config RateLimitConfig
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(client *goredis.Client, config RateLimitConfig) *RateLimiter {
	return &RateLimiter{
		client: client,
		config: config,
	}
}

// AllowVote checks if the client behind key may cast another vote in the
// current window.
func (r *RateLimiter) AllowVote(ctx context.Context, key string) (bool, error) {
	redisKey := fmt.Sprintf("ratelimit:vote:%s", key)

	count, err := r.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		if err := r.client.Expire(ctx, redisKey, r.config.VoteWindow).Err(); err != nil {
			return false, err
		}
	}
	return count <= int64(r.config.VoteLimit), nil
}
