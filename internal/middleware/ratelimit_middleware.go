package middleware

import (
	"context"
	"net/http"

	"livepoll/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

// VoteLimiter decides whether a vote request from the given key may proceed.
type VoteLimiter interface {
	AllowVote(ctx context.Context, key string) (bool, error)
}

// VoteRateLimitMiddleware throttles vote casting per client IP. A nil
// limiter disables throttling entirely.
func VoteRateLimitMiddleware(limiter VoteLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}

		allowed, err := limiter.AllowVote(c.Request.Context(), c.ClientIP())
		if err != nil {
			// Fail open on limiter errors
			c.Next()
			return
		}
		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, httpdto.NewErrorResponse("rate limited", "RATE_LIMITED"))
			return
		}
		c.Next()
	}
}
