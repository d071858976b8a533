package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/lovishduggal/brainwave-backend/internal/http/response"
	"github.com/lovishduggal/brainwave-backend/internal/pkg/logger"
	"github.com/lovishduggal/brainwave-backend/internal/platform/ctxutil"
)

// RateLimitMiddleware caps requests per caller per window using a redis
// counter. With no redis client configured it is a pass-through; redis
// failures also let the request through so quiz routes never depend on
// redis availability.
type RateLimitMiddleware struct {
	log    *logger.Logger
	rdb    *redis.Client
	limit  int
	window time.Duration
}

func NewRateLimitMiddleware(log *logger.Logger, rdb *redis.Client, limit int, window time.Duration) *RateLimitMiddleware {
	if limit <= 0 {
		limit = 30
	}
	if window <= 0 {
		window = time.Minute
	}
	return &RateLimitMiddleware{
		log:    log.With("Middleware", "RateLimitMiddleware"),
		rdb:    rdb,
		limit:  limit,
		window: window,
	}
}

func (rl *RateLimitMiddleware) Limit(scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.rdb == nil {
			c.Next()
			return
		}

		caller := c.ClientIP()
		if rd := ctxutil.GetRequestData(c.Request.Context()); rd != nil && rd.OwnerID != "" {
			caller = rd.OwnerID
		}
		key := fmt.Sprintf("ratelimit:%s:%s", scope, caller)

		ctx := c.Request.Context()
		count, err := rl.rdb.Incr(ctx, key).Result()
		if err != nil {
			rl.log.Warn("Rate limit check failed, allowing request", "error", err.Error())
			c.Next()
			return
		}
		if count == 1 {
			if err := rl.rdb.Expire(ctx, key, rl.window).Err(); err != nil {
				rl.log.Warn("Rate limit expire failed", "key", key, "error", err.Error())
			}
		}
		if count > int64(rl.limit) {
			c.Header("Retry-After", fmt.Sprintf("%d", int(rl.window.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, response.ErrorEnvelope{
				Error: response.APIError{Message: "rate limit exceeded", Code: "rate_limited"},
			})
			return
		}
		c.Next()
	}
}
