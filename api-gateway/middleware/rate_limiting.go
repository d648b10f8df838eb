package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"gente-backend/shared/config"
)

// RateLimiter throttles clients at the gateway using a fixed window
// counter per IP kept in Redis, so the limit holds across gateway
// replicas.
type RateLimiter struct {
	client *redis.Client
	config RateLimitConfig
}

// RateLimitConfig - Rate limiter configuration
type RateLimitConfig struct {
	MaxRequests int
	TimeWindow  time.Duration
}

// NewRateLimitConfig - Creates a new RateLimitConfig from the loaded configuration
func NewRateLimitConfig(cfg *config.Config) RateLimitConfig {
	return RateLimitConfig{
		MaxRequests: cfg.RateLimitMaxRequests,
		TimeWindow:  cfg.RateLimitWindow,
	}
}

// NewRateLimiter - Creates a new RateLimiter instance
func NewRateLimiter(cfg *config.Config) *RateLimiter {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logrus.WithError(err).Warn("redis unreachable, rate limiting will fail open")
	}

	return &RateLimiter{
		client: client,
		config: NewRateLimitConfig(cfg),
	}
}

// allow increments the window counter for the key and reports whether the
// request fits the limit. Redis errors fail open so an outage never takes
// the whole API down with it.
func (rl *RateLimiter) allow(ctx context.Context, key string) (bool, error) {
	count, err := rl.client.Incr(ctx, key).Result()
	if err != nil {
		return true, err
	}

	if count == 1 {
		if err := rl.client.Expire(ctx, key, rl.config.TimeWindow).Err(); err != nil {
			return true, err
		}
	}

	return count <= int64(rl.config.MaxRequests), nil
}

// GlobalRateLimitMiddleware - Global rate limiting for all API Gateway requests
func (rl *RateLimiter) GlobalRateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("ratelimit:global:%s", c.ClientIP())

		allowed, err := rl.allow(c.Request.Context(), key)
		if err != nil {
			logrus.WithError(err).Warn("rate limit check failed")
		}

		if !allowed {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"message":     "Too many requests from this IP. Please try again later.",
				"error":       "RATE_LIMIT_EXCEEDED",
				"retry_after": rl.config.TimeWindow.Seconds(),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// Close releases the Redis connection.
func (rl *RateLimiter) Close() error {
	return rl.client.Close()
}
