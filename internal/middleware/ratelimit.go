package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// RateLimit applies a fixed-window per-caller limit backed by Redis. The
// window key is the caller identity (or client IP for anonymous endpoints)
// plus the current minute. When Redis is unreachable the limiter fails open
// so the marketplace keeps serving.
func RateLimit(client *redis.Client, perMinute int) gin.HandlerFunc {
	return func(c *gin.Context) {
		if client == nil || perMinute <= 0 {
			c.Next()
			return
		}

		caller := c.GetHeader(UserHeader)
		if caller == "" {
			caller = c.ClientIP()
		}
		key := fmt.Sprintf("ratelimit:%s:%d", caller, time.Now().Unix()/60)

		ctx := c.Request.Context()
		count, err := client.Incr(ctx, key).Result()
		if err != nil {
			log.Warn().Err(err).Msg("rate limiter unavailable, failing open")
			c.Next()
			return
		}
		if count == 1 {
			client.Expire(ctx, key, time.Minute)
		}
		if count > int64(perMinute) {
			c.JSON(429, gin.H{"error": "too many requests"})
			c.Abort()
			return
		}

		c.Next()
	}
}
