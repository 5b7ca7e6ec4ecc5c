package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/marketplace-api/cache"
)

// RateLimit counts requests per client IP in the shared cache. The counter
// lives in the cache object rather than a package-level map so a multi-
// instance deployment can swap in an external backend.
func RateLimit(store cache.Cache, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limit <= 0 {
			c.Next()
			return
		}
		key := "ratelimit:" + c.FullPath() + ":" + c.ClientIP()
		if n := store.Increment(key, window); n > int64(limit) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests, slow down"})
			c.Abort()
			return
		}
		c.Next()
	}
}
