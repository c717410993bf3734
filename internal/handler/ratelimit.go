package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Atomic INCR with expiry set only on the first hit of the window.
var rateLimitScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

// RateLimit applies a fixed-window per-IP limit. Used on the signup/signin
// routes to slow down credential brute force. Fails open when redis is
// unreachable so authentication never depends on the limiter.
func RateLimit(rdb *redis.Client, limit int, window time.Duration, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if ip == "" {
			ip = "unknown"
		}
		key := "rl:auth:" + ip

		count, err := rateLimitScript.Run(c.Request.Context(), rdb, []string{key}, window.Milliseconds()).Int64()
		if err != nil {
			log.WithError(err).Warn("rate limiter unavailable, allowing request")
			c.Next()
			return
		}

		if count > int64(limit) {
			writeErrorKind(c, http.StatusTooManyRequests, KindRateLimited, "too many attempts, try again later")
			c.Abort()
			return
		}
		c.Next()
	}
}
