package middlewares

import (
	"fmt"
	"net/http"

	"codeclimb/internal/logger"
	"codeclimb/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RateLimitMiddleware applies a coarse per-client fixed-window limit in
// front of all API routes. Redis failures do not block requests.
func RateLimitMiddleware(limiter *services.RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("rate:ip:%s", c.ClientIP())

		allowed, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			logger.Log.Warn("Rate limit check failed",
				zap.String("client_ip", c.ClientIP()),
				zap.Error(err))
			c.Next()
			return
		}

		if !allowed {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"message": "Too many requests, please try again later",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
