package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"boleia/internal/utils"
	"boleia/pkg/logger"
)

// CORSMiddleware configures CORS headers
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")
		c.Header("Access-Control-Expose-Headers", "Content-Length")
		c.Header("Access-Control-Allow-Credentials", "true")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// RequestIDMiddleware adds a request ID to each request
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = utils.GenerateRequestID()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// LoggingMiddleware logs each request with latency and status.
func LoggingMiddleware(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.WithFields(map[string]interface{}{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"latency_ms": time.Since(start).Milliseconds(),
			"request_id": c.GetString("request_id"),
			"client_ip":  c.ClientIP(),
		}).Info("request completed")
	}
}

// RateLimitStore is the counter backend for the rate limiter. Satisfied
// by cache.RedisCache.
type RateLimitStore interface {
	Increment(ctx context.Context, key string) (int64, error)
	Expire(ctx context.Context, key string, expiration time.Duration) error
}

// RateLimitMiddleware enforces a fixed-window per-client limit backed by
// Redis. It runs before authentication, so every caller is keyed by
// client IP.
func RateLimitMiddleware(redis RateLimitStore, limit int) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()

		window := time.Now().Unix() / 60
		cacheKey := fmt.Sprintf("%s%s:%d", utils.CacheRateLimitPrefix, key, window)

		count, err := redis.Increment(c.Request.Context(), cacheKey)
		if err != nil {
			// Redis being down should not take the API down with it.
			c.Next()
			return
		}

		if count == 1 {
			redis.Expire(c.Request.Context(), cacheKey, time.Minute)
		}

		if count > int64(limit) {
			utils.ErrorResponse(c, http.StatusTooManyRequests, "RATE_LIMITED", "Demasiados pedidos, tente novamente mais tarde")
			c.Abort()
			return
		}

		c.Next()
	}
}
