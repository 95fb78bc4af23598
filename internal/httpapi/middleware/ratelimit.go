package middleware

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/luvvtapp/coach/internal/store/redisstore"
)

// RateLimit applies a fixed-window per-hour cap on the model-backed
// endpoints, keyed by the user_id in the JSON body when present, else by
// client IP. A limiter outage fails open.
func RateLimit(store *redisstore.Store, bucket string, perHour int) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		var probe struct {
			UserID string `json:"user_id"`
		}
		if err := c.ShouldBindBodyWithJSON(&probe); err == nil && probe.UserID != "" {
			key = probe.UserID
		}

		allowed, err := store.Allow(c.Request.Context(), bucket, key, perHour, time.Hour)
		if err != nil {
			log.Printf("rate limit check failed bucket=%s err=%v", bucket, err)
			c.Next()
			return
		}
		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"code":    42900,
				"message": "rate limit exceeded, try again later",
				"data":    nil,
			})
			return
		}
		c.Next()
	}
}
