package handlers

import (
	"context"
	"os"
	"time"
	"unicode"

	"github.com/gin-gonic/gin"

	"github.com/luvvtapp/coach/internal/common"
)

func (h *Handler) Root(c *gin.Context) {
	common.OK(c, gin.H{
		"message": "LuvvTapp Virtual Relationship Coach API",
		"status":  "running",
		"version": "1.0.0",
	})
}

// Health reports database/redis reachability and whether a usable model
// credential is configured. The pings are best-effort; failures only flip
// the flags.
func (h *Handler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	dbStatus := "connected"
	if sqlDB, err := h.DB.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
		dbStatus = "disconnected"
	}

	redisStatus := "connected"
	if err := h.Redis.Ping(ctx); err != nil {
		redisStatus = "disconnected"
	}

	common.OK(c, gin.H{
		"status":   "healthy",
		"database": dbStatus,
		"redis":    redisStatus,
		"openai":   keyStatus(h.Cfg.OpenAIAPIKey),
	})
}

func keyStatus(cfgKey string) string {
	key := os.Getenv("OPENAI_API_KEY")
	if key == "" {
		key = cfgKey
	}
	if key == "" {
		return "not configured"
	}
	for _, r := range key {
		if unicode.IsSpace(r) {
			return "not configured"
		}
	}
	return "configured"
}
