package handlers

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/luvvtapp/coach/internal/advice"
	"github.com/luvvtapp/coach/internal/ai"
	"github.com/luvvtapp/coach/internal/chat"
	"github.com/luvvtapp/coach/internal/common"
	"github.com/luvvtapp/coach/internal/config"
	"github.com/luvvtapp/coach/internal/httpapi/middleware"
	"github.com/luvvtapp/coach/internal/relationship"
	"github.com/luvvtapp/coach/internal/session"
	"github.com/luvvtapp/coach/internal/store/rabbitmq"
	"github.com/luvvtapp/coach/internal/store/redisstore"
	"github.com/luvvtapp/coach/internal/user"
)

type Handler struct {
	DB    *gorm.DB
	Cfg   config.Config
	Redis *redisstore.Store

	Users         *user.Service
	Relationships *relationship.Repo
	Sessions      *session.Repo
	ChatSvc       *chat.Service
	AdviceSvc     *advice.Service
}

func NewHandler(db *gorm.DB, cfg config.Config, rds *redisstore.Store, events *rabbitmq.Publisher) *Handler {
	registry := ai.NewRegistry()

	// The hosted provider re-reads the key per call, so a rotated
	// credential takes effect without a restart.
	registry.Register("openai", func(ctx context.Context, model string) (ai.Provider, error) {
		key := os.Getenv("OPENAI_API_KEY")
		if key == "" {
			key = cfg.OpenAIAPIKey
		}
		m := strings.TrimSpace(model)
		if m == "" {
			m = cfg.OpenAIModel
		}
		return ai.NewOpenAIProvider(cfg.OpenAIBaseURL, key, m), nil
	})
	registry.Register("ollama", func(ctx context.Context, model string) (ai.Provider, error) {
		m := strings.TrimSpace(model)
		if m == "" {
			m = cfg.OllamaModel
		}
		return ai.NewOllamaProvider(cfg.OllamaBaseURL, m), nil
	})

	model := cfg.OpenAIModel
	if strings.EqualFold(cfg.AIProvider, "ollama") {
		model = cfg.OllamaModel
	}

	sessions := session.NewRepo(db)
	adviceRepo := advice.NewRepo(db)

	return &Handler{
		DB:            db,
		Cfg:           cfg,
		Redis:         rds,
		Users:         user.NewService(user.NewRepo(db)),
		Relationships: relationship.NewRepo(db),
		Sessions:      sessions,
		ChatSvc:       chat.NewService(sessions, registry, cfg.AIProvider, model, cfg.ChatHistoryWindow, rds, events),
		AdviceSvc:     advice.NewService(adviceRepo, registry, cfg.AIProvider, model, events),
	}
}

func userIDFromContext(c *gin.Context) (string, bool) {
	v, ok := c.Get(middleware.UserIDKey)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok
}

// failUpstream maps the AI error taxonomy onto caller-visible statuses.
// The subsystem name keeps chat and advice failures distinguishable in
// client logs.
func failUpstream(c *gin.Context, subsystem string, err error) {
	var apiErr *ai.APIStatusError
	switch {
	case errors.Is(err, ai.ErrNotConfigured):
		common.Fail(c, http.StatusServiceUnavailable, 50310, subsystem+" error: OpenAI API key not configured. Set the OPENAI_API_KEY environment variable and restart the server.")
	case errors.Is(err, ai.ErrBadAPIKey):
		common.Fail(c, http.StatusUnauthorized, 40110, subsystem+" error: OPENAI_API_KEY contains whitespace/newlines. Fix your .env so the key is a single line with no trailing spaces.")
	case errors.Is(err, ai.ErrAuth):
		common.Fail(c, http.StatusUnauthorized, 40111, subsystem+" error: OpenAI authentication failed. Check OPENAI_API_KEY.")
	case errors.Is(err, ai.ErrConnection):
		common.Fail(c, http.StatusServiceUnavailable, 50311, subsystem+" error: Connection to OpenAI failed.")
	case errors.Is(err, ai.ErrReadTimeout):
		common.Fail(c, http.StatusGatewayTimeout, 50410, subsystem+" error: OpenAI read timeout.")
	case errors.Is(err, ai.ErrRateLimited):
		common.Fail(c, http.StatusTooManyRequests, 42910, subsystem+" error: OpenAI rate limit exceeded.")
	case errors.As(err, &apiErr):
		common.Fail(c, http.StatusBadGateway, 50210, subsystem+" error: OpenAI API error.")
	default:
		common.Fail(c, http.StatusInternalServerError, 50010, subsystem+" error: "+err.Error())
	}
}
