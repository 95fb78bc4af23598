package httpapi

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/luvvtapp/coach/internal/common"
	"github.com/luvvtapp/coach/internal/config"
	"github.com/luvvtapp/coach/internal/httpapi/handlers"
	"github.com/luvvtapp/coach/internal/httpapi/middleware"
	"github.com/luvvtapp/coach/internal/store/rabbitmq"
	"github.com/luvvtapp/coach/internal/store/redisstore"
)

func NewRouter(db *gorm.DB, cfg config.Config, rds *redisstore.Store, events *rabbitmq.Publisher) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())

	// mobile clients hit the API cross-origin
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
	}))

	r.NoRoute(func(c *gin.Context) {
		common.Fail(c, http.StatusNotFound, 40400, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		common.Fail(c, http.StatusMethodNotAllowed, 40500, "method not allowed")
	})

	h := handlers.NewHandler(db, cfg, rds, events)

	r.GET("/", h.Root)
	r.GET("/health", h.Health)

	api := r.Group("/api")

	// users
	api.POST("/users", h.CreateOrLogin)
	api.GET("/users/:user_id", h.GetUserByID)
	api.PUT("/users/:user_id/assessment", h.UpdateAssessment)

	// auth
	api.POST("/auth/signup", h.Signup)
	api.POST("/auth/login", h.Login)
	authGroup := api.Group("/")
	authGroup.Use(middleware.AuthRequired(cfg.JWTSecret))
	authGroup.GET("/me", h.Me)

	// relationships
	api.POST("/relationships", h.CreateRelationship)
	api.PUT("/relationships/:relationship_id", h.UpdateRelationship)
	api.DELETE("/relationships/:relationship_id", h.DeleteRelationship)
	api.GET("/relationships/:user_id", h.ListRelationships)

	// chat
	api.POST("/chat", middleware.RateLimit(rds, "chat", cfg.RateLimitPerHour), h.Chat)
	api.GET("/chat/sessions/:user_id", h.ListSessions)
	api.GET("/chat/history/:session_id", h.SessionHistory)
	api.DELETE("/chat/session/:session_id", h.DeleteSession)

	// advice
	api.POST("/advice", middleware.RateLimit(rds, "advice", cfg.RateLimitPerHour), h.CreateAdvice)
	api.GET("/advice/user/:user_id", h.ListAdvice)
	api.GET("/advice/item/:advice_id", h.GetAdvice)
	api.DELETE("/advice/:advice_id", h.DeleteAdvice)

	return r
}
