package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/luvvtapp/coach/internal/auth"
)

const UserIDKey = "auth_user_id"

// AuthRequired guards endpoints that act on "the signed-in user" rather
// than a user id in the path.
func AuthRequired(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if token == "" || token == header {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    40101,
				"message": "missing bearer token",
				"data":    nil,
			})
			return
		}
		uid, err := auth.ParseJWT(token, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    40102,
				"message": "invalid token",
				"data":    nil,
			})
			return
		}
		c.Set(UserIDKey, uid)
		c.Next()
	}
}
