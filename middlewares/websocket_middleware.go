package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mi-restaurante/backend/utils"
)

// WebSocketAuthMiddleware authenticates websocket upgrades, which cannot
// carry an Authorization header from the browser, through ?token=.
func WebSocketAuthMiddleware(tm *utils.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			utils.RespondMessage(c, http.StatusUnauthorized, msgMissingToken)
			c.Abort()
			return
		}

		claims, err := tm.ParseToken(token)
		if err != nil {
			utils.RespondError(c, http.StatusUnauthorized, msgInvalidToken, err)
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}
