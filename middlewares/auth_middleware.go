package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mi-restaurante/backend/utils"
)

// ClaimsKey is the gin context key holding *utils.CustomClaims.
const ClaimsKey = "claims"

const (
	msgMissingToken = "No se envió token"
	msgInvalidToken = "Token inválido o expirado"
)

// AuthMiddleware rejects requests without a valid bearer token.
func AuthMiddleware(tm *utils.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.RespondMessage(c, http.StatusUnauthorized, msgMissingToken)
			c.Abort()
			return
		}

		claims, err := tm.ParseToken(bearerToken(authHeader))
		if err != nil {
			utils.RespondError(c, http.StatusUnauthorized, msgInvalidToken, err)
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// OptionalAuth attaches the claims when a valid token is sent and lets the
// request through either way.
func OptionalAuth(tm *utils.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			if claims, err := tm.ParseToken(bearerToken(authHeader)); err == nil {
				c.Set(ClaimsKey, claims)
			}
		}
		c.Next()
	}
}

// CurrentClaims returns the claims set by one of the auth middlewares.
func CurrentClaims(c *gin.Context) (*utils.CustomClaims, bool) {
	v, ok := c.Get(ClaimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*utils.CustomClaims)
	return claims, ok
}

func bearerToken(header string) string {
	parts := strings.Fields(header)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}
	return ""
}
