package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/aspiantech/ogle-api/pkg/helpers"
	"github.com/aspiantech/ogle-api/pkg/response"
)

const (
	CtxUserIDKey    = "userID"
	CtxUserEmailKey = "userEmail"
)

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header, or returns "".
func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

// Identity is the context-builder guard: it resolves the bearer token to an
// identity when present and valid, and deliberately treats missing or
// invalid tokens as anonymous rather than failing the request.
func Identity(tokens *helpers.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			if claims, err := tokens.ParseToken(token); err == nil {
				c.Set(CtxUserIDKey, claims.UserID)
				c.Set(CtxUserEmailKey, claims.Email)
			}
		}
		c.Next()
	}
}

// RequireAuth is the protected-route guard: a missing token is rejected
// with "authentication required" and a bad one with "invalid token". The
// two policies (this and Identity) are intentionally distinct.
func RequireAuth(tokens *helpers.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			response.AbortError(c, http.StatusUnauthorized, "authentication required", nil)
			return
		}
		claims, err := tokens.ParseToken(token)
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, "invalid token", nil)
			return
		}
		c.Set(CtxUserIDKey, claims.UserID)
		c.Set(CtxUserEmailKey, claims.Email)
		c.Next()
	}
}
