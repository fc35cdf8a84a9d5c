package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	contextKeyClaims = "auth_claims"
	contextKeyToken  = "auth_token"
)

// ClaimsFromContext returns the claims set by RequireAuth. nil if not set.
func ClaimsFromContext(c *gin.Context) *Claims {
	v, ok := c.Get(contextKeyClaims)
	if !ok {
		return nil
	}
	claims, ok := v.(*Claims)
	if !ok {
		return nil
	}
	return claims
}

// TokenFromContext returns the raw bearer token set by RequireAuth.
func TokenFromContext(c *gin.Context) string {
	v, ok := c.Get(contextKeyToken)
	if !ok {
		return ""
	}
	token, _ := v.(string)
	return token
}

// RequireAuth returns a middleware that checks the Authorization header
// for a valid, unrevoked bearer token and puts its claims into context.
// Missing token -> 401; revoked or invalid -> 403.
func RequireAuth(tokens *TokenManager, revoked *RevokedSet) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "token required"})
			return
		}
		if revoked.Contains(raw) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "token revoked"})
			return
		}
		claims, err := tokens.VerifyAccess(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "invalid token"})
			return
		}
		c.Set(contextKeyClaims, claims)
		c.Set(contextKeyToken, raw)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
