package middleware

import (
	"strings"

	"coolrentals/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	AdminIDKey     = "adminID"
	AdminClaimsKey = "adminClaims"
)

// AdminAuth admits requests that carry a valid, unrevoked admin bearer token.
func AdminAuth(tokens utils.TokenStore) gin.HandlerFunc {
	if tokens == nil {
		tokens = utils.NoopTokenStore{}
	}
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.Error(utils.UnauthorizedError("Not authorized, no token"))
			c.Abort()
			return
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

		claims, err := utils.ValidateToken(tokenString)
		if err != nil {
			c.Error(utils.UnauthorizedError("Not authorized, token failed"))
			c.Abort()
			return
		}

		if claims.TokenID != "" {
			revoked, err := tokens.IsRevoked(c.Request.Context(), claims.TokenID)
			if err != nil {
				zap.L().Error("Token revocation lookup failed", zap.Error(err))
				c.Error(utils.InternalError(err))
				c.Abort()
				return
			}
			if revoked {
				c.Error(utils.UnauthorizedError("Not authorized, token revoked"))
				c.Abort()
				return
			}
		}

		c.Set(AdminIDKey, claims.Subject)
		c.Set(AdminClaimsKey, claims)
		c.Next()
	}
}

// AdminClaims returns the claims AdminAuth stored on the context.
func AdminClaims(c *gin.Context) (*utils.TokenClaims, bool) {
	v, ok := c.Get(AdminClaimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*utils.TokenClaims)
	return claims, ok
}
