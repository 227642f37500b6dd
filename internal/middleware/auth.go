package middleware

import (
	"net/http"

	"maison-storefront/internal/auth"
	"maison-storefront/internal/logger"
	"maison-storefront/internal/notice"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Auth resolves the session token into the request context. Requests without
// a token, or with one that fails to parse, continue as anonymous.
func Auth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := auth.ExtractAccessToken(c.Request)
		if tokenStr == "" {
			c.Next()
			return
		}

		claims, err := auth.ParseToken(tokenStr, secret)
		if err != nil {
			logger.FromCtx(c.Request.Context()).Debug("ignoring invalid session token", zap.Error(err))
			c.Next()
			return
		}

		ctx := auth.SetUserContext(c.Request.Context(), claims.UserID, claims.Email, claims.Role, tokenStr)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := auth.UserIDFrom(c.Request.Context()); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":  "unauthorized",
				"notice": notice.Error("Sign in required", "Please sign in to continue."),
			})
			return
		}
		c.Next()
	}
}

func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if _, ok := auth.UserIDFrom(ctx); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":  "unauthorized",
				"notice": notice.Error("Sign in required", "Please sign in to continue."),
			})
			return
		}
		if !auth.IsAdmin(ctx) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":  "forbidden",
				"notice": notice.Error("Access denied", "You do not have permission to view this page."),
			})
			return
		}
		c.Next()
	}
}
