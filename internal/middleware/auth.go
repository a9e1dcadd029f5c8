package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/HARSHSHRI12/Nogen-Backend/internal/auth"
	"github.com/HARSHSHRI12/Nogen-Backend/internal/model"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// userKey is the gin context key the authenticated user is stored under.
const userKey = "currentUser"

const lookupTimeout = 5 * time.Second

// TokenVerifier validates access tokens.
type TokenVerifier interface {
	VerifyAccessToken(token string) (*auth.Claims, error)
}

// UserLoader resolves the token subject to a live account.
type UserLoader interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
}

// RequireAuth authenticates a request from the accessToken cookie, falling
// back to an Authorization bearer header, and stores the loaded user in the
// gin context. Requests without a valid token get a 401.
func RequireAuth(tokens TokenVerifier, users UserLoader, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Not authorized, no token",
			})
			return
		}

		claims, err := tokens.VerifyAccessToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Not authorized, token failed",
			})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), lookupTimeout)
		defer cancel()

		user, err := users.FindByID(ctx, claims.UserID)
		if err != nil {
			logger.Warn("token subject not found",
				zap.String("userId", claims.UserID),
				zap.Error(err),
			)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Not authorized, user not found",
			})
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

// RequireRole must run after RequireAuth. It rejects users whose role does
// not match.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || user.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "Access denied",
			})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user stored by RequireAuth, or nil.
func CurrentUser(c *gin.Context) *model.User {
	v, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	user, _ := v.(*model.User)
	return user
}

func extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie(auth.AccessTokenCookie); err == nil && cookie != "" {
		return cookie
	}
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}
