package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lalith-99/lockerroom/internal/models"
)

// ContextKeyUser holds the resolved *models.User, or nil for anonymous
// requests.
const ContextKeyUser = "user"

// IdentityResolver maps a session token to a user. It returns nil when the
// token does not identify anyone.
type IdentityResolver interface {
	Resolve(ctx context.Context, token string) *models.User
}

// Identity resolves the caller on every request and never rejects one.
// The token comes from the session cookie; an "Authorization: Bearer"
// header is accepted when the cookie is absent.
func Identity(resolver IdentityResolver, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessionToken(c, cookieName)

		var user *models.User
		if token != "" {
			user = resolver.Resolve(c.Request.Context(), token)
		}
		c.Set(ContextKeyUser, user)

		c.Next()
	}
}

func sessionToken(c *gin.Context, cookieName string) string {
	if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
		return cookie
	}

	header := c.GetHeader("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// RequireUser stops anonymous requests with a 401.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "authentication required",
			})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the identity Identity stored, or nil.
func CurrentUser(c *gin.Context) *models.User {
	val, exists := c.Get(ContextKeyUser)
	if !exists {
		return nil
	}
	user, ok := val.(*models.User)
	if !ok {
		return nil
	}
	return user
}
