package middleware

import (
	"errors"
	"net/http"
	"strings"

	"taskboard/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UserIDKey holds the authenticated uuid.UUID in the gin context.
const UserIDKey = "userID"

// JWTAuth authenticates requests carrying "Authorization: Bearer <token>".
func JWTAuth(issuer *auth.Issuer) gin.HandlerFunc {
	return authenticate(issuer, false)
}

// JWTStreamAuth also accepts the token as the "token" query parameter, for
// EventSource clients that cannot set headers.
func JWTStreamAuth(issuer *auth.Issuer) gin.HandlerFunc {
	return authenticate(issuer, true)
}

func authenticate(issuer *auth.Issuer, allowQuery bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" && allowQuery {
			if token := c.Query("token"); token != "" {
				authHeader = "Bearer " + token
			}
		}
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		userID, err := issuer.UserID(parts[1])
		switch {
		case errors.Is(err, auth.ErrInvalidClaims):
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid user ID in token"})
			return
		case err != nil:
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// CurrentUserID returns the identity stored by the auth middleware.
func CurrentUserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(UserIDKey)
	if !exists {
		return uuid.Nil, false
	}
	userID, ok := value.(uuid.UUID)
	return userID, ok
}
