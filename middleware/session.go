package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"moonlandpos/session"
	"moonlandpos/store"
)

// SessionMiddleware authenticates the request and keeps the store's session
// state in line with it. A valid token triggers the store's login handling
// for that user. A missing or invalid token only rejects the request; it is
// not a logout signal, so a stray unauthenticated probe cannot wipe the
// store. Logout happens through the explicit logout endpoint.
func SessionMiddleware(provider *session.Provider, st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("token")
		if err != nil {
			authHeader := c.GetHeader("Authorization")
			if authHeader == "" {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization token not provided"})
				c.Abort()
				return
			}
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid Authorization header format"})
				c.Abort()
				return
			}
			token = parts[1]
		}

		user, err := provider.UserFromToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization token"})
			c.Abort()
			return
		}

		st.HandleSession(c.Request.Context(), user.ID)
		c.Set("userID", user.ID)
		c.Set("userName", user.Name)
		c.Set("role", user.Role)

		c.Next()
	}
}
