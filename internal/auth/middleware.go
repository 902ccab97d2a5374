package auth

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Session keys.
const (
	sessionUserKey  = "user_id"
	sessionAdminKey = "is_admin"
)

// SetSessionUser writes the logged-in user into the session.
func SetSessionUser(c *gin.Context, userID int64, isAdmin bool) error {
	session := sessions.Default(c)
	session.Set(sessionUserKey, userID)
	session.Set(sessionAdminKey, isAdmin)
	return session.Save()
}

// ClearSession logs the session out.
func ClearSession(c *gin.Context) error {
	session := sessions.Default(c)
	session.Clear()
	return session.Save()
}

// SessionUserID returns the logged-in user's id, or false when the session
// carries none.
func SessionUserID(c *gin.Context) (int64, bool) {
	id, ok := sessions.Default(c).Get(sessionUserKey).(int64)
	return id, ok
}

// RequireAuth aborts with 401 unless the session is logged in.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := SessionUserID(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}
		c.Next()
	}
}

// RequireAdmin aborts with 401 for anonymous sessions and 403 for
// non-admin ones.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		if _, ok := session.Get(sessionUserKey).(int64); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}
		if isAdmin, _ := session.Get(sessionAdminKey).(bool); !isAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Forbidden"})
			return
		}
		c.Next()
	}
}
