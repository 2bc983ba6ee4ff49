package auth

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// SessionUserKey is the session entry holding the logged-in username.
const SessionUserKey = "username"

// ContextUserKey is the gin context key holding the authenticated username.
const ContextUserKey = "username"

// SessionUsername returns the username stored in the session, if any.
func SessionUsername(c *gin.Context) (string, bool) {
	session := sessions.Default(c)
	username, ok := session.Get(SessionUserKey).(string)
	return username, ok && username != ""
}

// RequireAuth redirects to /login when no session identity exists. The
// username is stored in the gin context for downstream handlers.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		username, ok := SessionUsername(c)
		if !ok {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Set(ContextUserKey, username)
		c.Next()
	}
}

// RequireUser redirects to /login when the session identity does not match
// the named path parameter. The guard is re-checked on every request.
func RequireUser(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, ok := SessionUsername(c)
		if !ok || username != c.Param(param) {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Set(ContextUserKey, username)
		c.Next()
	}
}
