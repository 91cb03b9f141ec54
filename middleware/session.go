package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// SessionTokenHeader carries the caller's opaque session token.
	SessionTokenHeader = "X-Session-Token"
	// SessionCookieName is the fallback cookie for browser clients.
	SessionCookieName = "musebot_session"
	// SessionKeyContext is the gin context key holding the resolved token.
	SessionKeyContext = "sessionKey"

	sessionCookieMaxAge = 24 * 60 * 60
)

// SessionToken resolves the caller's session token, minting one on first
// contact. The token is an opaque identifier for chat session affinity; the
// client IP is deliberately not used, since shared or rotating addresses
// would collide sessions between visitors.
func SessionToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(SessionTokenHeader)
		if token == "" {
			if cookie, err := c.Cookie(SessionCookieName); err == nil {
				token = cookie
			}
		}
		if token == "" {
			token = uuid.New().String()
			c.SetCookie(SessionCookieName, token, sessionCookieMaxAge, "/", "", false, true)
		}

		// Echo the token so non-browser clients can persist it.
		c.Header(SessionTokenHeader, token)
		c.Set(SessionKeyContext, token)
		c.Next()
	}
}
