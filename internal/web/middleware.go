package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"attendweb/internal/auth"
)

const (
	ctxSessionKey = "session"
	ctxSIDKey     = "sid"
)

// loadSession restores the session behind the request cookie before any
// guard or view runs. An undecodable or expired stored token has already
// purged the session by the time a guard looks at it.
func (s *Server) loadSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(s.cfg.SessionCookie)
		if err != nil || sid == "" {
			c.Next()
			return
		}
		sess, ok := s.authSvc.Restore(c.Request.Context(), sid)
		if !ok {
			s.clearSessionCookie(c)
			c.Next()
			return
		}
		c.Set(ctxSIDKey, sid)
		c.Set(ctxSessionKey, sess)
		c.Next()
	}
}

// requireRoles guards a route group. An empty role set admits any
// authenticated user. Unauthenticated requests go to the login view, role
// mismatches silently to the landing route. The decision is taken fresh on
// every request.
func (s *Server) requireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := currentSession(c)
		if !ok || sess.User == nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		if len(roles) > 0 && !roleAllowed(sess.User.Role, roles) {
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}

func roleAllowed(role string, allowed []string) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}

func currentSession(c *gin.Context) (auth.Session, bool) {
	v, ok := c.Get(ctxSessionKey)
	if !ok {
		return auth.Session{}, false
	}
	sess, ok := v.(auth.Session)
	return sess, ok
}

func currentSID(c *gin.Context) string {
	return c.GetString(ctxSIDKey)
}

func (s *Server) setSessionCookie(c *gin.Context, sid string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.cfg.SessionCookie, sid, int(s.cfg.SessionTTL.Seconds()), "/", "", s.cfg.Production(), true)
}

func (s *Server) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.cfg.SessionCookie, "", -1, "/", "", s.cfg.Production(), true)
}

func securityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		if gin.Mode() == gin.ReleaseMode {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}
		c.Next()
	}
}
