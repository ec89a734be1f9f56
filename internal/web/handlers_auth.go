package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"attendweb/internal/auth"
)

type loginForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

func (s *Server) showLogin(c *gin.Context) {
	s.render(c, http.StatusOK, "login.html", nil)
}

// handleLogin exchanges the submitted credentials for a session. Any
// failure shows the same generic notice; nothing distinguishes a wrong
// password from an unreachable backend.
func (s *Server) handleLogin(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		s.render(c, http.StatusBadRequest, "login.html", gin.H{"Error": "Username and password are required"})
		return
	}

	sid, sess, err := s.authSvc.Login(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		// Login only ever fails as AuthenticationFailed; the form never
		// learns whether credentials or transport were at fault.
		s.render(c, http.StatusUnauthorized, "login.html", gin.H{"Error": "Invalid credentials"})
		return
	}

	s.setSessionCookie(c, sid)
	c.Set(ctxSIDKey, sid)
	c.Set(ctxSessionKey, sess)
	s.flash(c, "Login successful")
	c.Redirect(http.StatusFound, "/")
}

// handleLogout purges the session and always lands on the login view.
func (s *Server) handleLogout(c *gin.Context) {
	s.authSvc.Logout(c.Request.Context(), currentSID(c))
	s.clearSessionCookie(c)
	c.Redirect(http.StatusFound, "/login")
}

// home maps the authenticated role to its default landing view.
func (s *Server) home(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok || sess.User == nil {
		c.Redirect(http.StatusFound, "/login")
		return
	}
	switch sess.User.Role {
	case auth.RoleAdmin:
		c.Redirect(http.StatusFound, "/admin/dashboard")
	case auth.RoleTeacher:
		c.Redirect(http.StatusFound, "/teacher/dashboard")
	case auth.RoleStudent:
		c.Redirect(http.StatusFound, "/student/dashboard")
	default:
		c.Redirect(http.StatusFound, "/login")
	}
}

func (s *Server) notFound(c *gin.Context) {
	s.render(c, http.StatusNotFound, "notfound.html", nil)
}
