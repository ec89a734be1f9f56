package web

import (
	"github.com/gin-gonic/gin"
)

// render draws a page with the shared chrome data: current user and pending
// flash notices. Handlers may pre-set FlashError for load failures of the
// page itself.
func (s *Server) render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if sess, ok := currentSession(c); ok {
		data["User"] = sess.User
	}
	msg, errMsg := s.popFlashes(c)
	if msg != "" {
		data["Flash"] = msg
	}
	if errMsg != "" {
		data["FlashError"] = errMsg
	}
	c.HTML(status, name, data)
}
