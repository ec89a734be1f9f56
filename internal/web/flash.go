package web

import (
	"log"

	"github.com/gin-gonic/gin"

	"attendweb/internal/auth"
)

// Flash notices are the transient notifications of the original screens:
// written into the session on a mutation, shown once on the next page
// render, then cleared. A lost flash only costs the notice, so store errors
// are logged and swallowed.

func (s *Server) flash(c *gin.Context, msg string) {
	s.writeFlash(c, func(sess *auth.Session) { sess.Flash = msg })
}

func (s *Server) flashError(c *gin.Context, msg string) {
	s.writeFlash(c, func(sess *auth.Session) { sess.FlashError = msg })
}

func (s *Server) writeFlash(c *gin.Context, set func(*auth.Session)) {
	sid := currentSID(c)
	sess, ok := currentSession(c)
	if sid == "" || !ok {
		return
	}
	set(&sess)
	if err := s.store.Put(c.Request.Context(), sid, sess); err != nil {
		log.Printf("flash write failed: %v", err)
	}
}

// popFlashes returns and clears pending notices for the current session.
func (s *Server) popFlashes(c *gin.Context) (string, string) {
	sid := currentSID(c)
	sess, ok := currentSession(c)
	if sid == "" || !ok || (sess.Flash == "" && sess.FlashError == "") {
		return "", ""
	}
	msg, errMsg := sess.Flash, sess.FlashError
	sess.Flash, sess.FlashError = "", ""
	if err := s.store.Put(c.Request.Context(), sid, sess); err != nil {
		log.Printf("flash clear failed: %v", err)
	}
	return msg, errMsg
}
