package web

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) showReports(c *gin.Context) {
	sess, _ := currentSession(c)
	data := gin.H{}

	rows, err := s.api.Reports(c.Request.Context(), sess.AccessToken)
	if err != nil {
		log.Printf("reports fetch failed: %v", err)
		data["FlashError"] = "Failed to load reports"
	}
	data["Rows"] = rows
	s.render(c, http.StatusOK, "reports.html", data)
}
