package web

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// showDashboard serves both the admin and the teacher dashboard; the
// backend fills only the counters matching the caller's role and the
// template shows cards per role.
func (s *Server) showDashboard(c *gin.Context) {
	sess, _ := currentSession(c)
	data := gin.H{}

	stats, err := s.api.DashboardStats(c.Request.Context(), sess.AccessToken)
	if err != nil {
		log.Printf("dashboard stats fetch failed: %v", err)
		data["FlashError"] = "Failed to load stats"
	}
	data["Stats"] = stats
	s.render(c, http.StatusOK, "dashboard.html", data)
}

// showStudentDashboard renders the student's own percentage, day count and
// attendance log.
func (s *Server) showStudentDashboard(c *gin.Context) {
	sess, _ := currentSession(c)
	data := gin.H{}

	stats, err := s.api.StudentStats(c.Request.Context(), sess.AccessToken)
	if err != nil {
		log.Printf("student stats fetch failed: %v", err)
		data["FlashError"] = "Failed to load attendance data"
	}
	records, err := s.api.ListAttendance(c.Request.Context(), sess.AccessToken)
	if err != nil {
		log.Printf("attendance fetch failed: %v", err)
		data["FlashError"] = "Failed to load attendance data"
	}

	data["Stats"] = stats
	data["Records"] = records
	s.render(c, http.StatusOK, "student_dashboard.html", data)
}
