package web

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"attendweb/internal/backend"
)

type attendanceForm struct {
	Date string `form:"date" binding:"required,dateonly"`
}

func (s *Server) showAttendance(c *gin.Context) {
	sess, _ := currentSession(c)
	data := gin.H{"Date": time.Now().Format("2006-01-02")}

	students, err := s.api.ListStudents(c.Request.Context(), sess.AccessToken)
	if err != nil {
		log.Printf("students fetch failed: %v", err)
		data["FlashError"] = "Failed to load students"
	}
	data["Students"] = students
	s.render(c, http.StatusOK, "attendance.html", data)
}

// submitAttendance collects the per-student radio selections into one bulk
// mark. Rows left unselected are not submitted; an entirely empty selection
// is rejected before any backend call.
func (s *Server) submitAttendance(c *gin.Context) {
	sess, _ := currentSession(c)

	var form attendanceForm
	if err := c.ShouldBind(&form); err != nil {
		s.flashError(c, "Select a valid date")
		c.Redirect(http.StatusFound, "/teacher/attendance")
		return
	}

	marks := collectMarks(c, form.Date)
	if len(marks) == 0 {
		s.flashError(c, "No attendance marked")
		c.Redirect(http.StatusFound, "/teacher/attendance")
		return
	}

	if err := s.api.MarkBulk(c.Request.Context(), sess.AccessToken, marks); err != nil {
		log.Printf("bulk mark failed: %v", err)
		s.flashError(c, "Failed to submit attendance")
	} else {
		s.flash(c, "Attendance submitted successfully")
	}
	c.Redirect(http.StatusFound, "/teacher/attendance")
}

func collectMarks(c *gin.Context, date string) []backend.AttendanceMark {
	if err := c.Request.ParseForm(); err != nil {
		return nil
	}
	var marks []backend.AttendanceMark
	for key, values := range c.Request.PostForm {
		if !strings.HasPrefix(key, "status_") || len(values) == 0 {
			continue
		}
		status := values[0]
		if status != "present" && status != "absent" {
			continue
		}
		id, ok := paramID(strings.TrimPrefix(key, "status_"))
		if !ok {
			continue
		}
		marks = append(marks, backend.AttendanceMark{Student: id, Date: date, Status: status})
	}
	return marks
}
