package web

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"attendweb/internal/backend"
)

type studentForm struct {
	Name            string `form:"name" binding:"required"`
	RollNumber      string `form:"roll_number" binding:"required"`
	Email           string `form:"email" binding:"omitempty,email"`
	AssignedTeacher string `form:"assigned_teacher"`
}

func (f studentForm) student() backend.Student {
	st := backend.Student{
		Name:       f.Name,
		RollNumber: f.RollNumber,
		Email:      f.Email,
	}
	if id, ok := paramID(f.AssignedTeacher); ok {
		st.AssignedTeacher = &id
	}
	return st
}

// studentView is a student row with the assigned teacher resolved for
// display; the join happens client-side against the fetched teacher list.
type studentView struct {
	backend.Student
	AssignedID  int64
	TeacherName string
}

// showStudents renders the student list with the add/edit form. Teachers
// are fetched alongside so assigned-teacher ids resolve to names; that join
// is display-only.
func (s *Server) showStudents(c *gin.Context) {
	sess, _ := currentSession(c)
	data := gin.H{}

	students, err := s.api.ListStudents(c.Request.Context(), sess.AccessToken)
	if err != nil {
		log.Printf("students fetch failed: %v", err)
		data["FlashError"] = "Failed to load students"
	}
	teachers, err := s.api.ListTeachers(c.Request.Context(), sess.AccessToken)
	if err != nil {
		log.Printf("teachers fetch failed: %v", err)
	}

	teacherNames := make(map[int64]string, len(teachers))
	for _, t := range teachers {
		teacherNames[t.ID] = t.Username
	}

	views := make([]studentView, 0, len(students))
	for _, st := range students {
		v := studentView{Student: st, TeacherName: "-"}
		if st.AssignedTeacher != nil {
			v.AssignedID = *st.AssignedTeacher
			if name, ok := teacherNames[v.AssignedID]; ok {
				v.TeacherName = name
			}
		}
		views = append(views, v)
	}

	data["Students"] = views
	data["Teachers"] = teachers

	if editID, ok := paramID(c.Query("edit")); ok {
		for _, v := range views {
			if v.ID == editID {
				data["Edit"] = v
				break
			}
		}
	}
	s.render(c, http.StatusOK, "students.html", data)
}

func (s *Server) createStudent(c *gin.Context) {
	sess, _ := currentSession(c)

	var form studentForm
	if err := c.ShouldBind(&form); err != nil {
		s.flashError(c, "Operation failed")
		c.Redirect(http.StatusFound, "/admin/students")
		return
	}

	if err := s.api.CreateStudent(c.Request.Context(), sess.AccessToken, form.student()); err != nil {
		log.Printf("student create failed: %v", err)
		s.flashError(c, "Operation failed")
	} else {
		s.flash(c, "Student added")
	}
	c.Redirect(http.StatusFound, "/admin/students")
}

func (s *Server) updateStudent(c *gin.Context) {
	sess, _ := currentSession(c)
	id, ok := paramID(c.Param("id"))
	if !ok {
		s.notFound(c)
		return
	}

	var form studentForm
	if err := c.ShouldBind(&form); err != nil {
		s.flashError(c, "Operation failed")
		c.Redirect(http.StatusFound, "/admin/students")
		return
	}

	if err := s.api.UpdateStudent(c.Request.Context(), sess.AccessToken, id, form.student()); err != nil {
		log.Printf("student update failed: %v", err)
		s.flashError(c, "Operation failed")
	} else {
		s.flash(c, "Student updated")
	}
	c.Redirect(http.StatusFound, "/admin/students")
}

func (s *Server) confirmDeleteStudent(c *gin.Context) {
	sess, _ := currentSession(c)
	id, ok := paramID(c.Param("id"))
	if !ok {
		s.notFound(c)
		return
	}

	label := "student #" + strconv.FormatInt(id, 10)
	if students, err := s.api.ListStudents(c.Request.Context(), sess.AccessToken); err == nil {
		for _, st := range students {
			if st.ID == id {
				label = st.Name + " (" + st.RollNumber + ")"
				break
			}
		}
	}
	s.render(c, http.StatusOK, "confirm_delete.html", gin.H{
		"Kind":   "student",
		"Label":  label,
		"Action": "/admin/students/" + strconv.FormatInt(id, 10) + "/delete",
		"Cancel": "/admin/students",
	})
}

func (s *Server) deleteStudent(c *gin.Context) {
	sess, _ := currentSession(c)
	id, ok := paramID(c.Param("id"))
	if !ok {
		s.notFound(c)
		return
	}

	if err := s.api.DeleteStudent(c.Request.Context(), sess.AccessToken, id); err != nil {
		log.Printf("student delete failed: %v", err)
		s.flashError(c, "Failed to delete")
	} else {
		s.flash(c, "Student deleted")
	}
	c.Redirect(http.StatusFound, "/admin/students")
}
