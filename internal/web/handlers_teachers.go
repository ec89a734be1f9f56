package web

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"attendweb/internal/backend"
)

type teacherForm struct {
	Username  string `form:"username" binding:"required"`
	Password  string `form:"password"`
	FirstName string `form:"first_name"`
	LastName  string `form:"last_name"`
	Email     string `form:"email" binding:"omitempty,email"`
	Phone     string `form:"phone"`
}

func (f teacherForm) teacher() backend.Teacher {
	return backend.Teacher{
		Username:  f.Username,
		Password:  f.Password,
		FirstName: f.FirstName,
		LastName:  f.LastName,
		Email:     f.Email,
		Phone:     f.Phone,
	}
}

func (s *Server) showTeachers(c *gin.Context) {
	sess, _ := currentSession(c)
	data := gin.H{}

	teachers, err := s.api.ListTeachers(c.Request.Context(), sess.AccessToken)
	if err != nil {
		log.Printf("teachers fetch failed: %v", err)
		data["FlashError"] = "Failed to load teachers"
	}
	data["Teachers"] = teachers

	if editID, ok := paramID(c.Query("edit")); ok {
		for _, t := range teachers {
			if t.ID == editID {
				data["Edit"] = t
				break
			}
		}
	}
	s.render(c, http.StatusOK, "teachers.html", data)
}

func (s *Server) createTeacher(c *gin.Context) {
	sess, _ := currentSession(c)

	var form teacherForm
	if err := c.ShouldBind(&form); err != nil || form.Password == "" {
		s.flashError(c, "Operation failed")
		c.Redirect(http.StatusFound, "/admin/teachers")
		return
	}

	if err := s.api.CreateTeacher(c.Request.Context(), sess.AccessToken, form.teacher()); err != nil {
		log.Printf("teacher create failed: %v", err)
		s.flashError(c, "Operation failed")
	} else {
		s.flash(c, "Teacher added")
	}
	c.Redirect(http.StatusFound, "/admin/teachers")
}

func (s *Server) updateTeacher(c *gin.Context) {
	sess, _ := currentSession(c)
	id, ok := paramID(c.Param("id"))
	if !ok {
		s.notFound(c)
		return
	}

	var form teacherForm
	if err := c.ShouldBind(&form); err != nil {
		s.flashError(c, "Operation failed")
		c.Redirect(http.StatusFound, "/admin/teachers")
		return
	}

	if err := s.api.UpdateTeacher(c.Request.Context(), sess.AccessToken, id, form.teacher()); err != nil {
		log.Printf("teacher update failed: %v", err)
		s.flashError(c, "Operation failed")
	} else {
		s.flash(c, "Teacher updated")
	}
	c.Redirect(http.StatusFound, "/admin/teachers")
}

// confirmDeleteTeacher renders the pending-confirmation step; no backend
// call happens until the confirming POST arrives.
func (s *Server) confirmDeleteTeacher(c *gin.Context) {
	sess, _ := currentSession(c)
	id, ok := paramID(c.Param("id"))
	if !ok {
		s.notFound(c)
		return
	}

	label := "teacher #" + strconv.FormatInt(id, 10)
	if teachers, err := s.api.ListTeachers(c.Request.Context(), sess.AccessToken); err == nil {
		for _, t := range teachers {
			if t.ID == id {
				label = t.Username
				break
			}
		}
	}
	s.render(c, http.StatusOK, "confirm_delete.html", gin.H{
		"Kind":   "teacher",
		"Label":  label,
		"Action": "/admin/teachers/" + strconv.FormatInt(id, 10) + "/delete",
		"Cancel": "/admin/teachers",
	})
}

func (s *Server) deleteTeacher(c *gin.Context) {
	sess, _ := currentSession(c)
	id, ok := paramID(c.Param("id"))
	if !ok {
		s.notFound(c)
		return
	}

	if err := s.api.DeleteTeacher(c.Request.Context(), sess.AccessToken, id); err != nil {
		log.Printf("teacher delete failed: %v", err)
		s.flashError(c, "Failed to delete")
	} else {
		s.flash(c, "Teacher deleted")
	}
	c.Redirect(http.StatusFound, "/admin/teachers")
}

func paramID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
