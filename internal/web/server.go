package web

import (
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"attendweb/internal/auth"
	"attendweb/internal/backend"
	"attendweb/internal/config"
	"attendweb/internal/httpmiddleware"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Server is the role-based web client: it renders the screens and forwards
// every data operation to the attendance backend.
type Server struct {
	cfg     config.App
	api     *backend.Client
	authSvc *auth.Service
	store   auth.Store
	engine  *gin.Engine
}

// NewServer wires middleware, templates and routes.
func NewServer(cfg config.App, api *backend.Client, authSvc *auth.Service, store auth.Store) *Server {
	s := &Server{cfg: cfg, api: api, authSvc: authSvc, store: store}

	registerValidations()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/healthz", "/metrics"},
	}))
	r.Use(securityHeaders())
	r.Use(httpmiddleware.NewTokenBucket(cfg.RateLimitPerMin, cfg.RateLimitPerMin, "/healthz", "/metrics").GinMiddleware())
	r.Use(s.loadSession())

	r.SetHTMLTemplate(template.Must(template.New("").ParseFS(templatesFS, "templates/*.html")))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/healthz", func(c *gin.Context) {
		sessionsHealthy := s.store.Healthy(c.Request.Context())
		status := http.StatusOK
		if !sessionsHealthy {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{"status": "ok", "sessions": sessionsHealthy})
	})

	r.GET("/login", s.showLogin)
	r.POST("/login", s.handleLogin)
	r.POST("/logout", s.handleLogout)

	r.GET("/", s.home)

	admin := r.Group("/admin", s.requireRoles(auth.RoleAdmin))
	admin.GET("/dashboard", s.showDashboard)
	admin.GET("/teachers", s.showTeachers)
	admin.POST("/teachers", s.createTeacher)
	admin.POST("/teachers/:id", s.updateTeacher)
	admin.GET("/teachers/:id/delete", s.confirmDeleteTeacher)
	admin.POST("/teachers/:id/delete", s.deleteTeacher)
	admin.GET("/students", s.showStudents)
	admin.POST("/students", s.createStudent)
	admin.POST("/students/:id", s.updateStudent)
	admin.GET("/students/:id/delete", s.confirmDeleteStudent)
	admin.POST("/students/:id/delete", s.deleteStudent)

	teacher := r.Group("/teacher", s.requireRoles(auth.RoleTeacher))
	teacher.GET("/dashboard", s.showDashboard)
	teacher.GET("/attendance", s.showAttendance)
	teacher.POST("/attendance", s.submitAttendance)

	student := r.Group("/student", s.requireRoles(auth.RoleStudent))
	student.GET("/dashboard", s.showStudentDashboard)

	r.GET("/reports", s.requireRoles(auth.RoleAdmin, auth.RoleTeacher), s.showReports)

	r.NoRoute(s.notFound)

	s.engine = r
	return s
}

// Handler exposes the router for http.Server and tests.
func (s *Server) Handler() http.Handler { return s.engine }

func registerValidations() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("dateonly", func(fl validator.FieldLevel) bool {
		_, err := time.Parse("2006-01-02", fl.Field().String())
		return err == nil
	})
}
