package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/facemark/attendance-portal/internal/web/handlers"
	"github.com/facemark/attendance-portal/internal/web/middleware"
)

func (s *Server) setupRoutes() {
	// Create handlers
	navHandler := handlers.NewNavHandler(s.state)
	authHandler := handlers.NewAuthHandler(s.state, s.sessionManager)
	studentHandler := handlers.NewStudentHandler(s.state, s.jobManager)
	teacherHandler := handlers.NewTeacherHandler(s.state)
	adminHandler := handlers.NewAdminHandler(s.state)

	// Health check (no auth required)
	s.router.Get("/api/v1/health", handlers.HealthCheck)

	// API routes
	s.router.Route("/api/v1", func(r chi.Router) {
		// Navigation (the kiosk screen itself needs no login)
		r.Get("/nav", navHandler.Get)
		r.Post("/nav/role", navHandler.SelectRole)
		r.Post("/nav/mode", navHandler.SelectMode)
		r.Post("/nav/back", navHandler.Back)
		r.Post("/nav/menu", navHandler.Menu)

		// Auth
		r.Post("/auth/teacher/login", authHandler.TeacherLogin)
		r.Post("/auth/admin/login", authHandler.AdminLogin)
		r.Post("/auth/logout", authHandler.Logout)
		r.Get("/auth/status", authHandler.Status)

		// Student workflows run on the kiosk without a session
		r.Post("/camera/open", studentHandler.CameraOpen)
		r.Post("/camera/close", studentHandler.CameraClose)
		r.Get("/camera/status", studentHandler.CameraStatus)

		r.Post("/enroll/folder", studentHandler.CreateFolder)
		r.Post("/enroll/capture", studentHandler.CaptureStart)
		r.Get("/enroll/capture/{jobId}", studentHandler.CaptureStatus)
		r.Get("/enroll/capture/{jobId}/events", studentHandler.CaptureEvents)
		r.Post("/enroll/train", studentHandler.Train)

		r.Post("/attendance/mark", studentHandler.Mark)
		r.Get("/attendance/export", studentHandler.Export)

		// Teacher panel; PIN registration needs no session
		r.Post("/teacher/pin", teacherHandler.CreatePin)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(s.sessionManager, middleware.RoleTeacher))
			r.Get("/teacher/attendance", teacherHandler.Attendance)
		})

		// Admin panel
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(s.sessionManager, middleware.RoleAdmin))
			r.Get("/admin/students", adminHandler.Students)
			r.Get("/admin/teachers", adminHandler.Teachers)
			r.Delete("/admin/students/{enrollId}", adminHandler.DeleteStudent)
			r.Delete("/admin/teachers/{teacherId}", adminHandler.DeleteTeacher)
			r.Put("/admin/students/{id}", adminHandler.UpdateStudent)
			r.Put("/admin/teachers/{id}", adminHandler.UpdateTeacher)
		})
	})

	// Serve the frontend placeholder (SPA lives in a separate repo)
	s.router.Get("/*", s.serveIndex)
}

// serveIndex serves a minimal landing page pointing at the API.
func (s *Server) serveIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`<!DOCTYPE html>
<html>
<head>
    <title>Attendance Portal</title>
    <style>
        body { font-family: system-ui, sans-serif; display: flex; justify-content: center; align-items: center; height: 100vh; margin: 0; background: #1a1a2e; color: #eee; }
        .container { text-align: center; }
        h1 { color: #00d9ff; }
        p { color: #aaa; }
        a { color: #00d9ff; }
    </style>
</head>
<body>
    <div class="container">
        <h1>Attendance Portal</h1>
        <p>The web frontend is served separately.</p>
        <p>API is available at <a href="/api/v1/health">/api/v1/health</a></p>
    </div>
</body>
</html>`))
}
