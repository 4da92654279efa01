// Package httpapi mounts the REST surface on echo. Handlers translate
// transport concerns (routing, decoding, status codes) and delegate
// every domain rule to the primary ports.
package httpapi

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/example/tpflow/internal/ports/primary"
)

// Services collects the primary ports the HTTP surface exposes.
type Services struct {
	Clients   primary.ClientService
	Users     primary.UserService
	Projects  primary.ProjectService
	Workflow  primary.WorkflowService
	Tasks     primary.TaskService
	Entries   primary.TimeEntryService
	Reviews   primary.ReviewService
	Documents primary.DocumentService
	Dashboard primary.DashboardService
}

// Bootstrap is the config-sourced admin credential that lets an
// operator create the first user before any token exists in the
// database. An empty Token disables it.
type Bootstrap struct {
	Token    string
	TenantID string
}

// Server owns the echo engine, middleware and route table.
type Server struct {
	echo      *echo.Echo
	services  Services
	logger    *log.Logger
	bootstrap Bootstrap
}

// New assembles the HTTP server. mcpHandler, when non-nil, is mounted
// at /mcp behind the same auth middleware as the REST routes.
func New(services Services, logger *log.Logger, bootstrap Bootstrap, mcpHandler http.Handler) *Server {
	s := &Server{
		services:  services,
		logger:    logger,
		bootstrap: bootstrap,
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(s.requestLogger())
	s.echo = e

	s.routes(mcpHandler)
	return s
}

// Handler returns the assembled http.Handler for mounting in an
// http.Server.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// requestLogger routes echo's request log lines through the
// application logger.
func (s *Server) requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			s.logger.Info("request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
			)
			return nil
		},
	})
}

func (s *Server) routes(mcpHandler http.Handler) {
	s.echo.GET("/healthz", s.handleHealthz)

	api := s.echo.Group("/api/v1", s.authenticate)

	api.POST("/users", s.handleCreateUser, s.requireRole("admin"))
	api.GET("/users", s.handleListUsers)

	api.POST("/clients", s.handleCreateClient)
	api.GET("/clients", s.handleListClients)
	api.GET("/clients/:id", s.handleGetClient)
	api.PATCH("/clients/:id", s.handleUpdateClient)
	api.DELETE("/clients/:id", s.handleDeleteClient, s.requireRole("admin", "manager"))

	api.POST("/projects", s.handleCreateProject)
	api.GET("/projects", s.handleListProjects)
	api.GET("/projects/:id", s.handleGetProject)
	api.PATCH("/projects/:id", s.handleUpdateProject)
	api.PUT("/projects/:id/status", s.handleSetProjectStatus)
	api.DELETE("/projects/:id", s.handleDeleteProject, s.requireRole("admin", "manager"))
	api.GET("/projects/:id/activity", s.handleGetActivity)

	api.GET("/projects/:id/workflow", s.handleGetWorkflow)
	api.PATCH("/workflow-steps/:id", s.handleUpdateStep)
	api.GET("/projects/:id/progress", s.handleGetProgress)
	api.GET("/templates", s.handleListTemplates)

	api.POST("/projects/:id/tasks", s.handleCreateTask)
	api.GET("/projects/:id/tasks", s.handleListTasks)
	api.GET("/tasks/:id", s.handleGetTask)
	api.PATCH("/tasks/:id", s.handleUpdateTask)
	api.PUT("/tasks/:id/status", s.handleSetTaskStatus)
	api.DELETE("/tasks/:id", s.handleDeleteTask)

	api.POST("/projects/:id/time-entries", s.handleLogTime)
	api.GET("/projects/:id/time-entries", s.handleListTimeEntries)
	api.GET("/projects/:id/time-summary", s.handleGetTimeSummary)
	api.DELETE("/time-entries/:id", s.handleDeleteTimeEntry)

	api.POST("/projects/:id/reviews", s.handleRequestReview)
	api.GET("/projects/:id/reviews", s.handleListProjectReviews)
	api.GET("/reviews", s.handleListReviews)
	api.POST("/reviews/:id/decision", s.handleDecideReview)

	api.POST("/projects/:id/documents", s.handleUploadDocument)
	api.GET("/projects/:id/documents", s.handleListDocuments)
	api.GET("/documents/:id/download", s.handleDownloadDocument)
	api.DELETE("/documents/:id", s.handleDeleteDocument)

	api.GET("/dashboard/summary", s.handleGetDashboardSummary)
	api.GET("/dashboard/workload", s.handleGetDashboardWorkload)

	if mcpHandler != nil {
		s.echo.Any("/mcp", echo.WrapHandler(mcpHandler), s.authenticate)
		s.echo.Any("/mcp/*", echo.WrapHandler(mcpHandler), s.authenticate)
	}
}

func (s *Server) handleHealthz(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
