package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/careerhub/jobboard-web/docs"
	"github.com/careerhub/jobboard-web/internal/api/handler"
	"github.com/careerhub/jobboard-web/internal/api/middleware"
	"github.com/careerhub/jobboard-web/internal/core/domain"
	"github.com/careerhub/jobboard-web/internal/core/ports"
	"github.com/careerhub/jobboard-web/internal/infrastructure/http/handlers"
)

// Deps is everything the router wires into handlers.
type Deps struct {
	Sessions ports.SessionStore
	Auth     ports.AuthService
	Records  ports.RecordService
	Search   ports.SearchService
	Apps     ports.ApplicationService
	Blogs    ports.BlogService
	Admin    ports.AdminService
	Files    ports.FileService

	Validator echo.Validator
	Health    map[string]ports.Pinger
	Cookie    middleware.SessionCookie
	Log       zerolog.Logger

	// Registry receives the HTTP metrics and serves /metrics. Nil means the
	// process-wide default registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)
	e.Validator = d.Validator

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if d.Registry != nil {
		registerer, gatherer = d.Registry, d.Registry
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "jobboard",
		Subsystem:  "http",
		Registerer: registerer,
	}))
	e.Use(middleware.Session(d.Cookie))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Auth)
	formHandler := handler.NewFormHandler(d.Records)
	searchHandler := handler.NewSearchHandler(d.Search)
	boardHandler := handler.NewBoardHandler(d.Apps)
	adminHandler := handler.NewAdminHandler(d.Admin)
	blogHandler := handler.NewBlogHandler(d.Blogs)
	fileHandler := handler.NewFileHandler(d.Files)

	guard := func(role domain.Role) echo.MiddlewareFunc {
		return middleware.Guard(d.Sessions, role, middleware.GuardOptions{Log: d.Log})
	}
	loadSession := middleware.LoadSession(d.Sessions, d.Log)

	// --- Operational endpoints (no session required) ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.GET("/health", handlers.NewHealthHandler().Liveness)                            // liveness  – is the process alive?
	e.GET("/health/ready", handlers.NewHealthDependenciesHandler(d.Health).Readiness) // readiness – are dependencies up?

	// --- Public pages ---
	e.GET(middleware.LoginRoute, authHandler.LoginPage)
	e.POST(middleware.LoginRoute, authHandler.Login)
	e.POST("/register", authHandler.Register)
	e.POST("/verify", authHandler.Verify)
	e.POST("/forgot-password", authHandler.ForgotPassword)
	e.POST("/forgot-password/verify", authHandler.VerifyResetCode)
	e.POST("/forgot-password/reset", authHandler.ResetPassword)
	e.POST("/logout", authHandler.Logout, loadSession)
	e.GET("/session", authHandler.Session, loadSession)
	e.GET(middleware.UnauthorizedRoute, authHandler.Unauthorized)
	e.GET("/jobs", searchHandler.Search)
	e.GET("/blogs", blogHandler.List)
	e.GET("/blogs/:id", blogHandler.Get)

	// --- Jobseeker ---
	js := e.Group("/dashboard", guard(domain.RoleJobseeker))
	js.GET("", boardHandler.JobseekerDashboard)
	js.GET("/myapplication", formHandler.Open, handler.FixedForm(ports.FormResume))
	js.POST("/myapplication", formHandler.Submit, handler.FixedForm(ports.FormResume))
	js.GET("/myprofile", boardHandler.MyResume)
	js.GET("/job/:id", boardHandler.Job)
	js.POST("/job/:id/apply", boardHandler.Apply)
	js.GET("/appliedjob", boardHandler.AppliedJobs)
	js.POST("/appliedjob/:id/withdraw", boardHandler.Withdraw)
	js.GET("/companies", boardHandler.Companies)
	js.POST("/resume/upload", fileHandler.UploadResume)
	js.GET("/resume/pdf/:filename", fileHandler.Document)
	settingsRoutes(js, authHandler, true)
	formRoutes(js, formHandler, ports.FormResume)

	// --- Employer ---
	emp := e.Group("/employer-dashboard", guard(domain.RoleEmployer))
	emp.GET("", boardHandler.EmployerDashboard)
	emp.GET("/create-profile", formHandler.Open, handler.FixedForm(ports.FormCompany))
	emp.POST("/create-profile", formHandler.Submit, handler.FixedForm(ports.FormCompany))
	emp.GET("/company-profile", boardHandler.MyCompany)
	emp.GET("/posted-application", boardHandler.PostedJobs)
	emp.POST("/posted-application/:id/delete", boardHandler.DeleteJob)
	emp.GET("/applicants/:jobId", boardHandler.Applicants)
	emp.POST("/applications/:id/interview", boardHandler.ScheduleInterview)
	emp.GET("/job/:id", boardHandler.Job)
	emp.GET("/resume/pdf/:filename", fileHandler.Document)
	settingsRoutes(emp, authHandler, true)
	formRoutes(emp, formHandler, ports.FormCompany, ports.FormJob)

	// --- Admin ---
	adm := e.Group("/admin", guard(domain.RoleAdmin))
	adm.GET("", adminHandler.Users)
	adm.GET("/users", adminHandler.Users)
	adm.POST("/users/:id/ban", adminHandler.Ban)
	adm.POST("/users/:id/unban", adminHandler.Unban)
	adm.GET("/approve-job", adminHandler.PendingJobs)
	adm.POST("/approve-job/:id", adminHandler.SetJobStatus)
	adm.GET("/job-applicant", adminHandler.JobsWithApplicants)
	adm.GET("/job-applicant/:jobId", adminHandler.JobApplications)
	adm.POST("/job-applicant/:jobId/send-resumes", adminHandler.SendResumes)
	adm.POST("/applications/:id/accept", adminHandler.Accept)
	adm.POST("/applications/:id/reject", adminHandler.Reject)
	adm.GET("/company/:id", adminHandler.CompanyDetails)
	adm.GET("/jobseeker/:resumeId", adminHandler.JobseekerDetails)
	adm.GET("/all-blog", blogHandler.List)
	adm.POST("/blogs/:id/delete", blogHandler.Delete)
	adm.GET("/resume/pdf/:filename", fileHandler.Document)
	settingsRoutes(adm, authHandler, false)
	formRoutes(adm, formHandler, ports.FormBlog)

	return e
}

// settingsRoutes registers the account settings pages. Admin accounts are
// not self-deletable.
func settingsRoutes(g *echo.Group, h *handler.AuthHandler, deletable bool) {
	g.GET("/settings", h.Settings)
	g.POST("/settings/password", h.ChangePassword)
	if deletable {
		g.POST("/settings/delete", h.DeleteAccount)
	}
}

// formRoutes registers the editor endpoints for the given form kinds.
func formRoutes(g *echo.Group, h *handler.FormHandler, kinds ...string) {
	allow := handler.AllowForms(kinds...)
	for _, path := range []string{"/forms/:kind", "/forms/:kind/:id"} {
		g.GET(path, h.Open, allow)
		g.GET(path+"/draft", h.Draft, allow)
		g.PATCH(path, h.Edit, allow)
		g.POST(path, h.Submit, allow)
	}
}
