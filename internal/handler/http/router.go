package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/wasabi-works/shift-payroll-backend/internal/handler/http/middleware"
	"github.com/wasabi-works/shift-payroll-backend/internal/pkg/jwt"
)

type RouterOptions struct {
	// Logger must be built with httplog.SchemaECS's ReplaceAttr for request logs to follow ECS.
	Logger         *slog.Logger
	AllowedOrigins []string
	// Metrics serves /metrics when set.
	Metrics http.Handler
}

type Handlers struct {
	Auth       AuthHandler
	Master     MasterHandler
	Employee   EmployeeHandler
	Shift      ShiftHandler
	Attendance AttendanceHandler
	Payroll    PayrollHandler
	ActionLog  ActionLogHandler
	Event      EventHandler
}

func NewRouter(opts RouterOptions, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	if opts.Logger != nil {
		r.Use(httplog.RequestLogger(opts.Logger, &httplog.Options{
			Level:  slog.LevelInfo,
			Schema: httplog.SchemaECS,
		}))
	}

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics)
	}

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/admin/login", h.Auth.AdminLogin)
			r.Post("/employee/login", h.Auth.EmployeeLogin)
		})

		// Authenticates with its own short-lived query token
		r.Get("/events", h.Event.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService))

			r.Post("/auth/logout", h.Auth.Logout)
			r.Get("/auth/sse-token", h.Auth.SSEToken)

			r.Route("/me", func(r chi.Router) {
				r.Use(middleware.EmployeeOnly)
				r.Get("/", h.Employee.GetMe)
				r.Put("/password", h.Employee.ChangeMyPassword)
				r.Get("/shifts", h.Shift.GetMyPeriod)
				r.Put("/shifts", h.Shift.SubmitMyPeriod)
				r.Get("/payroll", h.Payroll.MyStatement)
				r.Get("/payroll/statement.pdf", h.Payroll.MyStatementPDF)
			})

			// Admin only
			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminOnly)

				r.Route("/branches", func(r chi.Router) {
					r.Get("/", h.Master.ListBranches)
					r.Post("/", h.Master.CreateBranch)
					r.Put("/{id}", h.Master.RenameBranch)
					r.Delete("/{id}", h.Master.DeleteBranch)
				})

				r.Route("/employees", func(r chi.Router) {
					r.Get("/", h.Employee.List)
					r.Post("/", h.Employee.Create)
					r.Put("/", h.Employee.SyncRegistry)
					r.Get("/{id}", h.Employee.Get)
					r.Put("/{id}", h.Employee.Update)
					r.Delete("/{id}", h.Employee.Delete)
				})

				r.Route("/settings", func(r chi.Router) {
					r.Get("/", h.Master.GetSettings)
					r.Put("/", h.Master.UpdateSettings)
					r.Put("/admin-password", h.Master.ChangeAdminPassword)
				})

				r.Route("/attendance", func(r chi.Router) {
					r.Get("/", h.Attendance.Board)
					r.Post("/commit", h.Attendance.Commit)
					r.Get("/{employeeID}/{date}", h.Attendance.Get)
					r.Patch("/{employeeID}/{date}", h.Attendance.Edit)
				})

				r.Route("/payroll", func(r chi.Router) {
					r.Get("/", h.Payroll.Summary)
					r.Get("/export.xlsx", h.Payroll.ExportWorkbook)
					r.Get("/{employeeID}", h.Payroll.Statement)
					r.Get("/{employeeID}/statement.pdf", h.Payroll.StatementPDF)
				})

				r.Get("/logs", h.ActionLog.List)
			})
		})
	})
	return r
}
