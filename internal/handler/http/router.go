package http

import (
	"log/slog"
	"os"

	"github.com/cmlabs-hris/bizops-backend-go/internal/config"
	"github.com/cmlabs-hris/bizops-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/bizops-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/bizops-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type Handlers struct {
	Auth       AuthHandler
	Company    CompanyHandler
	Attendance AttendanceHandler
	Payroll    PayrollHandler
	Invoice    InvoiceHandler
}

// NewLogger builds the JSON logger shared by the access log and the application.
func NewLogger(app config.AppConfig, level slog.Level) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(app.Env != "production")
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", app.Name),
		slog.String("env", app.Env),
	)
}

func NewRouter(app config.AppConfig, logger *slog.Logger, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   app.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/logout", h.Auth.Logout)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)
			r.Use(middleware.RequireCompany)

			r.Route("/companies/my", func(r chi.Router) {
				r.Get("/", h.Company.GetMine)
				r.With(middleware.RequireManager).Put("/logo", h.Company.UploadLogo)
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/clock-in", h.Attendance.ClockIn)
				r.Post("/clock-out", h.Attendance.ClockOut)
				r.Get("/status", h.Attendance.Status)
				r.Get("/my", h.Attendance.GetMyAttendance)
				r.Get("/summary", h.Attendance.Summary)
				r.With(middleware.RequirePermission(user.PermissionAttendanceViewAll)).Get("/", h.Attendance.List)
			})

			r.Route("/payslips", func(r chi.Router) {
				r.Post("/generate-my", h.Payroll.GenerateMine)
				r.Post("/preview", h.Payroll.Preview)
				r.Post("/preview/pdf", h.Payroll.PreviewPDF)
				r.Get("/my", h.Payroll.ListMine)
				r.Get("/{id}", h.Payroll.Get)
				r.Get("/{id}/pdf", h.Payroll.DownloadPDF)

				// Manager only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Post("/generate", h.Payroll.Generate)
					r.Get("/", h.Payroll.List)
					r.Get("/statistics", h.Payroll.Statistics)
					r.Put("/{id}", h.Payroll.Update)
					r.Patch("/{id}/status", h.Payroll.UpdateStatus)
					r.Delete("/{id}", h.Payroll.Delete)
					r.Post("/{id}/send", h.Payroll.Send)
				})
			})

			r.Route("/invoices", func(r chi.Router) {
				r.Use(middleware.RequireManager)
				r.Get("/", h.Invoice.List)
				r.Post("/", h.Invoice.Create)
				r.Get("/overdue", h.Invoice.ListOverdue)
				r.Get("/statistics", h.Invoice.Statistics)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.Invoice.Get)
					r.Put("/", h.Invoice.Update)
					r.Delete("/", h.Invoice.Delete)
					r.Patch("/status", h.Invoice.UpdateStatus)
					r.Post("/items", h.Invoice.AddItem)
					r.Delete("/items/{itemId}", h.Invoice.RemoveItem)
					r.Post("/payments", h.Invoice.RecordPayment)
					r.Get("/pdf", h.Invoice.DownloadPDF)
					r.Post("/send", h.Invoice.Send)
				})
			})
		})
	})
	return r
}
