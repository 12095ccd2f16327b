package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/bizops-backend-go/internal/config"
	appHTTP "github.com/cmlabs-hris/bizops-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/bizops-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/bizops-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/bizops-backend-go/internal/pkg/email"
	"github.com/cmlabs-hris/bizops-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/bizops-backend-go/internal/pkg/sequence"
	"github.com/cmlabs-hris/bizops-backend-go/internal/pkg/storage"
	"github.com/cmlabs-hris/bizops-backend-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/bizops-backend-go/internal/service/attendance"
	serviceAuth "github.com/cmlabs-hris/bizops-backend-go/internal/service/auth"
	serviceCompany "github.com/cmlabs-hris/bizops-backend-go/internal/service/company"
	"github.com/cmlabs-hris/bizops-backend-go/internal/service/file"
	invoiceService "github.com/cmlabs-hris/bizops-backend-go/internal/service/invoice"
	payrollService "github.com/cmlabs-hris/bizops-backend-go/internal/service/payroll"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logger := appHTTP.NewLogger(cfg.App, cfg.SlogLevel())
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	fileStorage, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		return err
	}

	sequences, closeSequences, err := newSequenceGenerator(ctx, cfg, db)
	if err != nil {
		return err
	}
	defer closeSequences()

	defaultLoc, err := time.LoadLocation(cfg.Attendance.DefaultTimezone)
	if err != nil {
		return fmt.Errorf("failed to load default time zone: %w", err)
	}

	transactor := postgresql.NewTransactor(db)
	userRepo := postgresql.NewUserRepository(db)
	companyRepo := postgresql.NewCompanyRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	projectRepo := postgresql.NewProjectRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	payslipRepo := postgresql.NewPayslipRepository(db)
	invoiceRepo := postgresql.NewInvoiceRepository(db)
	refreshTokenRepo := postgresql.NewRefreshTokenRepository(db)

	JWTService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	if err != nil {
		return fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		return fmt.Errorf("failed to initialize email service: %w", err)
	}
	fileService := file.NewFileService(fileStorage)

	calculator := attendanceService.NewCalculator(attendanceRepo, companyRepo, cfg.Payroll.StandardHours, defaultLoc)
	authSvc := serviceAuth.NewAuthService(transactor, userRepo, refreshTokenRepo, JWTService)
	companySvc := serviceCompany.NewCompanyService(companyRepo, fileService)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, companyRepo, employeeRepo, calculator, cfg.Attendance)
	payslipSvc := payrollService.NewPayslipService(
		transactor,
		payslipRepo,
		employeeRepo,
		companyRepo,
		calculator,
		sequences,
		fileService,
		emailService,
		cfg.Payroll,
	)
	invoiceSvc := invoiceService.NewInvoiceService(
		transactor,
		invoiceRepo,
		companyRepo,
		userRepo,
		projectRepo,
		sequences,
		fileService,
		emailService,
		cfg.Invoice,
		defaultLoc,
	)

	router := appHTTP.NewRouter(cfg.App, logger, JWTService, appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(JWTService, authSvc),
		Company:    appHTTP.NewCompanyHandler(companySvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Payroll:    appHTTP.NewPayrollHandler(payslipSvc),
		Invoice:    appHTTP.NewInvoiceHandler(invoiceSvc),
	})
	if cfg.Storage.Type == "local" {
		// Only logos are public; archived documents are served through the API
		router.Handle("/uploads/logos/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.Storage.BasePath))))
	}

	if cfg.Cron.Enabled {
		scheduler, err := cron.NewScheduler()
		if err != nil {
			return err
		}
		if err := cron.NewInvoiceJobs(invoiceSvc, cfg.Cron.OverdueReminderInterval).RegisterJobs(scheduler); err != nil {
			return err
		}
		scheduler.Start()
		defer func() {
			if err := scheduler.Stop(); err != nil {
				slog.Error("Failed to stop scheduler", "error", err)
			}
		}()
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr, "env", cfg.App.Env)
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// newSequenceGenerator returns the configured counter backend and a cleanup func.
func newSequenceGenerator(ctx context.Context, cfg *config.Config, db *database.DB) (sequence.Generator, func(), error) {
	switch cfg.Sequence.Backend {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return sequence.NewRedisGenerator(client, "bizops:seq:"), func() { _ = client.Close() }, nil
	case "memory":
		slog.Warn("Using in-memory document numbering; counters reset on restart")
		return sequence.NewMemoryGenerator(), func() {}, nil
	default:
		return postgresql.NewSequenceGenerator(db), func() {}, nil
	}
}
