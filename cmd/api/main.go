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

	"github.com/go-chi/httplog/v3"
	"github.com/wasabi-works/shift-payroll-backend/internal/config"
	"github.com/wasabi-works/shift-payroll-backend/internal/domain/actionlog"
	"github.com/wasabi-works/shift-payroll-backend/internal/domain/settings"
	appHTTP "github.com/wasabi-works/shift-payroll-backend/internal/handler/http"
	"github.com/wasabi-works/shift-payroll-backend/internal/pkg/cron"
	"github.com/wasabi-works/shift-payroll-backend/internal/pkg/database"
	"github.com/wasabi-works/shift-payroll-backend/internal/pkg/ids"
	"github.com/wasabi-works/shift-payroll-backend/internal/pkg/jwt"
	"github.com/wasabi-works/shift-payroll-backend/internal/pkg/metrics"
	"github.com/wasabi-works/shift-payroll-backend/internal/pkg/realtime"
	"github.com/wasabi-works/shift-payroll-backend/internal/pkg/sse"
	"github.com/wasabi-works/shift-payroll-backend/internal/repository/postgresql"
	actionLogService "github.com/wasabi-works/shift-payroll-backend/internal/service/actionlog"
	attendanceService "github.com/wasabi-works/shift-payroll-backend/internal/service/attendance"
	serviceAuth "github.com/wasabi-works/shift-payroll-backend/internal/service/auth"
	employeeService "github.com/wasabi-works/shift-payroll-backend/internal/service/employee"
	"github.com/wasabi-works/shift-payroll-backend/internal/service/master"
	payrollService "github.com/wasabi-works/shift-payroll-backend/internal/service/payroll"
	shiftService "github.com/wasabi-works/shift-payroll-backend/internal/service/shift"
	"github.com/wasabi-works/shift-payroll-backend/internal/service/snapshot"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logFormat := httplog.SchemaECS.Concise(!cfg.IsProduction())
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.SlogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "shift-payroll"),
		slog.String("version", cfg.App.Version),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}
	defer db.Close()

	if cfg.Database.Migrate {
		if err := database.RunMigrations(db); err != nil {
			return err
		}
	}

	branchRepo := postgresql.NewBranchRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	settingsRepo := postgresql.NewSettingsRepository(db)
	shiftRepo := postgresql.NewShiftRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	actionLogRepo := postgresql.NewActionLogRepository(db)
	transactor := postgresql.NewTransactor(db)

	metricsRegistry := metrics.New()
	hub := sse.NewHub()
	var publisher sse.Publisher = hub
	var bridge *realtime.Bridge
	if cfg.Redis.Addr != "" {
		rdb, err := realtime.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return fmt.Errorf("error connecting to redis: %w", err)
		}
		defer rdb.Close()
		bridge = realtime.NewBridge(rdb, hub, cfg.Redis.Channel)
		publisher = bridge
	} else {
		slog.Info("REDIS_ADDR not set, change notifications stay local to this instance")
	}

	emitter := actionlog.NewEmitter(ids.New, time.Now)
	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	logService := actionLogService.NewActionLogService(actionLogRepo, publisher, metricsRegistry, cfg.Retention.ActionLogKeep)
	settingsService := master.NewSettingsService(settingsRepo, logService, emitter, publisher, settings.SystemSettings{
		DefaultStartHour: cfg.Defaults.StartHour,
		DefaultEndHour:   cfg.Defaults.EndHour,
		GlobalHourlyRate: cfg.Defaults.GlobalHourlyRate,
	}, cfg.Defaults.AdminPassword)
	if err := settingsService.EnsureSeeded(ctx); err != nil {
		return fmt.Errorf("error seeding settings: %w", err)
	}

	loader := snapshot.NewLoader(branchRepo, employeeRepo, shiftRepo, attendanceRepo, settingsService)
	branchService := master.NewBranchService(branchRepo, logService, emitter, publisher)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo, branchRepo, transactor, logService, emitter, publisher)
	authService := serviceAuth.NewAuthService(employeeRepo, settingsService, JWTService)
	shiftSvc := shiftService.NewShiftService(loader, shiftRepo, transactor, logService, emitter, publisher, metricsRegistry)
	attendanceSvc := attendanceService.NewAttendanceService(loader, attendanceRepo, transactor, logService, emitter, publisher, metricsRegistry)
	payrollSvc := payrollService.NewPayrollService(loader, metricsRegistry)

	router := appHTTP.NewRouter(appHTTP.RouterOptions{
		Logger:         logger,
		AllowedOrigins: cfg.App.AllowedOrigins,
		Metrics:        metricsRegistry.Handler(),
	}, JWTService, appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(authService),
		Master:     appHTTP.NewMasterHandler(branchService, settingsService),
		Employee:   appHTTP.NewEmployeeHandler(employeeSvc),
		Shift:      appHTTP.NewShiftHandler(shiftSvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Payroll:    appHTTP.NewPayrollHandler(payrollSvc),
		ActionLog:  appHTTP.NewActionLogHandler(logService),
		Event:      appHTTP.NewEventHandler(hub, JWTService, metricsRegistry),
	})

	scheduler := cron.NewScheduler()
	cron.NewRetentionJobs(logService, cfg.Retention.PruneInterval).RegisterJobs(scheduler)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("server running", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	if bridge != nil {
		g.Go(func() error {
			return bridge.Run(gctx)
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		slog.Info("shutting down server")
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
