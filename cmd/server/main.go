package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hrms-backend/internal/auth"
	"hrms-backend/internal/cache"
	"hrms-backend/internal/config"
	"hrms-backend/internal/database"
	"hrms-backend/internal/db"
	"hrms-backend/internal/handlers"
	"hrms-backend/internal/health"
	h "hrms-backend/internal/http"
	"hrms-backend/internal/logger"
	"hrms-backend/internal/middleware"
	"hrms-backend/internal/repositories"
	"hrms-backend/internal/services"
	"hrms-backend/internal/storage"
	"hrms-backend/internal/timeutil"

	"go.uber.org/zap"
)

func main() {
	migrateOnly := flag.Bool("migrate", false, "apply database migrations and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zl, err := logger.New(logger.Config{Level: cfg.Log.Level, Dev: cfg.Log.Dev, File: cfg.Log.File})
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer zl.Sync()
	zap.ReplaceGlobals(zl)

	if err := run(cfg, zl, *migrateOnly); err != nil {
		zl.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, zl *zap.Logger, migrateOnly bool) error {
	if err := timeutil.SetLocation(cfg.App.Timezone); err != nil {
		return fmt.Errorf("timezone %q: %w", cfg.App.Timezone, err)
	}

	ctx := context.Background()

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()
	zl.Info("connected to database")

	migrator := database.NewMigrator(pool, cfg.Database.MigrationsDir, zl)
	if err := migrator.RunMigrations(ctx); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	if migrateOnly {
		return nil
	}

	// Redis only backs token revocation, so the API runs without it.
	var revoker services.TokenRevoker
	var revocationChecker middleware.RevocationChecker
	if err := cache.Init(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB); err != nil {
		if errors.Is(err, cache.ErrUnavailable) {
			zl.Info("redis not configured, logout will not revoke tokens")
		} else {
			zl.Warn("redis unavailable, logout will not revoke tokens", zap.Error(err))
		}
	} else {
		defer cache.Close()
		store := cache.NewTokenStore()
		revoker, revocationChecker = store, store
		zl.Info("connected to redis", zap.String("addr", cfg.Redis.Addr))
	}

	var uploader services.PayslipUploader
	if cfg.PayslipStorageEnabled() {
		store, err := storage.NewPayslipStore(ctx, cfg)
		if err != nil {
			return err
		}
		uploader = store
		zl.Info("payslip archiving enabled", zap.String("bucket", cfg.Payslip.Bucket))
	}

	jwtManager, err := auth.NewJWTManager(cfg)
	if err != nil {
		return err
	}

	// Repositories
	userRepo := repositories.NewUserRepository(pool)
	companyRepo := repositories.NewCompanyRepository(pool)
	profileRepo := repositories.NewEmployeeProfileRepository(pool)
	attendanceRepo := repositories.NewAttendanceRepository(pool)
	correctionRepo := repositories.NewCorrectionRepository(pool)
	leaveRepo := repositories.NewLeaveRepository(pool)
	salaryRepo := repositories.NewSalaryRepository(pool)
	settingsRepo := repositories.NewSettingsRepository(pool)
	activityRepo := repositories.NewActivityLogRepository(pool)
	txManager := db.NewTransactionManager(pool)

	// Services
	activityService := services.NewActivityService(activityRepo, zl)
	authService := services.NewAuthService(txManager, userRepo, profileRepo, companyRepo, settingsRepo,
		jwtManager, revoker, activityService, cfg.Company.DefaultName, zl)
	totpService := services.NewTOTPService(userRepo)
	userService := services.NewUserService(txManager, userRepo, settingsRepo, activityService)
	employeeService := services.NewEmployeeService(userRepo, profileRepo)
	companyService := services.NewCompanyService(companyRepo)
	attendanceService := services.NewAttendanceService(txManager, profileRepo, attendanceRepo, activityService)
	correctionService := services.NewCorrectionService(txManager, profileRepo, attendanceRepo, correctionRepo, activityService)
	leaveService := services.NewLeaveService(txManager, profileRepo, leaveRepo, activityService)
	salaryService := services.NewSalaryService(profileRepo, salaryRepo, uploader, activityService)
	settingsService := services.NewSettingsService(txManager, settingsRepo)
	dashboardService := services.NewDashboardService(userRepo, profileRepo, attendanceRepo, correctionRepo, leaveRepo)

	if _, err := companyRepo.Ensure(ctx, cfg.Company.DefaultName); err != nil {
		return fmt.Errorf("default company: %w", err)
	}
	if err := authService.SeedAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	router := h.NewRouter(h.Handlers{
		Auth:        handlers.NewAuthHandler(authService, totpService),
		User:        handlers.NewUserHandler(userService),
		Employee:    handlers.NewEmployeeHandler(employeeService),
		Company:     handlers.NewCompanyHandler(companyService),
		Attendance:  handlers.NewAttendanceHandler(attendanceService),
		Correction:  handlers.NewCorrectionHandler(correctionService),
		Leave:       handlers.NewLeaveHandler(leaveService),
		Salary:      handlers.NewSalaryHandler(salaryService),
		Settings:    handlers.NewSettingsHandler(settingsService),
		Dashboard:   handlers.NewDashboardHandler(dashboardService, activityService),
		Health:      handlers.NewHealthHandler(health.NewHealthChecker(pool, cfg.App.Version)),
		AuthChecker: middleware.NewAuthMiddleware(jwtManager, userRepo, revocationChecker),
	}, zl)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           middleware.NewCORS(cfg)(router),
		ReadTimeout:       time.Duration(cfg.Server.ReadTimeoutSec) * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      time.Duration(cfg.Server.WriteTimeoutSec) * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zl.Info("server listening", zap.String("addr", srv.Addr), zap.String("version", cfg.App.Version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		zl.Info("shutting down", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
