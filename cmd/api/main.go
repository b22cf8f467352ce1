package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/workpulse/hr-backend-go/internal/config"
	appHTTP "github.com/workpulse/hr-backend-go/internal/handler/http"
	"github.com/workpulse/hr-backend-go/internal/handler/http/middleware"
	"github.com/workpulse/hr-backend-go/internal/pkg/cron"
	"github.com/workpulse/hr-backend-go/internal/pkg/database"
	"github.com/workpulse/hr-backend-go/internal/pkg/geocode"
	"github.com/workpulse/hr-backend-go/internal/pkg/gps"
	"github.com/workpulse/hr-backend-go/internal/pkg/jwt"
	"github.com/workpulse/hr-backend-go/internal/pkg/sessioncache"
	"github.com/workpulse/hr-backend-go/internal/repository/postgresql"
	attendanceService "github.com/workpulse/hr-backend-go/internal/service/attendance"
	authService "github.com/workpulse/hr-backend-go/internal/service/auth"
	"github.com/workpulse/hr-backend-go/internal/service/geofence"
	"github.com/workpulse/hr-backend-go/internal/service/timesheet"
	workLocationService "github.com/workpulse/hr-backend-go/internal/service/worklocation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	location := cfg.Location()

	userRepo := postgresql.NewUserRepository(db)
	workLocationRepo := postgresql.NewWorkLocationRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	sessionCache := sessioncache.New(cfg.Session.TTL, cfg.Session.CleanupInterval)

	var geocoder geocode.Geocoder = geocode.Disabled{}
	if cfg.Geocoder.BaseURL != "" {
		geocoder = geocode.NewHTTPGeocoder(cfg.Geocoder.BaseURL, cfg.Geocoder.Timeout)
	}

	engine := timesheet.NewEngine(
		cfg.Attendance.StandardHoursPerDay,
		timesheet.WeekendTOILPolicy(cfg.Attendance.WeekendTOILPolicy),
		location,
	)

	// No server-side GPS provider is configured; the coordinator still
	// owns the degradation path for requests that arrive without a fix.
	attendanceSvc := attendanceService.NewFallbackCoordinator(
		gps.Provider(nil),
		cfg.Attendance.GPSTimeout,
		attendanceService.NewAttendanceService(
			attendanceRepo,
			workLocationRepo,
			geofence.NewValidator(),
			engine,
			geocoder,
			location,
		),
	)
	authSvc := authService.NewAuthService(userRepo, jwtService, sessionCache)
	workLocationSvc := workLocationService.NewWorkLocationService(workLocationRepo)

	authHandler := appHTTP.NewAuthHandler(authSvc, jwtService)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	workLocationHandler := appHTTP.NewWorkLocationHandler(workLocationSvc)

	authMw := middleware.NewAuth(sessionCache, userRepo, jwtService)

	router := appHTTP.NewRouter(
		cfg,
		jwtService,
		authMw,
		authHandler,
		attendanceHandler,
		workLocationHandler,
	)

	sessionCache.StartCleanup(ctx)
	defer sessionCache.Stop()

	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(attendanceRepo, engine, location).
		RegisterJobs(scheduler, cfg.Attendance.AutoCheckoutInterval)
	scheduler.AddJob("purge_revoked_tokens", time.Hour, func(context.Context) error {
		jwtService.PurgeRevoked(time.Now())
		return nil
	})
	scheduler.Start()
	defer scheduler.Stop()

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	server := &http.Server{Addr: addr, Handler: router}

	go func() {
		<-ctx.Done()
		slog.Info("Shutting down server")
		if err := server.Shutdown(context.Background()); err != nil {
			slog.Error("Server shutdown failed", "error", err)
		}
	}()

	slog.Info("Server listening", "addr", addr, "env", cfg.App.Env)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}
}
