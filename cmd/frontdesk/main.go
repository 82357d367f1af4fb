package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/medidesk/frontdesk/internal/config"
	v1 "github.com/medidesk/frontdesk/internal/handler/v1"
	"github.com/medidesk/frontdesk/internal/identity"
	"github.com/medidesk/frontdesk/internal/repository/postgres"
	"github.com/medidesk/frontdesk/internal/service"
	"github.com/medidesk/frontdesk/pkg/auth"
	"github.com/medidesk/frontdesk/pkg/database"
	"github.com/medidesk/frontdesk/pkg/logger"
	"github.com/medidesk/frontdesk/pkg/metrics"
	"github.com/medidesk/frontdesk/pkg/tracer"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zlog, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("building logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	tp, err := tracer.Init(cfg.Tracing)
	if err != nil {
		zlog.Fatal("initializing tracer", zap.Error(err))
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		zlog.Fatal("connecting to database", zap.Error(err))
	}
	if err := database.Migrate(db, zlog); err != nil {
		zlog.Fatal("migrating database", zap.Error(err))
	}

	collector := metrics.NewCollector("frontdesk")

	patientRepo := postgres.NewPatientRepository(db)
	doctorRepo := postgres.NewDoctorRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)
	auditRepo := postgres.NewAuditRepository(db)

	provider, err := identity.NewStatic(cfg.Admin)
	if err != nil {
		zlog.Fatal("building identity provider", zap.Error(err))
	}
	jwtManager := auth.NewJWTManager(cfg.JWT)

	auditSvc := service.NewAuditService(auditRepo, collector, zlog)
	authSvc := service.NewAuthService(provider, jwtManager, auditSvc, zlog)
	patientSvc := service.NewPatientService(patientRepo, auditSvc, collector, zlog)
	doctorSvc := service.NewDoctorService(doctorRepo, auditSvc, collector, zlog)
	appointmentSvc := service.NewAppointmentService(appointmentRepo, patientRepo, doctorRepo, auditSvc, collector, zlog)

	router := v1.NewRouter(v1.RouterDeps{
		Config:         cfg,
		Logger:         zlog,
		JWTManager:     jwtManager,
		Metrics:        collector,
		AuthSvc:        authSvc,
		PatientSvc:     patientSvc,
		DoctorSvc:      doctorSvc,
		AppointmentSvc: appointmentSvc,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		zlog.Info("server listening",
			zap.String("addr", cfg.Server.Address()),
			zap.String("env", cfg.App.Environment),
			zap.String("version", cfg.App.Version),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("server failed", zap.Error(err))
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zlog.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zlog.Error("server shutdown", zap.Error(err))
	}
	auditSvc.Shutdown()
	if err := tp.Shutdown(ctx); err != nil {
		zlog.Error("tracer shutdown", zap.Error(err))
	}
	zlog.Info("stopped")
}
